package es

import (
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

const defaultRequestTimeout = 30 * time.Second

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	APIKey    string
}

// newClient builds a typed client. An API key takes precedence over basic auth.
func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if len(config.Addresses) == 0 {
		return nil, fmt.Errorf("no Elasticsearch addresses configured")
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
		Transport: &http.Transport{
			ResponseHeaderTimeout: defaultRequestTimeout,
		},
	}

	switch {
	case config.APIKey != "":
		cfg.APIKey = config.APIKey
	case config.Username != "" && config.Password != "":
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
