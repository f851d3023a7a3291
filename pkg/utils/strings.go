package utils

import "strings"

// SplitList splits s on sep, trims every item and drops the empty ones.
func SplitList(s, sep string) []string {
	var result []string

	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
