package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/linkeval/pkg/utils"
)

// IntList reads a comma separated list of positive integers from key.
// An unset or blank variable yields def.
func IntList(key string, def []int) ([]int, error) {
	var out []int
	for _, part := range utils.SplitList(os.Getenv(key), ",") {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, part)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%s: %d is not positive", key, v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return def, nil
	}
	return out, nil
}
