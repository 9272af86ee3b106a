package classify

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory is returned when a category has no color assigned
var ErrUnknownCategory = errors.New("unknown category")

// LookupColor returns the color assigned to category in table
func LookupColor(category string, table map[string]string) (string, error) {
	color, ok := table[category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return color, nil
}

// Categories returns the keys of table in sorted order
func Categories(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
