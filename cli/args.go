package cli

import (
	"fmt"
	"sort"

	"github.com/libcommon/taskkit/task"
)

// Args wraps parsed command line values with typed accessor methods,
// keyed by destination name (option names with "-" replaced by "_").
// Eliminates repetitive type assertions and improves error messages.
type Args map[string]interface{}

// Has reports whether the argument is present.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String gets a required string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

// StringOr gets an optional string argument with a default.
func (a Args) StringOr(key, defaultVal string) string {
	v, ok := a[key]
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

// Bool gets a required bool argument.
func (a Args) Bool(key string) (bool, error) {
	v, ok := a[key]
	if !ok {
		return false, fmt.Errorf("%s is required", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a bool, got %T", key, v)
	}
	return b, nil
}

// BoolOr gets an optional bool argument with a default.
func (a Args) BoolOr(key string, defaultVal bool) bool {
	v, ok := a[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// Int gets a required integer argument.
func (a Args) Int(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

// IntOr gets an optional integer argument with a default.
func (a Args) IntOr(key string, defaultVal int) int {
	v, ok := a[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// MergePairs implements task.PairSource. Pairs are produced in sorted key
// order so merges are deterministic.
func (a Args) MergePairs() []task.Pair {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]task.Pair, 0, len(a))
	for _, k := range keys {
		pairs = append(pairs, task.Pair{Name: k, Value: a[k]})
	}
	return pairs
}
