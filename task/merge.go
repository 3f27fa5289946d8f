package task

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/libcommon/taskkit/errors"
)

// alwaysExclude are bookkeeping names that never merge onto a task.
var alwaysExclude = []string{"propagate", "result"}

type mergeOptions struct {
	include   []string
	exclude   []string
	overwrite map[string]interface{}
}

// MergeOption configures a Merge call.
type MergeOption func(*mergeOptions)

// Include restricts the merge to the named fields. Ignored entirely when
// Exclude is also supplied.
func Include(names ...string) MergeOption {
	return func(o *mergeOptions) {
		o.include = append(o.include, names...)
	}
}

// Exclude prevents the named fields from merging. Takes precedence over
// Include.
func Exclude(names ...string) MergeOption {
	return func(o *mergeOptions) {
		o.exclude = append(o.exclude, names...)
	}
}

// Overwrite forces the given values onto the task after the filtered merge.
// Overwrite values bypass Include and Exclude but still only apply to
// declared fields.
func Overwrite(values map[string]interface{}) MergeOption {
	return func(o *mergeOptions) {
		if o.overwrite == nil {
			o.overwrite = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			o.overwrite[k] = v
		}
	}
}

// Merge copies field values from src onto dst.
//
// Supported source shapes: nil (contributes nothing), map[string]interface{}
// (entries in sorted key order), PairSource (its own pair order), and
// FieldProvider (declared fields of a Task or Result). Any other shape is a
// configuration error.
//
// Only fields declared by dst.MergeFields merge; unrecognized names are
// dropped silently. The task's ExcludeFromMerge set and the bookkeeping
// names "propagate" and "result" are always excluded. When both Include
// and Exclude are supplied, Exclude wins and Include is ignored for the
// whole call. Overwrite values apply last and are never filtered.
func Merge(dst Task, src interface{}, opts ...MergeOption) error {
	pairs, err := sourcePairs(src)
	if err != nil {
		return err
	}

	var o mergeOptions
	for _, opt := range opts {
		opt(&o)
	}

	includeGiven := len(o.include) > 0
	excludeGiven := len(o.exclude) > 0
	// Exclude takes precedence over include.
	if excludeGiven && includeGiven {
		o.include = nil
		includeGiven = false
	}

	exclude := make(map[string]struct{})
	for _, n := range o.exclude {
		exclude[n] = struct{}{}
	}
	for _, n := range dst.ExcludeFromMerge() {
		exclude[n] = struct{}{}
	}
	for _, n := range alwaysExclude {
		exclude[n] = struct{}{}
	}

	include := make(map[string]struct{}, len(o.include))
	for _, n := range o.include {
		include[n] = struct{}{}
	}

	fields := make(map[string]Field)
	for _, f := range dst.MergeFields() {
		fields[f.Name] = f
	}

	applied := 0
	for _, p := range pairs {
		f, ok := fields[p.Name]
		if !ok {
			continue
		}
		if _, skip := exclude[p.Name]; skip {
			continue
		}
		if includeGiven {
			if _, want := include[p.Name]; !want {
				continue
			}
		}
		if f.set(p.Value) {
			applied++
		}
	}

	// Overwrite applies last, unfiltered.
	if len(o.overwrite) > 0 {
		names := make([]string, 0, len(o.overwrite))
		for n := range o.overwrite {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if f, ok := fields[n]; ok {
				if f.set(o.overwrite[n]) {
					applied++
				}
			}
		}
	}

	activeLogger().MergeApplied(Name(dst), applied)
	return nil
}

// sourcePairs extracts ordered name/value pairs from a merge source. Map
// sources iterate in sorted key order so merges are deterministic.
func sourcePairs(src interface{}) ([]Pair, error) {
	// A nil Task or Result pointer arrives as a non-nil interface; it
	// contributes nothing, same as an untyped nil.
	if v := reflect.ValueOf(src); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, nil
	}
	switch s := src.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, 0, len(s))
		for _, k := range keys {
			pairs = append(pairs, Pair{Name: k, Value: s[k]})
		}
		return pairs, nil
	case PairSource:
		return s.MergePairs(), nil
	case FieldProvider:
		declared := s.MergeFields()
		pairs := make([]Pair, 0, len(declared))
		for _, f := range declared {
			pairs = append(pairs, Pair{Name: f.Name, Value: f.Value()})
		}
		return pairs, nil
	default:
		return nil, errors.UnsupportedSource(fmt.Sprintf("%T not supported for merging", src))
	}
}
