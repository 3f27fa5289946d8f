package task

// Pair is a named value extracted from a merge source.
type Pair struct {
	Name  string
	Value interface{}
}

// PairSource is implemented by merge sources that produce their own ordered
// name/value pairs, such as a parsed command line argument bag.
type PairSource interface {
	MergePairs() []Pair
}

// FieldProvider exposes the statically declared mergeable fields of a type.
// Tasks and results implement it; there is no runtime introspection.
type FieldProvider interface {
	MergeFields() []Field
}

// Field binds a field name to storage on a task or result. Declare fields
// with Bind or one of the typed constructors; Merge looks targets up by
// name and writes through the bound pointer.
type Field struct {
	Name string
	get  func() interface{}
	set  func(interface{}) bool
}

// Value returns the current value of the bound field.
func (f Field) Value() interface{} {
	return f.get()
}

// Bind declares a field backed by ptr. A source value of a different
// dynamic type is dropped silently; a nil source value resets the field to
// its zero value.
func Bind[T any](name string, ptr *T) Field {
	return Field{
		Name: name,
		get:  func() interface{} { return *ptr },
		set: func(v interface{}) bool {
			if v == nil {
				var zero T
				*ptr = zero
				return true
			}
			tv, ok := v.(T)
			if !ok {
				return false
			}
			*ptr = tv
			return true
		},
	}
}

// String declares a string field.
func String(name string, ptr *string) Field {
	return Bind(name, ptr)
}

// Bool declares a bool field.
func Bool(name string, ptr *bool) Field {
	return Bind(name, ptr)
}

// Int declares an int field. Numeric source values are coerced: TOML
// decodes integers as int64 and YAML/JSON numbers may arrive as float64.
func Int(name string, ptr *int) Field {
	return Field{
		Name: name,
		get:  func() interface{} { return *ptr },
		set: func(v interface{}) bool {
			switch n := v.(type) {
			case nil:
				*ptr = 0
			case int:
				*ptr = n
			case int64:
				*ptr = int(n)
			case float64:
				*ptr = int(n)
			default:
				return false
			}
			return true
		},
	}
}

// Float declares a float64 field. Integer source values are coerced.
func Float(name string, ptr *float64) Field {
	return Field{
		Name: name,
		get:  func() interface{} { return *ptr },
		set: func(v interface{}) bool {
			switch n := v.(type) {
			case nil:
				*ptr = 0
			case float64:
				*ptr = n
			case int:
				*ptr = float64(n)
			case int64:
				*ptr = float64(n)
			default:
				return false
			}
			return true
		},
	}
}
