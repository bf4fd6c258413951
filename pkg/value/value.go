// Package value implements the typed values, bounds and constraints used to
// validate command options and positional arguments.
package value

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies the kind of data a Value carries.
type Type int

const (
	// TypeUnknown is the zero Type and never describes a valid value.
	TypeUnknown Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
)

var (
	// ErrTypeMismatch is returned when a value is read as a type it does not hold.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrUnknownType is returned for type names that do not map to a Type.
	ErrUnknownType = errors.New("unknown value type")
)

var typeNames = map[Type]string{
	TypeUnknown: "unknown",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeString:  "string",
}

// String returns the lower-case name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the four concrete types.
func (t Type) Valid() bool {
	return t >= TypeBool && t <= TypeString
}

// ParseType converts a type name such as "int" or "string" into a Type.
// The aliases "boolean", "integer", "number" and "str" are accepted.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean":
		return TypeBool, nil
	case "int", "integer":
		return TypeInt, nil
	case "float", "number", "double":
		return TypeFloat, nil
	case "string", "str":
		return TypeString, nil
	default:
		return TypeUnknown, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Kind is the set of Go types a Value can be built from.
type Kind interface {
	bool | int | float64 | string
}

// Value holds exactly one bool, int, float or string, tagged with its Type.
// The zero Value has TypeUnknown.
type Value struct {
	typ Type
	b   bool
	i   int
	f   float64
	s   string
}

// Bool wraps a bool.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Int wraps an int.
func Int(i int) Value { return Value{typ: TypeInt, i: i} }

// Float wraps a float64.
func Float(f float64) Value { return Value{typ: TypeFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// Of wraps any supported Go value, choosing the Type from its Go type.
func Of[T Kind](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case float64:
		return Float(x)
	default:
		return String(any(v).(string))
	}
}

// FromAny wraps a dynamically typed value. Integer and float kinds other than
// int and float64 are not accepted.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case Value:
		return x, nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported Go type %T", ErrTypeMismatch, v)
	}
}

// Type returns the tag of the held value.
func (v Value) Type() Type { return v.typ }

// IsZero reports whether v holds nothing.
func (v Value) IsZero() bool { return v.typ == TypeUnknown }

func (v Value) expect(t Type) error {
	if v.typ != t {
		return fmt.Errorf("%w: holds %s, requested %s", ErrTypeMismatch, v.typ, t)
	}
	return nil
}

// Bool returns the held bool or ErrTypeMismatch.
func (v Value) Bool() (bool, error) {
	if err := v.expect(TypeBool); err != nil {
		return false, err
	}
	return v.b, nil
}

// Int returns the held int or ErrTypeMismatch.
func (v Value) Int() (int, error) {
	if err := v.expect(TypeInt); err != nil {
		return 0, err
	}
	return v.i, nil
}

// Float returns the held float64 or ErrTypeMismatch.
func (v Value) Float() (float64, error) {
	if err := v.expect(TypeFloat); err != nil {
		return 0, err
	}
	return v.f, nil
}

// Str returns the held string or ErrTypeMismatch.
func (v Value) Str() (string, error) {
	if err := v.expect(TypeString); err != nil {
		return "", err
	}
	return v.s, nil
}

// Get retrieves the held value as T. It fails with ErrTypeMismatch when the
// stored tag does not correspond to T.
func Get[T Kind](v Value) (T, error) {
	var zero T
	var want Type
	switch any(zero).(type) {
	case bool:
		want = TypeBool
	case int:
		want = TypeInt
	case float64:
		want = TypeFloat
	case string:
		want = TypeString
	}
	if err := v.expect(want); err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// Interface returns the held value as an untyped Go value, or nil for the zero Value.
func (v Value) Interface() any {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeString:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether both values have the same type and content.
func (v Value) Equal(o Value) bool {
	return v.typ == o.typ && v.Interface() == o.Interface()
}

// Compare orders two values of the same type: false < true, numbers by
// magnitude and strings lexicographically.
func (v Value) Compare(o Value) (int, error) {
	if v.typ != o.typ {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, v.typ, o.typ)
	}
	switch v.typ {
	case TypeBool:
		switch {
		case v.b == o.b:
			return 0, nil
		case !v.b:
			return -1, nil
		default:
			return 1, nil
		}
	case TypeInt:
		return cmp3(v.i, o.i), nil
	case TypeFloat:
		return cmp3(v.f, o.f), nil
	case TypeString:
		return strings.Compare(v.s, o.s), nil
	default:
		return 0, fmt.Errorf("%w: cannot compare %s values", ErrTypeMismatch, v.typ)
	}
}

func cmp3[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String formats the held value for diagnostics.
func (v Value) String() string {
	if v.typ == TypeUnknown {
		return "<none>"
	}
	return fmt.Sprint(v.Interface())
}
