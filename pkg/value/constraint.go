package value

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidBounds is returned when bounds are built from mismatched or inverted values.
	ErrInvalidBounds = errors.New("invalid value bounds")
	// ErrEmptyEnum is returned when an enumerated constraint has no members.
	ErrEmptyEnum = errors.New("enumerated constraint needs at least one value")
)

// Bounds is an inclusive [min, max] range over one Type.
type Bounds struct {
	min Value
	max Value
}

// NewBounds builds an inclusive range. Both ends must share a concrete Type
// and min must not be greater than max.
func NewBounds(min, max Value) (Bounds, error) {
	if !min.Type().Valid() {
		return Bounds{}, fmt.Errorf("%w: unsupported type %s", ErrInvalidBounds, min.Type())
	}
	c, err := min.Compare(max)
	if err != nil {
		return Bounds{}, fmt.Errorf("%w: %v", ErrInvalidBounds, err)
	}
	if c > 0 {
		return Bounds{}, fmt.Errorf("%w: min %s is greater than max %s", ErrInvalidBounds, min, max)
	}
	return Bounds{min: min, max: max}, nil
}

// Range is the generic form of NewBounds.
func Range[T Kind](min, max T) (Bounds, error) {
	return NewBounds(Of(min), Of(max))
}

// MustRange is like Range but panics on error. It is meant for declarations
// with literal bounds.
func MustRange[T Kind](min, max T) Bounds {
	b, err := Range(min, max)
	if err != nil {
		panic(err)
	}
	return b
}

// Type returns the type of both ends.
func (b Bounds) Type() Type { return b.min.Type() }

// Min returns the lower end.
func (b Bounds) Min() Value { return b.min }

// Max returns the upper end.
func (b Bounds) Max() Value { return b.max }

// Contains reports whether v lies within the range, ends included.
func (b Bounds) Contains(v Value) bool {
	lo, err := b.min.Compare(v)
	if err != nil || lo > 0 {
		return false
	}
	hi, err := v.Compare(b.max)
	return err == nil && hi <= 0
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%s, %s]", b.min, b.max)
}

type constraintKind int

const (
	kindAny constraintKind = iota
	kindBounded
	kindEnum
)

// enumSet holds the allowed members of an enumerated constraint. Only the
// map matching typ is populated.
type enumSet struct {
	typ     Type
	bools   map[bool]struct{}
	ints    map[int]struct{}
	floats  map[float64]struct{}
	strings map[string]struct{}
}

func newEnumSet(values []Value) (*enumSet, error) {
	if len(values) == 0 {
		return nil, ErrEmptyEnum
	}
	set := &enumSet{typ: values[0].Type()}
	if !set.typ.Valid() {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrTypeMismatch, set.typ)
	}
	for _, v := range values {
		if v.Type() != set.typ {
			return nil, fmt.Errorf("%w: enumerated values mix %s and %s", ErrTypeMismatch, set.typ, v.Type())
		}
		set.add(v)
	}
	return set, nil
}

func (s *enumSet) add(v Value) {
	switch s.typ {
	case TypeBool:
		if s.bools == nil {
			s.bools = make(map[bool]struct{})
		}
		s.bools[v.b] = struct{}{}
	case TypeInt:
		if s.ints == nil {
			s.ints = make(map[int]struct{})
		}
		s.ints[v.i] = struct{}{}
	case TypeFloat:
		if s.floats == nil {
			s.floats = make(map[float64]struct{})
		}
		s.floats[v.f] = struct{}{}
	case TypeString:
		if s.strings == nil {
			s.strings = make(map[string]struct{})
		}
		s.strings[v.s] = struct{}{}
	}
}

func (s *enumSet) contains(v Value) bool {
	if v.Type() != s.typ {
		return false
	}
	var ok bool
	switch s.typ {
	case TypeBool:
		_, ok = s.bools[v.b]
	case TypeInt:
		_, ok = s.ints[v.i]
	case TypeFloat:
		_, ok = s.floats[v.f]
	case TypeString:
		_, ok = s.strings[v.s]
	}
	return ok
}

// members returns the allowed values in ascending order.
func (s *enumSet) members() []Value {
	var out []Value
	switch s.typ {
	case TypeBool:
		for b := range s.bools {
			out = append(out, Bool(b))
		}
	case TypeInt:
		for i := range s.ints {
			out = append(out, Int(i))
		}
	case TypeFloat:
		for f := range s.floats {
			out = append(out, Float(f))
		}
	case TypeString:
		for str := range s.strings {
			out = append(out, String(str))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		c, _ := out[i].Compare(out[j])
		return c < 0
	})
	return out
}

// Constraint describes which values an option accepts: any value of a type,
// values within Bounds, or members of a fixed set.
//
// The zero Constraint accepts nothing; build one with Any, Within or OneOf.
type Constraint struct {
	kind   constraintKind
	typ    Type
	bounds Bounds
	enum   *enumSet
}

// Any accepts every value of type t.
func Any(t Type) Constraint {
	return Constraint{kind: kindAny, typ: t}
}

// Within accepts values inside b.
func Within(b Bounds) Constraint {
	return Constraint{kind: kindBounded, typ: b.Type(), bounds: b}
}

// Enum accepts only the listed values, which must be non-empty and share one type.
func Enum(values ...Value) (Constraint, error) {
	set, err := newEnumSet(values)
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{kind: kindEnum, typ: set.typ, enum: set}, nil
}

// OneOf accepts only first and the rest. The signature guarantees the set is
// non-empty and homogeneous.
func OneOf[T Kind](first T, rest ...T) Constraint {
	values := make([]Value, 0, len(rest)+1)
	values = append(values, Of(first))
	for _, v := range rest {
		values = append(values, Of(v))
	}
	c, err := Enum(values...)
	if err != nil {
		// unreachable: values are homogeneous and non-empty
		panic(err)
	}
	return c
}

// Type returns the value type the constraint applies to.
func (c Constraint) Type() Type { return c.typ }

// IsBounded reports whether the constraint is a range.
func (c Constraint) IsBounded() bool { return c.kind == kindBounded }

// IsEnum reports whether the constraint is an enumerated set.
func (c Constraint) IsEnum() bool { return c.kind == kindEnum }

// Bounds returns the range of a bounded constraint.
func (c Constraint) Bounds() (Bounds, bool) {
	return c.bounds, c.kind == kindBounded
}

// Members returns the sorted members of an enumerated constraint.
func (c Constraint) Members() []Value {
	if c.kind != kindEnum || c.enum == nil {
		return nil
	}
	return c.enum.members()
}

// IsValid reports whether v satisfies the constraint.
func (c Constraint) IsValid(v Value) bool {
	if !c.typ.Valid() || v.Type() != c.typ {
		return false
	}
	switch c.kind {
	case kindBounded:
		return c.bounds.Contains(v)
	case kindEnum:
		return c.enum != nil && c.enum.contains(v)
	default:
		return true
	}
}

func (c Constraint) String() string {
	switch c.kind {
	case kindBounded:
		return fmt.Sprintf("%s in %s", c.typ, c.bounds)
	case kindEnum:
		members := c.Members()
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = m.String()
		}
		return fmt.Sprintf("%s one of {%s}", c.typ, strings.Join(parts, ", "))
	default:
		return c.typ.String()
	}
}
