package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBounds(t *testing.T) {
	b, err := NewBounds(Int(0), Int(100))
	require.NoError(t, err)
	assert.Equal(t, TypeInt, b.Type())
	assert.True(t, b.Min().Equal(Int(0)))
	assert.True(t, b.Max().Equal(Int(100)))

	_, err = NewBounds(Int(10), Int(1))
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = NewBounds(Int(1), Float(10))
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = NewBounds(Value{}, Value{})
	assert.ErrorIs(t, err, ErrInvalidBounds)

	assert.Panics(t, func() { MustRange("z", "a") })
}

func TestConstraintIsValid(t *testing.T) {
	tests := []struct {
		name       string
		constraint Constraint
		value      Value
		want       bool
	}{
		{"any int accepts int", Any(TypeInt), Int(-5), true},
		{"any int rejects string", Any(TypeInt), String("5"), false},
		{"any string accepts empty", Any(TypeString), String(""), true},
		{"bounded inside", Within(MustRange(0, 100)), Int(50), true},
		{"bounded lower edge", Within(MustRange(0, 100)), Int(0), true},
		{"bounded upper edge", Within(MustRange(0, 100)), Int(100), true},
		{"bounded above", Within(MustRange(0, 100)), Int(150), false},
		{"bounded below", Within(MustRange(0, 100)), Int(-1), false},
		{"bounded wrong type", Within(MustRange(0, 100)), Float(50), false},
		{"bounded float", Within(MustRange(0.5, 1.5)), Float(1.5), true},
		{"bounded string lexicographic", Within(MustRange("b", "d")), String("c"), true},
		{"bounded string outside", Within(MustRange("b", "d")), String("da"), false},
		{"bounded bool", Within(MustRange(true, true)), Bool(false), false},
		{"enum member", OneOf("value1", "value2"), String("value1"), true},
		{"enum non-member", OneOf("value1", "value2"), String("value3"), false},
		{"enum int", OneOf(1, 2, 3), Int(2), true},
		{"enum wrong type", OneOf(1, 2, 3), Float(2), false},
		{"enum bool", OneOf(true), Bool(true), true},
		{"zero constraint", Constraint{}, Int(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.constraint.IsValid(tt.value))
		})
	}
}

func TestEnum(t *testing.T) {
	_, err := Enum()
	assert.ErrorIs(t, err, ErrEmptyEnum)

	_, err = Enum(Int(1), String("1"))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	c, err := Enum(Float(2), Float(0.5), Float(2))
	require.NoError(t, err)
	assert.True(t, c.IsEnum())
	assert.Equal(t, TypeFloat, c.Type())
	assert.Equal(t, []Value{Float(0.5), Float(2)}, c.Members())
}

func TestConstraintType(t *testing.T) {
	assert.Equal(t, TypeBool, Any(TypeBool).Type())
	assert.Equal(t, TypeString, Within(MustRange("a", "b")).Type())
	assert.Equal(t, TypeInt, OneOf(4).Type())

	bounds, ok := Within(MustRange(1, 2)).Bounds()
	assert.True(t, ok)
	assert.Equal(t, "[1, 2]", bounds.String())

	_, ok = Any(TypeInt).Bounds()
	assert.False(t, ok)
	assert.Nil(t, Any(TypeInt).Members())
}

func TestConstraintString(t *testing.T) {
	assert.Equal(t, "int", Any(TypeInt).String())
	assert.Equal(t, "int in [0, 100]", Within(MustRange(0, 100)).String())
	assert.Equal(t, "string one of {a, b}", OneOf("b", "a").String())
}
