package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		typ   Type
		token string
		want  Value
	}{
		{TypeBool, "true", Bool(true)},
		{TypeBool, "TRUE", Bool(true)},
		{TypeBool, "1", Bool(true)},
		{TypeBool, "False", Bool(false)},
		{TypeBool, "0", Bool(false)},
		{TypeInt, "5", Int(5)},
		{TypeInt, "-12", Int(-12)},
		{TypeFloat, "1.0", Float(1)},
		{TypeFloat, "1.0f", Float(1)},
		{TypeFloat, "2.5F", Float(2.5)},
		{TypeFloat, "-3e2", Float(-300)},
		{TypeString, " spaced value ", String(" spaced value ")},
		{TypeString, "", String("")},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.token, func(t *testing.T) {
			got, err := Parse(tt.typ, tt.token)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		typ   Type
		token string
	}{
		{TypeBool, "yes"},
		{TypeBool, ""},
		{TypeInt, "5x"},
		{TypeInt, "1.0"},
		{TypeInt, "5f"},
		{TypeInt, ""},
		{TypeFloat, "abc"},
		{TypeFloat, "1.0ff"},
		{TypeFloat, "f"},
		{TypeFloat, "NaN"},
		{TypeFloat, "inf"},
		{TypeUnknown, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.token, func(t *testing.T) {
			_, err := Parse(tt.typ, tt.token)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}
