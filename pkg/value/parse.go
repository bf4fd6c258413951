package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParse is returned when a token cannot be converted to the requested Type.
var ErrParse = errors.New("cannot convert token")

// Parse converts a command-line token into a Value of type t.
//
// Booleans accept "0", "1", "false" and "true" in any case. Integers must be
// a whole base-10 token. Floats accept one trailing 'f' or 'F' suffix
// ("1.5f") but nothing else after the number, and reject NaN and infinities.
// Strings are taken verbatim.
func Parse(t Type, token string) (Value, error) {
	switch t {
	case TypeBool:
		switch strings.ToLower(token) {
		case "0", "false":
			return Bool(false), nil
		case "1", "true":
			return Bool(true), nil
		}
		return Value{}, parseErr(t, token, nil)
	case TypeInt:
		i, err := strconv.Atoi(token)
		if err != nil {
			return Value{}, parseErr(t, token, err)
		}
		return Int(i), nil
	case TypeFloat:
		trimmed := token
		if n := len(trimmed); n > 1 && (trimmed[n-1] == 'f' || trimmed[n-1] == 'F') {
			trimmed = trimmed[:n-1]
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, parseErr(t, token, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, parseErr(t, token, nil)
		}
		return Float(f), nil
	case TypeString:
		return String(token), nil
	default:
		return Value{}, fmt.Errorf("%w %q: %w", ErrParse, token, ErrUnknownType)
	}
}

func parseErr(t Type, token string, cause error) error {
	if cause != nil {
		var numErr *strconv.NumError
		if errors.As(cause, &numErr) {
			cause = numErr.Err
		}
		return fmt.Errorf("%w %q to %s: %v", ErrParse, token, t, cause)
	}
	return fmt.Errorf("%w %q to %s", ErrParse, token, t)
}
