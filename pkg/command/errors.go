package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidName is wrapped by every StructuralError.
	ErrInvalidName = errors.New("invalid name")
	// ErrNotFound is wrapped by every LookupError.
	ErrNotFound = errors.New("not found")
)

// StructuralError reports a declaration that can never be valid, such as an
// empty command name or an alias containing whitespace.
type StructuralError struct {
	Kind   string
	Name   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s name %q: %s", e.Kind, e.Name, e.Reason)
}

func (e *StructuralError) Unwrap() error { return ErrInvalidName }

// LookupError reports that an accessor was asked for something the node
// does not declare.
type LookupError struct {
	Kind string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s found: %s", e.Kind, e.Name)
}

func (e *LookupError) Unwrap() error { return ErrNotFound }

// ValidateName checks that name is non-empty and free of whitespace.
func ValidateName(kind, name string) error {
	if name == "" {
		return &StructuralError{Kind: kind, Name: name, Reason: "cannot be empty"}
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return &StructuralError{Kind: kind, Name: name, Reason: "cannot contain whitespace"}
	}
	return nil
}

func mustValidName(kind, name string) {
	if err := ValidateName(kind, name); err != nil {
		panic(err)
	}
}
