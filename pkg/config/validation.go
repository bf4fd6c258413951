package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validator checks Settings.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

var validOutputs = []string{"table", "json", "yaml"}

// Validate returns ValidationErrors listing every problem in s, or nil.
func (v *Validator) Validate(s *Settings) error {
	v.errors = make(ValidationErrors, 0)

	v.validatePrefix("parser.long_prefix", s.Parser.LongPrefix, true)
	v.validatePrefix("parser.short_prefix", s.Parser.ShortPrefix, true)
	v.validatePrefix("parser.flag_prefix", s.Parser.FlagPrefix, false)

	if s.Parser.LongPrefix != "" && s.Parser.LongPrefix == s.Parser.ShortPrefix {
		v.addError("parser.short_prefix", "must differ from parser.long_prefix")
	}

	if s.Output != "" && !contains(validOutputs, s.Output) {
		v.addError("output", fmt.Sprintf("must be one of: %s", strings.Join(validOutputs, ", ")))
	}

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) validatePrefix(field, prefix string, required bool) {
	if prefix == "" {
		if required {
			v.addError(field, "is required")
		}
		return
	}
	if strings.ContainsAny(prefix, " \t\r\n") {
		v.addError(field, "cannot contain whitespace")
	}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message})
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
