package engine

import (
	"errors"
	"fmt"
)

// Reserved statuses returned instead of an executor result when parsing or
// dispatch fails. Executors are expected to return non-negative values.
const (
	StatusOK                     = 0
	StatusUnknownOption          = -1
	StatusDuplicateOption        = -2
	StatusInvalidOptionValue     = -3
	StatusInvalidValueParse      = -4
	StatusMissingRequiredOptions = -5
	StatusDispatchFailure        = -6
)

var (
	ErrUnknownOption          = errors.New("unknown option")
	ErrDuplicateOption        = errors.New("duplicate option")
	ErrInvalidOptionValue     = errors.New("invalid option value")
	ErrInvalidValueParse      = errors.New("invalid value")
	ErrMissingRequiredOptions = errors.New("missing required options")
	ErrDispatch               = errors.New("no executor")
)

var statusByKind = map[error]int{
	ErrUnknownOption:          StatusUnknownOption,
	ErrDuplicateOption:        StatusDuplicateOption,
	ErrInvalidOptionValue:     StatusInvalidOptionValue,
	ErrInvalidValueParse:      StatusInvalidValueParse,
	ErrMissingRequiredOptions: StatusMissingRequiredOptions,
	ErrDispatch:               StatusDispatchFailure,
}

// ParseError is a failure that aborts one invocation. Kind is one of the
// Err* sentinels above.
type ParseError struct {
	Kind    error
	Command string
	Detail  string
	Err     error
}

func newParseError(kind error, command, detail string, cause error) *ParseError {
	return &ParseError{Kind: kind, Command: command, Detail: detail, Err: cause}
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Command != "" {
		msg = fmt.Sprintf("%s: %s", e.Command, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Status returns the reserved status for the failure.
func (e *ParseError) Status() int {
	return statusByKind[e.Kind]
}

// StatusOf maps an error from Parse or Prepare to its reserved status. A nil
// error maps to StatusOK; errors that are not parse failures map to
// StatusDispatchFailure.
func StatusOf(err error) int {
	if err == nil {
		return StatusOK
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Status()
	}
	return StatusDispatchFailure
}
