// Package output renders parse results and command trees as json, yaml or
// pterm tables.
package output

import (
	"io"
	"sort"
	"strings"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/engine"
)

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format writes the report to w.
	Format(w io.Writer, report *Report, config *FormatConfig) error

	// Name returns the name of the formatter (e.g., "json", "yaml", "table").
	Name() string
}

// FormatConfig contains configuration options for formatting output.
type FormatConfig struct {
	// Pretty enables pretty-printing (for JSON)
	Pretty bool

	// Colors enables colored output (for tables)
	Colors bool
}

// NewFormatConfig creates a new FormatConfig with sensible defaults.
func NewFormatConfig() *FormatConfig {
	return &FormatConfig{
		Pretty: true,
		Colors: true,
	}
}

// Report is the printable form of one parse.
type Report struct {
	Command  string          `json:"command" yaml:"command"`
	Status   int             `json:"status" yaml:"status"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
	Required int             `json:"required_satisfied" yaml:"required_satisfied"`
	Options  map[string]any  `json:"options" yaml:"options"`
	Flags    map[string]bool `json:"flags" yaml:"flags"`
	Args     map[string]any  `json:"args" yaml:"args"`
	Extra    []string        `json:"extra" yaml:"extra"`
}

// NewReport builds a Report from a context and the error returned with it.
func NewReport(ctx *command.ExecutionContext, err error) *Report {
	r := &Report{
		Status:  engine.StatusOf(err),
		Options: make(map[string]any),
		Flags:   make(map[string]bool),
		Args:    make(map[string]any),
		Extra:   []string{},
	}
	if err != nil {
		r.Error = err.Error()
	}
	if ctx == nil {
		return r
	}
	r.Command = strings.Join(ctx.Path, " ")
	r.Required = ctx.RequiredOptionCount
	for name, v := range ctx.Options {
		r.Options[name] = v.Interface()
	}
	for name, set := range ctx.Flags {
		r.Flags[name] = set
	}
	for name, v := range ctx.Args {
		r.Args[name] = v.Interface()
	}
	r.Extra = append(r.Extra, ctx.ExtraArgs...)
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
