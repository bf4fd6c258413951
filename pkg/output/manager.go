package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Manager manages output formatting and provides high-level formatting methods.
type Manager struct {
	formatters    map[string]Formatter
	defaultFormat string
	config        *FormatConfig
	writer        io.Writer
}

// NewManager creates a new output manager with default formatters.
func NewManager() *Manager {
	m := &Manager{
		formatters:    make(map[string]Formatter),
		defaultFormat: "table",
		config:        NewFormatConfig(),
		writer:        os.Stdout,
	}

	m.RegisterFormatter(NewJSONFormatter())
	m.RegisterFormatter(NewYAMLFormatter())
	m.RegisterFormatter(NewTableFormatter())

	return m
}

// RegisterFormatter registers a new formatter.
func (m *Manager) RegisterFormatter(formatter Formatter) {
	m.formatters[formatter.Name()] = formatter
}

// GetFormatter returns a formatter by name.
func (m *Manager) GetFormatter(name string) (Formatter, error) {
	formatter, ok := m.formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("formatter '%s' not found (available: %s)", name, strings.Join(m.Formats(), ", "))
	}
	return formatter, nil
}

// Formats lists the registered formatter names.
func (m *Manager) Formats() []string {
	return sortedKeys(m.formatters)
}

// SetDefaultFormat sets the default output format.
func (m *Manager) SetDefaultFormat(format string) {
	m.defaultFormat = format
}

// SetConfig sets the format configuration.
func (m *Manager) SetConfig(config *FormatConfig) {
	m.config = config
}

// GetConfig returns the current format configuration.
func (m *Manager) GetConfig() *FormatConfig {
	return m.config
}

// SetWriter sets the destination used by Print.
func (m *Manager) SetWriter(w io.Writer) {
	m.writer = w
}

// Format formats the report using the specified format, or the default
// format when it is empty.
func (m *Manager) Format(w io.Writer, report *Report, format string) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}

	return formatter.Format(w, report, m.config)
}

// Print formats the report to the manager's writer.
func (m *Manager) Print(report *Report, format string) error {
	return m.Format(m.writer, report, format)
}
