package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
)

// TableFormatter formats a report as a kind/name/value table using pterm.
type TableFormatter struct {
	style *pterm.TablePrinter
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		style: &pterm.DefaultTable,
	}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format renders the report. Failures are shown in a trailing "error" row.
func (f *TableFormatter) Format(w io.Writer, report *Report, config *FormatConfig) error {
	if config == nil {
		config = NewFormatConfig()
	}

	data := pterm.TableData{{"KIND", "NAME", "VALUE"}}
	data = append(data, []string{"command", "", report.Command})
	for _, name := range sortedKeys(report.Options) {
		data = append(data, []string{"option", name, fmt.Sprint(report.Options[name])})
	}
	for _, name := range sortedKeys(report.Flags) {
		data = append(data, []string{"flag", name, strconv.FormatBool(report.Flags[name])})
	}
	for _, name := range sortedKeys(report.Args) {
		data = append(data, []string{"arg", name, fmt.Sprint(report.Args[name])})
	}
	for i, tok := range report.Extra {
		data = append(data, []string{"extra", strconv.Itoa(i), tok})
	}
	data = append(data, []string{"status", "", strconv.Itoa(report.Status)})
	if report.Error != "" {
		data = append(data, []string{"error", "", report.Error})
	}

	table := f.style.WithHasHeader().WithData(data)
	if !config.Colors {
		table = table.WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}

	rendered, err := table.Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}
