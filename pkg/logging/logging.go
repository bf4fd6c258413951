// Package logging provides the diagnostic sink used by the command tree and
// the parser. Messages are emitted at one of three levels: info, debug and
// error.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Level is the severity of a diagnostic message.
type Level int

const (
	LevelError Level = iota
	LevelDebug
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Logger emits formatted diagnostic messages.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// PtermLogger writes messages through pterm prefix printers.
type PtermLogger struct {
	info  *pterm.PrefixPrinter
	debug *pterm.PrefixPrinter
	err   *pterm.PrefixPrinter
}

// New creates a logger writing to w. A nil writer means stderr.
func New(w io.Writer) *PtermLogger {
	if w == nil {
		w = os.Stderr
	}
	return &PtermLogger{
		info:  pterm.Info.WithWriter(w),
		debug: pterm.Debug.WithDebugger(false).WithWriter(w),
		err:   pterm.Error.WithWriter(w),
	}
}

// Info logs at info level.
func (l *PtermLogger) Info(format string, args ...any) {
	l.info.Println(fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *PtermLogger) Debug(format string, args ...any) {
	l.debug.Println(fmt.Sprintf(format, args...))
}

// Error logs at error level.
func (l *PtermLogger) Error(format string, args ...any) {
	l.err.Println(fmt.Sprintf(format, args...))
}

type nop struct{}

func (nop) Info(string, ...any)  {}
func (nop) Debug(string, ...any) {}
func (nop) Error(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

// Leveled returns l unchanged when verbose is set. Otherwise debug messages
// are dropped and the other levels pass through.
func Leveled(l Logger, verbose bool) Logger {
	if verbose {
		return l
	}
	return quiet{l}
}

type quiet struct{ Logger }

func (quiet) Debug(string, ...any) {}

// Entry is one message captured by a Recorder.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every message in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, format string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Info records an info message.
func (r *Recorder) Info(format string, args ...any) { r.add(LevelInfo, format, args) }

// Debug records a debug message.
func (r *Recorder) Debug(format string, args ...any) { r.add(LevelDebug, format, args) }

// Error records an error message.
func (r *Recorder) Error(format string, args ...any) { r.add(LevelError, format, args) }

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages at the given level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
