// Package executor turns the run and echo entries of a manifest command into
// command.Executor values backed by expr programs.
package executor

import (
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/logging"
	"github.com/steinsut/comad/pkg/manifest"
)

// StatusScriptFailure is returned when a run or echo expression fails at
// execution time.
const StatusScriptFailure = 1

// placeholder matches {expression} inside echo templates.
var placeholder = regexp.MustCompile(`\{([^}]+)\}`)

// Compiler builds executors from manifest declarations. Every expression is
// checked against the execution context layout at build time.
type Compiler struct {
	out io.Writer
	log logging.Logger
	env map[string]any
}

// NewCompiler creates a Compiler. Echo output goes to out, or stdout when nil.
func NewCompiler(out io.Writer, log logging.Logger) *Compiler {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Compiler{
		out: out,
		log: log,
		env: command.NewExecutionContext().Snapshot(),
	}
}

// Build compiles the executor for the command at path. It returns a nil
// executor when the declaration has neither run nor echo.
func (c *Compiler) Build(path []string, decl *manifest.Command) (command.Executor, error) {
	if decl == nil || (decl.Run == "" && decl.Echo == "") {
		return nil, nil
	}
	name := strings.Join(path, " ")

	s := &Script{name: name, out: c.out, log: c.log}
	if decl.Run != "" {
		program, err := expr.Compile(decl.Run, expr.Env(c.env))
		if err != nil {
			return nil, fmt.Errorf("%s: failed to compile run expression: %w", name, err)
		}
		s.run = program
	}
	if decl.Echo != "" {
		segments, err := c.compileTemplate(decl.Echo)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to compile echo template: %w", name, err)
		}
		s.echo = segments
	}
	return s, nil
}

func (c *Compiler) compileTemplate(tmpl string) ([]segment, error) {
	var segments []segment
	last := 0
	for _, loc := range placeholder.FindAllStringSubmatchIndex(tmpl, -1) {
		if loc[0] > last {
			segments = append(segments, segment{text: tmpl[last:loc[0]]})
		}
		source := tmpl[loc[2]:loc[3]]
		program, err := expr.Compile(source, expr.Env(c.env))
		if err != nil {
			return nil, fmt.Errorf("placeholder {%s}: %w", source, err)
		}
		segments = append(segments, segment{program: program})
		last = loc[1]
	}
	if last < len(tmpl) {
		segments = append(segments, segment{text: tmpl[last:]})
	}
	return segments, nil
}

type segment struct {
	text    string
	program *vm.Program
}

// Script executes a compiled command. Echo runs before run, and the result
// of run becomes the status.
type Script struct {
	name string
	run  *vm.Program
	echo []segment
	out  io.Writer
	log  logging.Logger
}

// Execute implements command.Executor.
func (s *Script) Execute(ctx *command.ExecutionContext) int {
	env := ctx.Snapshot()

	if len(s.echo) > 0 {
		line, err := s.render(env)
		if err != nil {
			s.log.Error("%s: echo failed: %v", s.name, err)
			return StatusScriptFailure
		}
		if _, err := fmt.Fprintln(s.out, line); err != nil {
			s.log.Error("%s: write failed: %v", s.name, err)
			return StatusScriptFailure
		}
	}

	if s.run == nil {
		return 0
	}
	result, err := expr.Run(s.run, env)
	if err != nil {
		s.log.Error("%s: run failed: %v", s.name, err)
		return StatusScriptFailure
	}
	status, err := toStatus(result)
	if err != nil {
		s.log.Error("%s: %v", s.name, err)
		return StatusScriptFailure
	}
	s.log.Debug("%s: run returned %d", s.name, status)
	return status
}

func (s *Script) render(env map[string]any) (string, error) {
	var b strings.Builder
	for _, seg := range s.echo {
		if seg.program == nil {
			b.WriteString(seg.text)
			continue
		}
		out, err := expr.Run(seg.program, env)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%v", out)
	}
	return b.String(), nil
}

// toStatus maps a run result onto an exit status. Integers are used as is,
// true means success and false means 1.
func toStatus(result any) (int, error) {
	switch v := result.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("run returned non-integral status %v", v)
		}
		return int(v), nil
	case bool:
		if v {
			return 0, nil
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("run returned %T, want int or bool", result)
	}
}
