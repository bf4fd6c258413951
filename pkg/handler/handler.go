// Package handler is the public entry point: it owns a root command and
// runs token sequences through the parser.
package handler

import (
	"fmt"

	"github.com/google/shlex"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/engine"
	"github.com/steinsut/comad/pkg/logging"
)

// Handler owns one root command node.
type Handler struct {
	root   *command.Node
	parser *engine.Parser
}

// Option configures a Handler.
type Option func(*options)

type options struct {
	config *engine.Config
	logger logging.Logger
	root   *command.Node
}

// WithConfig sets the parser configuration.
func WithConfig(cfg *engine.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithLogger sets the diagnostic logger for the parser and the tree.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRoot uses an existing tree instead of an empty root.
func WithRoot(root *command.Node) Option {
	return func(o *options) { o.root = root }
}

// New creates a Handler with an empty root unless WithRoot is given.
func New(opts ...Option) *Handler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.root == nil {
		o.root = command.NewRoot()
	}
	if o.logger != nil {
		o.root.SetLogger(o.logger)
	}
	return &Handler{
		root:   o.root,
		parser: engine.New(o.config, o.logger),
	}
}

// Root returns the root node for declaring commands.
func (h *Handler) Root() *command.Node { return h.root }

// SetRoot replaces the root node.
func (h *Handler) SetRoot(root *command.Node) { h.root = root }

// Parser returns the parser the handler delegates to.
func (h *Handler) Parser() *engine.Parser { return h.parser }

// Handle runs one invocation and returns its status.
func (h *Handler) Handle(tokens ...string) int {
	return h.parser.Run(h.root, tokens)
}

// HandleArgs runs process-style arguments, where argv[0] is the program name.
func (h *Handler) HandleArgs(argv []string) int {
	if len(argv) == 0 {
		return h.Handle()
	}
	return h.Handle(argv[1:]...)
}

// HandleLine splits line with shell quoting rules and runs the tokens.
func (h *Handler) HandleLine(line string) (int, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return 0, fmt.Errorf("failed to split command line: %w", err)
	}
	return h.Handle(tokens...), nil
}

// HandleStrings runs any sequence of string-like tokens.
func HandleStrings[S ~string](h *Handler, tokens []S) int {
	converted := make([]string, len(tokens))
	for i, tok := range tokens {
		converted[i] = string(tok)
	}
	return h.Handle(converted...)
}
