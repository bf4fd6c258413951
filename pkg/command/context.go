package command

import (
	"github.com/steinsut/comad/pkg/value"
)

// ExecutionContext is the parsed result of one invocation. A fresh context is
// created for every invocation and handed to the resolved node's Executor.
type ExecutionContext struct {
	// Path holds the canonical names of the commands resolved from the root.
	Path []string
	// RequiredOptionCount is the number of required options that were
	// supplied with a valid value.
	RequiredOptionCount int
	Options             map[string]value.Value
	Flags               map[string]bool
	Args                map[string]value.Value
	// ExtraArgs holds trailing tokens that matched nothing.
	ExtraArgs []string
}

// NewExecutionContext returns an empty context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		Options: make(map[string]value.Value),
		Flags:   make(map[string]bool),
		Args:    make(map[string]value.Value),
	}
}

// Option returns the parsed value of a named option.
func (c *ExecutionContext) Option(name string) (value.Value, bool) {
	v, ok := c.Options[name]
	return v, ok
}

// Flag reports whether a flag was present.
func (c *ExecutionContext) Flag(name string) bool {
	return c.Flags[name]
}

// Arg returns the parsed value of a positional argument.
func (c *ExecutionContext) Arg(name string) (value.Value, bool) {
	v, ok := c.Args[name]
	return v, ok
}

// Snapshot converts the context into plain Go maps, suitable for encoding or
// expression evaluation.
func (c *ExecutionContext) Snapshot() map[string]any {
	options := make(map[string]any, len(c.Options))
	for name, v := range c.Options {
		options[name] = v.Interface()
	}
	flags := make(map[string]any, len(c.Flags))
	for name, set := range c.Flags {
		flags[name] = set
	}
	args := make(map[string]any, len(c.Args))
	for name, v := range c.Args {
		args[name] = v.Interface()
	}
	extra := make([]any, len(c.ExtraArgs))
	for i, tok := range c.ExtraArgs {
		extra[i] = tok
	}
	path := make([]any, len(c.Path))
	for i, p := range c.Path {
		path[i] = p
	}
	return map[string]any{
		"path":     path,
		"options":  options,
		"flags":    flags,
		"args":     args,
		"extra":    extra,
		"required": c.RequiredOptionCount,
	}
}

// Executor runs a resolved command. The returned status becomes the result
// of the invocation.
type Executor interface {
	Execute(ctx *ExecutionContext) int
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(ctx *ExecutionContext) int

// Execute calls f(ctx).
func (f ExecutorFunc) Execute(ctx *ExecutionContext) int {
	return f(ctx)
}
