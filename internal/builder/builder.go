// Package builder converts manifests into command trees.
package builder

import (
	"fmt"
	"strings"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/logging"
	"github.com/steinsut/comad/pkg/manifest"
)

// ExecutorFactory returns the executor for the command declared at path.
// A nil executor leaves the node without one.
type ExecutorFactory func(path []string, decl *manifest.Command) (command.Executor, error)

// Builder builds command trees from manifests.
type Builder struct {
	manifest   *manifest.Manifest
	config     *BuilderConfig
	commandMap map[string]*command.Node
}

// BuilderConfig configures command building behavior.
type BuilderConfig struct {
	// Executors creates the executor of every command. Nil means no command
	// gets an executor.
	Executors ExecutorFactory
	// Logger is attached to the root node and inherited by every child.
	Logger logging.Logger
}

// NewBuilder creates a new command builder.
func NewBuilder(m *manifest.Manifest, config *BuilderConfig) *Builder {
	if config == nil {
		config = &BuilderConfig{}
	}
	return &Builder{
		manifest:   m,
		config:     config,
		commandMap: make(map[string]*command.Node),
	}
}

// Build validates the manifest and builds the complete command tree.
func (b *Builder) Build() (*command.Node, error) {
	if err := b.manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	root := command.NewRoot()
	if b.config.Logger != nil {
		root.SetLogger(b.config.Logger)
	}
	b.commandMap[""] = root

	for _, name := range b.manifest.CommandNames() {
		if err := b.buildCommand(root, nil, name, b.manifest.Commands[name]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// buildCommand attaches decl under parent and recurses into its children.
func (b *Builder) buildCommand(parent *command.Node, parentPath []string, name string, decl *manifest.Command) error {
	path := append(append([]string(nil), parentPath...), name)
	key := strings.Join(path, " ")

	if _, err := parent.AddNode(name); err != nil {
		return fmt.Errorf("failed to add command %s: %w", key, err)
	}
	node, err := parent.GetChild(name)
	if err != nil {
		return err
	}

	tmpl, err := decl.Template()
	if err != nil {
		return fmt.Errorf("command %s: %w", key, err)
	}
	var exec command.Executor
	if b.config.Executors != nil {
		exec, err = b.config.Executors(path, decl)
		if err != nil {
			return err
		}
	}
	node.SetCommand(tmpl, exec)
	b.commandMap[key] = node

	for _, child := range decl.CommandNames() {
		if err := b.buildCommand(node, path, child, decl.Commands[child]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the node built for a space-separated command path.
func (b *Builder) Lookup(path string) (*command.Node, bool) {
	node, ok := b.commandMap[path]
	return node, ok
}
