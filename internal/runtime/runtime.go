// Package runtime wires the comad subsystems together for the command-line
// tool.
//
// # Initialization Flow
//
//  1. Locate and load the command manifest
//  2. Build the command tree, compiling every run and echo expression
//  3. Create the handler with the parser settings
//  4. Configure the output manager
//
// Settings come from pkg/config, so flags, COMAD_* environment variables and
// the config file all reach the parser the same way.
package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/steinsut/comad/internal/builder"
	"github.com/steinsut/comad/internal/executor"
	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/config"
	"github.com/steinsut/comad/pkg/handler"
	"github.com/steinsut/comad/pkg/logging"
	"github.com/steinsut/comad/pkg/manifest"
	"github.com/steinsut/comad/pkg/output"
)

// Runtime holds a loaded manifest and everything needed to run it.
type Runtime struct {
	settings      *config.Settings
	manifestPath  string
	manifest      *manifest.Manifest
	handler       *handler.Handler
	outputManager *output.Manager
	log           logging.Logger
	stdout        io.Writer
}

// RuntimeConfig configures the runtime.
type RuntimeConfig struct {
	Settings *config.Settings
	// DataDir is searched for manifest.yaml when no manifest is configured
	// and ./comad.yaml does not exist.
	DataDir string
	Stdout  io.Writer
	Stderr  io.Writer
	// Logger overrides the pterm logger written to Stderr.
	Logger logging.Logger
}

// NewRuntime loads the manifest and builds the command tree.
func NewRuntime(rc *RuntimeConfig) (*Runtime, error) {
	if rc == nil {
		rc = &RuntimeConfig{}
	}
	settings := rc.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	stdout := rc.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	log := rc.Logger
	if log == nil {
		log = logging.New(rc.Stderr)
	}
	log = logging.Leveled(log, settings.Parser.Verbose)

	rt := &Runtime{
		settings: settings,
		log:      log,
		stdout:   stdout,
	}

	path, err := manifest.Locate(settings.Manifest, rc.DataDir)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	rt.manifestPath = path
	rt.manifest = m
	log.Debug("loaded manifest %s", path)

	b := builder.NewBuilder(m, &builder.BuilderConfig{
		Executors: executor.NewCompiler(stdout, log).Build,
		Logger:    log,
	})
	root, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	parserConfig := settings.Parser
	rt.handler = handler.New(
		handler.WithRoot(root),
		handler.WithConfig(&parserConfig),
		handler.WithLogger(log),
	)

	rt.outputManager = output.NewManager()
	rt.outputManager.SetWriter(stdout)
	rt.outputManager.SetDefaultFormat(settings.Output)
	rt.outputManager.SetConfig(&output.FormatConfig{
		Pretty: true,
		Colors: !settings.NoColor,
	})

	return rt, nil
}

// Run executes tokens against the tree and returns the exit status.
func (rt *Runtime) Run(tokens []string) int {
	return rt.handler.Handle(tokens...)
}

// RunLine splits line with shell quoting rules and executes it.
func (rt *Runtime) RunLine(line string) (int, error) {
	return rt.handler.HandleLine(line)
}

// Complete suggests the tokens that may follow tokens.
func (rt *Runtime) Complete(tokens []string, partial string) []string {
	return rt.handler.Complete(tokens, partial)
}

// Parse resolves and parses tokens without executing anything, prints the
// report in the requested format and returns the parse status.
func (rt *Runtime) Parse(tokens []string, format string) (int, error) {
	_, ctx, parseErr := rt.handler.Parser().Prepare(rt.handler.Root(), tokens)
	report := output.NewReport(ctx, parseErr)
	if err := rt.outputManager.Print(report, format); err != nil {
		return report.Status, err
	}
	return report.Status, nil
}

// PrintTree renders the command tree.
func (rt *Runtime) PrintTree() error {
	title := rt.manifest.Name
	if title == "" {
		title = rt.manifestPath
	}
	return output.RenderTree(rt.stdout, rt.handler.Root(), title)
}

// Root returns the built command tree.
func (rt *Runtime) Root() *command.Node {
	return rt.handler.Root()
}

// Manifest returns the loaded manifest.
func (rt *Runtime) Manifest() *manifest.Manifest {
	return rt.manifest
}

// ManifestPath returns the file the manifest was loaded from.
func (rt *Runtime) ManifestPath() string {
	return rt.manifestPath
}

// Settings returns the settings the runtime was created with.
func (rt *Runtime) Settings() *config.Settings {
	return rt.settings
}
