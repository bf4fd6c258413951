// Package main implements the comad command-line tool, which runs and
// inspects command trees declared in YAML manifests.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steinsut/comad/internal/runtime"
	"github.com/steinsut/comad/pkg/config"
)

const appName = "comad"

var (
	// Version is set at build time
	version = "0.1.0"
	// BuildDate is set at build time
	buildDate = "unknown"
)

func main() {
	err := newRootCmd().Execute()
	var exit *exitError
	switch {
	case errors.As(err, &exit):
		os.Exit(exit.code)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries a non-zero command status out of cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func statusError(status int) error {
	if status == 0 {
		return nil
	}
	return &exitError{code: status}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "comad - declare command trees and parse arguments against them",
		Long: `comad loads a YAML manifest describing a tree of commands with aliases,
flags, positional arguments and typed options, then parses argument
lists against it.

Settings are read from $XDG_CONFIG_HOME/comad/config.yaml (or the file
named by --config or COMAD_CONFIG), COMAD_* environment variables and
the flags below, in increasing priority.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cmd.PersistentFlags().String("config", "", "Path to config file")
	config.RegisterFlags(cmd.PersistentFlags())

	// Add subcommands
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd(cmd))

	setupCompletionFunctions(cmd)

	return cmd
}

// loadSettings merges config file, environment and the flags of cmd.
func loadSettings(cmd *cobra.Command) (*config.Settings, *config.Loader, error) {
	loader := config.NewLoader(appName)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader.WithPath(path)
	}
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, nil, err
	}
	settings, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return settings, loader, nil
}

// newRuntime loads settings and the manifest for cmd.
func newRuntime(cmd *cobra.Command) (*runtime.Runtime, error) {
	settings, loader, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	return runtime.NewRuntime(&runtime.RuntimeConfig{
		Settings: settings,
		DataDir:  loader.DataDir(),
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})
}
