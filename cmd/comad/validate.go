package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steinsut/comad/pkg/command"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate settings and the command manifest",
		Long: `Validate the merged settings and the command manifest.

This command checks:
  - Config file syntax and parser settings
  - Command, alias, flag, option and argument names
  - Option types, bounds and enumerations
  - Run expressions and echo templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			verbose, _ := cmd.Flags().GetBool("verbose")

			rt, err := newRuntime(cmd)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if verbose {
				fmt.Fprintf(out, "✓ Manifest loaded: %s\n", rt.ManifestPath())
			}

			count := 0
			rt.Root().Walk(func(n *command.Node) bool {
				if n.HasParent() {
					count++
				}
				return true
			})
			fmt.Fprintf(out, "✓ %d commands are valid\n", count)
			return nil
		},
	}

	return cmd
}
