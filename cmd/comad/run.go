package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var line string

	cmd := &cobra.Command{
		Use:   "run [flags] -- [tokens...]",
		Short: "Parse tokens and execute the resolved command",
		Long: `Resolve the tokens against the manifest's command tree, parse the
remaining tokens and execute the command. The process exits with the
command's status; parse failures use the reserved negative statuses.

Tokens that look like flags must follow "--" so they reach the parser:

  comad run -- greet --name Ada
  comad run --line 'greet --name "Ada Lovelace"'`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeTokens,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			if line != "" {
				status, err := rt.RunLine(line)
				if err != nil {
					return err
				}
				return statusError(status)
			}
			return statusError(rt.Run(args))
		},
	}

	cmd.Flags().StringVar(&line, "line", "", "Command line to split with shell quoting rules instead of positional tokens")

	return cmd
}
