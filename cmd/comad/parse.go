package main

import (
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] -- [tokens...]",
		Short: "Parse tokens and print the result without executing",
		Long: `Resolve and parse the tokens, then print the resolved command, options,
flags, arguments and extra tokens in the configured output format
(table, json or yaml). The exit status is the parse status.`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeTokens,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			status, err := rt.Parse(args, "")
			if err != nil {
				return err
			}
			return statusError(status)
		},
	}

	return cmd
}
