package main

import (
	"github.com/spf13/cobra"

	"rbsparse/internal/repl"
)

func newREPLCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read type expressions from stdin and print their canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), s.loader())
		},
	}
}
