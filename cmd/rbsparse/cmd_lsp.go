package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/glsp/server"

	"rbsparse/internal/lsp"
)

func newLSPCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := lsp.NewHandler(s.loader()).Protocol()
			return server.NewServer(&handler, lsp.ServerName, false).RunStdio()
		},
	}
}
