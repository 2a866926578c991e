package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a signature file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			buf := location.NewBuffer(args[0], string(content))
			scanner := parser.NewScanner(buf, 0, -1)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			illegal := 0
			for _, tok := range scanner.ScanTokens() {
				lexeme := fmt.Sprintf("%q", tok.Lexeme)
				if tok.Type == parser.ILLEGAL {
					illegal++
					lexeme += "  " + color.RedString(scanner.ErrorFor(tok))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tok.Range, tok.Type, lexeme)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if illegal > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("%d illegal token(s)", illegal))
				return errFailed
			}
			return nil
		},
	}
}
