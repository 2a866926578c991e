package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rbsparse/internal/ast"
	"rbsparse/internal/dump"
	rbserrors "rbsparse/internal/errors"
	"rbsparse/internal/grammar"
	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

const (
	typeBufferName   = "(type)"
	methodBufferName = "(method)"
)

func newTypeCmd(s *settings) *cobra.Command {
	var vars []string
	var crossCheck bool

	cmd := &cobra.Command{
		Use:   "type <expr>",
		Short: "Parse a single type expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := location.NewBuffer(typeBufferName, args[0])
			t, err := s.loader().ParseType(buf, parser.WithVariables(vars...))
			if err != nil {
				reportSource(cmd.ErrOrStderr(), buf, err)
				return errFailed
			}
			if t == nil {
				return fmt.Errorf("no type in %q", args[0])
			}

			if err := writeNode(cmd.OutOrStdout(), s.cfg.Output, t); err != nil {
				return err
			}

			if crossCheck {
				rendered, err := grammar.CrossCheck(typeBufferName, args[0], t, vars...)
				var mismatch *grammar.MismatchError
				switch {
				case errors.As(err, &mismatch):
					fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("mismatch:"), mismatch)
					return errFailed
				case err != nil:
					return fmt.Errorf("reference grammar: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("reference grammar agrees:"), rendered)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&vars, "var", nil, "name to treat as a type variable (repeatable)")
	cmd.Flags().BoolVar(&crossCheck, "cross-check", false, "compare the result with the reference grammar")

	return cmd
}

func newMethodCmd(s *settings) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "method <expr>",
		Short: "Parse a method type such as '[T] (T) { () -> void } -> T'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := location.NewBuffer(methodBufferName, args[0])
			mt, err := s.loader().ParseMethodType(buf, parser.WithVariables(vars...))
			if err != nil {
				reportSource(cmd.ErrOrStderr(), buf, err)
				return errFailed
			}
			if mt == nil {
				return fmt.Errorf("no method type in %q", args[0])
			}
			return writeNode(cmd.OutOrStdout(), s.cfg.Output, mt)
		},
	}

	cmd.Flags().StringSliceVar(&vars, "var", nil, "name to treat as a type variable (repeatable)")

	return cmd
}

func reportSource(w io.Writer, buf *location.Buffer, err error) {
	rbserrors.NewErrorReporter(buf.Name, buf.Content).Report(w, rbserrors.FromError(err))
}

func writeNode(w io.Writer, output string, node ast.Node) error {
	if output == "text" {
		_, err := fmt.Fprintln(w, node.String())
		return err
	}
	format, err := dump.ParseFormat(output)
	if err != nil {
		return err
	}
	return dump.EncodeNode(w, format, node)
}
