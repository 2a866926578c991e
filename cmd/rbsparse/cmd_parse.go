package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rbsparse/internal/dump"
	rbserrors "rbsparse/internal/errors"
	"rbsparse/internal/workspace"
)

func newParseCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file|dir>...",
		Short: "Parse signature files and print their declarations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()
			loader := s.loader()
			paths, err := loader.Expand(args)
			if err != nil {
				return fmt.Errorf("expand paths: %w", err)
			}

			files, err := loader.LoadFiles(cmd.Context(), paths)
			if err != nil {
				return err
			}

			failed := 0
			for _, f := range files {
				if f.Err != nil {
					reportFile(cmd.ErrOrStderr(), f)
					failed++
					continue
				}
				if err := writeDecls(cmd.OutOrStdout(), s.cfg.Output, f); err != nil {
					return err
				}
			}

			duration := formatDuration(time.Since(startTime))
			if failed > 0 {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "%d of %d file(s) failed after %s\n", failed, len(files), duration)
				return errFailed
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Parsed %d file(s) in %s\n", len(files), duration)
			return nil
		},
	}
}

// reportFile renders the error recorded on f as a caret diagnostic.
func reportFile(w io.Writer, f *workspace.File) {
	source := ""
	if f.Buffer != nil {
		source = f.Buffer.Content
	}
	rbserrors.NewErrorReporter(f.Path, source).Report(w, rbserrors.FromError(f.Err))
}

func writeDecls(w io.Writer, output string, f *workspace.File) error {
	if output != "text" {
		format, err := dump.ParseFormat(output)
		if err != nil {
			return err
		}
		return dump.Encode(w, format, f.Decls)
	}

	fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprintf("# %s", f.Path))
	for _, d := range f.Decls {
		fmt.Fprintln(w, d.String())
	}
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
