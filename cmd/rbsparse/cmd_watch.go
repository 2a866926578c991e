package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rbsparse/internal/watch"
	"rbsparse/internal/workspace"
)

func newWatchCmd(s *settings) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Reparse signature files under a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loader := s.loader()
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			handle := func(f *workspace.File) { reportStatus(out, errOut, f) }

			paths, err := loader.Expand(args)
			if err != nil {
				return fmt.Errorf("expand paths: %w", err)
			}
			files, err := loader.LoadFiles(ctx, paths)
			if err != nil {
				return err
			}
			for _, f := range files {
				handle(f)
			}

			w, err := watch.New(loader, delay)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Add(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(out, "watching %s\n", args[0])
			err = w.Run(ctx, handle)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "time to wait for changes to settle")

	return cmd
}

func reportStatus(out, errOut io.Writer, f *workspace.File) {
	if f.Err != nil {
		reportFile(errOut, f)
		return
	}
	fmt.Fprintf(out, "%s %s (%d declarations)\n", color.GreenString("ok"), f.Path, len(f.Decls))
}
