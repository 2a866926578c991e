// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"rbsparse/internal/config"
	"rbsparse/internal/workspace"
)

const version = "0.1.0"

// errFailed is returned once diagnostics have already been printed.
var errFailed = errors.New("failed")

// settings are the merged configuration file and command-line flags.
type settings struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

func (s *settings) loader() *workspace.Loader {
	return workspace.NewLoader(s.cfg.Workers, s.cfg.MaxDepth, s.cfg.Extensions)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := &settings{cfg: config.Default()}

	var (
		output   string
		colorOpt string
		workers  int
		maxDepth int
	)

	rootCmd := &cobra.Command{
		Use:           "rbsparse",
		Short:         "Parse and inspect RBS signature files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(s.configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("color") {
				cfg.Color = colorOpt
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			cfg.Log.Verbosity += s.verbose
			if err := cfg.Validate(); err != nil {
				return err
			}
			s.cfg = cfg

			switch cfg.Color {
			case "always":
				color.NoColor = false
			case "never":
				color.NoColor = true
			}
			commonlog.Configure(cfg.Log.Verbosity, cfg.LogFile())
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.configPath, "config", "", "configuration file (default: search for .rbsparse.toml or .rbsparse.yaml)")
	flags.StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")
	flags.StringVar(&colorOpt, "color", "auto", "colorize diagnostics (auto, always, never)")
	flags.IntVar(&workers, "workers", config.DefaultWorkers, "number of files parsed concurrently")
	flags.IntVar(&maxDepth, "max-depth", config.DefaultMaxDepth, "maximum nesting depth accepted before parsing")
	flags.CountVarP(&s.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd(s))
	rootCmd.AddCommand(newTypeCmd(s))
	rootCmd.AddCommand(newMethodCmd(s))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newWatchCmd(s))
	rootCmd.AddCommand(newLSPCmd(s))
	rootCmd.AddCommand(newREPLCmd(s))

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.LoadDefault(dir)
}
