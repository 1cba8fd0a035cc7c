// Package cli provides the unitscope command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/internal/cli/commands"
	"github.com/leapstack-labs/unitscope/internal/cli/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var manifestFlag string

	rootCmd := &cobra.Command{
		Use:   "unitscope",
		Short: "unitscope - Unit Resolution and Analysis Toolkit",
		Long: `unitscope resolves logical compilation units to source files through a
project manifest and materializes parsed units for analysis.

A unitscope.yaml manifest maps unit names (like "pkg.child") to the source
files holding their specification and body portions, either explicitly or
through the project naming convention. Units without a source file resolve
to placeholder error units so dependency traversal keeps going.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(manifestFlag, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			cmd.SetContext(config.IntoContext(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&manifestFlag, "manifest", "", "path to unitscope.yaml (default: search upward)")
	rootCmd.PersistentFlags().String("charset", "", "source encoding (utf-8, iso-8859-1, windows-1252)")
	rootCmd.PersistentFlags().Int("jobs", config.DefaultJobs, "concurrent materializations during closure walks")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewResolveCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewClosureCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
