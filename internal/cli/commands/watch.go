package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/internal/analysis"
	"github.com/leapstack-labs/unitscope/internal/cli/config"
	"github.com/leapstack-labs/unitscope/internal/project"
	"github.com/leapstack-labs/unitscope/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch source directories and report unit changes",
		Long: `Watch the project's source directories. When a unit file changes, its
cached analysis result is invalidated and the file is re-parsed, with any
diagnostics reported. Runs until interrupted.`,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())
	logger := config.LoggerFromContext(cmd.Context())

	manifest, err := cfg.RequireManifest()
	if err != nil {
		return err
	}

	model, env, err := project.Load(manifest)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	defer func() { _ = model.Close() }()

	actx := analysis.NewContext(
		analysis.WithCharset(cfg.Charset),
		analysis.WithLogger(logger),
	)

	onChange := func(path string) {
		u, err := actx.UnitFromFile(path, cfg.Charset, true)
		if err != nil {
			logger.Warn("reparse failed", "path", path, "error", err)
			return
		}
		if u.IsError() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d diagnostics\n", path, len(u.Diagnostics))
			for _, d := range u.Diagnostics {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d)
			}
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s %s)\n", path, u.Name, u.Kind)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(model.SourceDirs(), actx, logger, onChange)
	if err := w.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}
	return nil
}
