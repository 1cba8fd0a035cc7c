// Package commands implements the unitscope subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/internal/analysis"
	"github.com/leapstack-labs/unitscope/internal/cli/config"
	"github.com/leapstack-labs/unitscope/internal/provider"
)

// openProvider builds a provider and analysis context from the command
// configuration. The caller releases the provider.
func openProvider(cmd *cobra.Command) (*provider.Provider, *analysis.Context, *config.Config, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.LoggerFromContext(cmd.Context())

	manifest, err := cfg.RequireManifest()
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := provider.Open(manifest, provider.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}

	actx := analysis.NewContext(
		analysis.WithCharset(cfg.Charset),
		analysis.WithLogger(logger),
	)
	return p, actx, cfg, nil
}

// parseKindFlag reads the --kind flag; ok is false when it was not set.
func parseKindFlag(cmd *cobra.Command) (kindStr string, set bool) {
	kindStr, _ = cmd.Flags().GetString("kind")
	return kindStr, cmd.Flags().Changed("kind")
}
