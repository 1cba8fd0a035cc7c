package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/internal/cli/config"
	"github.com/leapstack-labs/unitscope/internal/project"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every unit mapped by the project",
		Long: `List every unit portion the project maps to a source file, from both
the manifest's explicit entries and the naming-convention scan of the
source directories.`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())

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

	entries := model.Units()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Unit", "Kind", "File"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Kind.String(), e.Path})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d unit files in project %s\n", len(entries), model.Name())
	return nil
}
