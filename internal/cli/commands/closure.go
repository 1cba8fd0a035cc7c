package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/internal/closure"
)

// NewClosureCommand creates the closure command.
func NewClosureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closure <unit>",
		Short: "Walk the transitive use graph of a unit",
		Long: `Resolve the specification and body of a unit and of everything it
transitively requires. Units the project cannot resolve are listed as
missing rather than aborting the walk.`,
		Example: `  unitscope closure app.main

  # Fail the command when the closure has holes
  unitscope closure app.main --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClosure(cmd, args[0])
		},
	}

	cmd.Flags().Bool("strict", false, "exit non-zero when units are missing")
	return cmd
}

func runClosure(cmd *cobra.Command, rawName string) error {
	p, actx, cfg, err := openProvider(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = p.Release() }()

	walker := closure.NewWalker(p, actx, cfg.Jobs)
	entries, err := walker.Walk(cmd.Context(), rawName)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Unit", "Kind", "File", "Status"})

	for _, e := range entries {
		status := "ok"
		if e.Missing {
			status = "missing"
		} else if len(e.Diagnostics) > 0 {
			status = fmt.Sprintf("%d diagnostics", len(e.Diagnostics))
		}
		t.AppendRow(table.Row{e.Name, e.Kind.String(), e.Filename, status})
	}
	t.Render()

	missing := closure.Missing(entries)
	fmt.Fprintf(cmd.OutOrStdout(), "%d units, %d missing\n", len(entries), len(missing))

	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(missing) > 0 {
		return fmt.Errorf("closure of %s has %d missing units", rawName, len(missing))
	}
	return nil
}
