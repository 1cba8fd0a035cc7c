package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <unit>",
		Short: "Resolve a unit name to its source file",
		Long: `Resolve a unit name to the source file backing it in the project.

Without --kind, both the specification and body paths are printed.
With --kind, only the requested path is printed (script-friendly).`,
		Example: `  # Both portions
  unitscope resolve pkg.child

  # Just the body path
  unitscope resolve pkg.child --kind body`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0])
		},
	}

	cmd.Flags().String("kind", "", "unit kind: spec or body")
	return cmd
}

func runResolve(cmd *cobra.Command, rawName string) error {
	p, _, _, err := openProvider(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = p.Release() }()

	kindStr, kindSet := parseKindFlag(cmd)
	if kindSet {
		kind, err := unit.ParseKind(kindStr)
		if err != nil {
			return err
		}
		path, err := p.UnitFilename(rawName, kind)
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("no %s for unit %s", kind.DescribeFile(), rawName)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	found := 0
	for _, kind := range unit.Kinds() {
		path, err := p.UnitFilename(rawName, kind)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s (not found)\n", kind.String()+":")
			continue
		}
		found++
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", kind.String()+":", path)
	}
	if found == 0 {
		return fmt.Errorf("unit %s has no source files in this project", rawName)
	}
	return nil
}
