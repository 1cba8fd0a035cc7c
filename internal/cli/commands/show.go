package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscope/internal/provider"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <unit>",
		Short: "Materialize a unit and print its summary",
		Long: `Materialize a unit through the analysis engine and print what it
declares and requires. Units without a source file are shown as error
units with their resolution diagnostic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}

	cmd.Flags().String("kind", "", "unit kind: spec or body")
	cmd.Flags().Bool("reparse", false, "bypass the analysis cache")
	return cmd
}

func runShow(cmd *cobra.Command, rawName string) error {
	p, actx, _, err := openProvider(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = p.Release() }()

	reparse, _ := cmd.Flags().GetBool("reparse")

	kinds := unit.Kinds()
	if kindStr, set := parseKindFlag(cmd); set {
		kind, err := unit.ParseKind(kindStr)
		if err != nil {
			return err
		}
		kinds = []unit.Kind{kind}
	}

	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		u, err := p.Unit(actx, rawName, kind, provider.UnitOptions{Reparse: reparse})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", rawName, kind)
		fmt.Fprintf(cmd.OutOrStdout(), "  file: %s\n", u.Filename)
		if u.Synthetic {
			fmt.Fprintln(cmd.OutOrStdout(), "  status: missing")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "  status: parsed")
		}
		if len(u.Requires) > 0 {
			names := make([]string, len(u.Requires))
			for i, r := range u.Requires {
				names[i] = string(r)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  requires: %s\n", strings.Join(names, ", "))
		}
		if len(u.Decls) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  declares: %s\n", strings.Join(u.Decls, ", "))
		}
		for _, d := range u.Diagnostics {
			fmt.Fprintf(cmd.OutOrStdout(), "  diagnostic: %s\n", d)
		}
	}
	return nil
}
