package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/unitscope/internal/project"
)

const sampleSpec = `-- Sample unit: public interface of app.greeter.
unit app.greeter spec

def greet
end
`

const sampleBody = `-- Sample unit: implementation of app.greeter.
unit app.greeter body

def greet
end
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new unitscope project",
		Long: `Initialize a new unitscope project with a manifest and a sample unit.

This creates:
  - unitscope.yaml with the default naming convention
  - src/ with a sample specification and body pair`,
		Example: `  # Initialize in current directory
  unitscope init

  # Initialize in a new directory
  unitscope init my-project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")
	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	manifestPath := filepath.Join(dir, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", project.ManifestName)
	}

	manifest := project.Manifest{
		Project:    filepath.Base(absOrSelf(dir)),
		SourceDirs: []string{"src"},
	}
	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o750); err != nil {
		return fmt.Errorf("create src directory: %w", err)
	}
	files := map[string]string{
		"app-greeter.spec.unit": sampleSpec,
		"app-greeter.body.unit": sampleBody,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0o600); err != nil {
			return fmt.Errorf("write sample unit: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "unitscope project initialized")
	fmt.Fprintln(cmd.OutOrStdout(), "")
	fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
	fmt.Fprintln(cmd.OutOrStdout(), "  1. Add unit files to src/")
	fmt.Fprintln(cmd.OutOrStdout(), "  2. Run 'unitscope list' to see mapped units")
	fmt.Fprintln(cmd.OutOrStdout(), "  3. Run 'unitscope closure app.greeter' to walk dependencies")
	return nil
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
