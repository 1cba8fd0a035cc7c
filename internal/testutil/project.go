package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteProject materializes a project fixture in a temp directory.
// manifest is the unitscope.yaml content; files maps project-relative
// paths to file contents. Returns the manifest path.
func WriteProject(t testing.TB, manifest string, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	manifestPath := filepath.Join(root, "unitscope.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o600))
	return manifestPath
}
