package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unitscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("manifest", "", "")
	fs.String("charset", "", "")
	fs.Int("jobs", DefaultJobs, "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	manifestPath := writeManifest(t, "project: demo\n")

	cfg, err := Load(manifestPath, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, manifestPath, cfg.Manifest)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
	assert.Empty(t, cfg.Charset)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ManifestToolSettings(t *testing.T) {
	manifestPath := writeManifest(t, "project: demo\njobs: 2\ncharset: iso-8859-1\n")

	cfg, err := Load(manifestPath, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "iso-8859-1", cfg.Charset)
}

func TestLoad_EnvOverridesManifest(t *testing.T) {
	t.Setenv("UNITSCOPE_JOBS", "3")
	manifestPath := writeManifest(t, "project: demo\njobs: 2\n")

	cfg, err := Load(manifestPath, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("UNITSCOPE_JOBS", "3")
	manifestPath := writeManifest(t, "project: demo\njobs: 2\n")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--jobs", "5", "--verbose"}))

	cfg, err := Load(manifestPath, fs)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Jobs)
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	manifestPath := writeManifest(t, "project: demo\njobs: 2\n")

	// Flag defaults must not shadow the manifest value.
	cfg, err := Load(manifestPath, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoad_NonPositiveJobs(t *testing.T) {
	manifestPath := writeManifest(t, "project: demo\njobs: 0\n")

	cfg, err := Load(manifestPath, newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
}

func TestRequireManifest(t *testing.T) {
	manifestPath := writeManifest(t, "project: demo\n")

	cfg := &Config{Manifest: manifestPath}
	got, err := cfg.RequireManifest()
	require.NoError(t, err)
	assert.Equal(t, manifestPath, got)

	cfg = &Config{}
	_, err = cfg.RequireManifest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unitscope.yaml")

	cfg = &Config{Manifest: filepath.Join(t.TempDir(), "nope.yaml")}
	_, err = cfg.RequireManifest()
	require.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{Jobs: 7}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := IntoContext(context.Background(), cfg, logger)
	assert.Same(t, cfg, FromContext(ctx))
	assert.Same(t, logger, LoggerFromContext(ctx))

	// Bare context falls back to defaults.
	assert.Equal(t, DefaultJobs, FromContext(context.Background()).Jobs)
	assert.NotNil(t, LoggerFromContext(context.Background()))
}
