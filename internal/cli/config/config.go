// Package config loads CLI configuration from the project manifest, the
// environment, and command-line flags.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/unitscope/internal/project"
)

// Defaults for tool settings.
const (
	DefaultJobs = 4
)

// Config is the effective CLI configuration.
type Config struct {
	// Manifest is the path to unitscope.yaml.
	Manifest string `koanf:"manifest"`
	// Charset is the default source encoding for analysis sessions.
	Charset string `koanf:"charset"`
	// Jobs bounds concurrent materializations during closure walks.
	Jobs int `koanf:"jobs"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > UNITSCOPE_ env vars > manifest
// tool settings > defaults. When no --manifest flag is given, the
// manifest is searched upward from the working directory.
func Load(manifestFlag string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"manifest": "",
		"charset":  "",
		"jobs":     DefaultJobs,
		"verbose":  false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Manifest file (tool settings may live beside the project model).
	manifestPath := findManifest(manifestFlag)
	if manifestPath != "" {
		if err := k.Load(file.Provider(manifestPath), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", manifestPath, err)
		}
	}

	// 3. Environment variables: UNITSCOPE_JOBS -> jobs.
	if err := k.Load(env.Provider("UNITSCOPE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "UNITSCOPE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Manifest = manifestPath
	if cfg.Jobs <= 0 {
		cfg.Jobs = DefaultJobs
	}
	return &cfg, nil
}

// findManifest picks the manifest path: the explicit flag wins, otherwise
// search upward from the working directory.
func findManifest(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if root := project.FindProjectRoot(cwd); root != "" {
		return project.FindManifest(root)
	}
	return ""
}

// RequireManifest returns the manifest path or a friendly error when the
// command cannot run without a project.
func (c *Config) RequireManifest() (string, error) {
	if c.Manifest == "" {
		return "", fmt.Errorf("no %s found (run inside a project or pass --manifest)", project.ManifestName)
	}
	if _, err := os.Stat(c.Manifest); err != nil {
		return "", fmt.Errorf("manifest %s: %w", c.Manifest, err)
	}
	abs, err := filepath.Abs(c.Manifest)
	if err != nil {
		return c.Manifest, nil //nolint:nilerr
	}
	return abs, nil
}

type configKey struct{}
type loggerKey struct{}

// IntoContext stores cfg and logger for command handlers.
func IntoContext(ctx context.Context, cfg *Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the config, or a default one.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{Jobs: DefaultJobs}
}

// LoggerFromContext retrieves the logger, or a discard logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
