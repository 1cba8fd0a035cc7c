package project

import (
	"github.com/leapstack-labs/unitscope/internal/naming"
)

// Manifest mirrors the unitscope.yaml project file.
type Manifest struct {
	Project    string               `koanf:"project" yaml:"project"`
	SourceDirs []string             `koanf:"source_dirs" yaml:"source_dirs"`
	Naming     NamingConfig         `koanf:"naming" yaml:"naming,omitempty"`
	Units      map[string]UnitFiles `koanf:"units" yaml:"units,omitempty"`
}

// NamingConfig configures how unit names map onto file names.
type NamingConfig struct {
	Separator  string `koanf:"separator" yaml:"separator,omitempty"`
	SpecSuffix string `koanf:"spec_suffix" yaml:"spec_suffix,omitempty"`
	BodySuffix string `koanf:"body_suffix" yaml:"body_suffix,omitempty"`
}

// UnitFiles is an explicit per-unit file override in the manifest.
// Paths are relative to the project root unless absolute.
type UnitFiles struct {
	Spec string `koanf:"spec" yaml:"spec,omitempty"`
	Body string `koanf:"body" yaml:"body,omitempty"`
}

// ApplyDefaults fills unset manifest fields.
func (m *Manifest) ApplyDefaults() {
	if len(m.SourceDirs) == 0 {
		m.SourceDirs = []string{"src"}
	}
	if m.Naming.Separator == "" {
		m.Naming.Separator = naming.DefaultSeparator
	}
	if m.Naming.SpecSuffix == "" {
		m.Naming.SpecSuffix = naming.DefaultSpecSuffix
	}
	if m.Naming.BodySuffix == "" {
		m.Naming.BodySuffix = naming.DefaultBodySuffix
	}
}

// Strategy builds the naming convention the manifest describes.
func (m *Manifest) Strategy() *naming.Default {
	return &naming.Default{
		Separator:  m.Naming.Separator,
		SpecSuffix: m.Naming.SpecSuffix,
		BodySuffix: m.Naming.BodySuffix,
	}
}
