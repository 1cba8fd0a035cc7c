// Package project loads the unitscope project manifest and exposes the
// unit-to-file mapping it defines. A loaded Model is NOT safe for
// concurrent use: the provider serializes every access behind its own
// mutex, and direct callers must do the same.
package project

import (
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/unitscope/internal/naming"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

type indexKey struct {
	name unit.Name
	kind unit.Kind
}

// Entry is one mapped unit portion, as listed by Units.
type Entry struct {
	Name unit.Name
	Kind unit.Kind
	Path string
}

// Model is the loaded project configuration: a name/kind to file index
// built from the manifest's explicit overrides and from scanning the
// source directories for convention-named files.
type Model struct {
	manifest *Manifest
	rootDir  string
	strategy *naming.Default
	index    map[indexKey]string
	loaded   bool
}

// Name returns the project name from the manifest.
func (m *Model) Name() string {
	if m.manifest == nil {
		return ""
	}
	return m.manifest.Project
}

// Strategy returns the naming convention the manifest configured.
func (m *Model) Strategy() naming.Strategy {
	return m.strategy
}

// RootDir returns the project root (the manifest's directory).
func (m *Model) RootDir() string {
	return m.rootDir
}

// SourceDirs returns the absolute source directories of the project.
func (m *Model) SourceDirs() []string {
	if m.manifest == nil {
		return nil
	}
	dirs := make([]string, 0, len(m.manifest.SourceDirs))
	for _, d := range m.manifest.SourceDirs {
		dirs = append(dirs, m.AbsPath(d))
	}
	return dirs
}

// FileFromUnit resolves (name, kind) to the absolute path of its source
// file. ok is false when the project has no mapping for the pair, or when
// the model has been unloaded.
func (m *Model) FileFromUnit(name unit.Name, kind unit.Kind) (path string, ok bool) {
	if !m.loaded {
		return "", false
	}
	path, ok = m.index[indexKey{name: name, kind: kind}]
	return path, ok
}

// AbsPath resolves raw against the project root unless already absolute.
func (m *Model) AbsPath(raw string) string {
	if raw == "" || filepath.IsAbs(raw) {
		return raw
	}
	return filepath.Join(m.rootDir, raw)
}

// Units lists every mapped unit portion, sorted by name then kind.
func (m *Model) Units() []Entry {
	entries := make([]Entry, 0, len(m.index))
	for k, path := range m.index {
		entries = append(entries, Entry{Name: k.name, Kind: k.kind, Path: path})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Kind < entries[j].Kind
	})
	return entries
}

// Unload drops the unit index. A subsequent FileFromUnit reports every
// unit as unmapped. Called by an owning provider before Close.
func (m *Model) Unload() {
	m.index = nil
	m.loaded = false
}

// Close releases the manifest reference. Safe to call more than once.
func (m *Model) Close() error {
	m.manifest = nil
	return nil
}
