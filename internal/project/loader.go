package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// ManifestName is the name of the project manifest file.
const ManifestName = "unitscope.yaml"

// ManifestNameAlt is the alternate manifest file name.
const ManifestNameAlt = "unitscope.yml"

// maxUpwardSearchLevels limits how far up the tree FindProjectRoot looks.
const maxUpwardSearchLevels = 10

// Load reads the manifest at path and builds the project model and its
// environment. Explicit unit overrides from the manifest win over files
// discovered by scanning the source directories.
func Load(path string) (*Model, *Environment, error) {
	absManifest, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve manifest path: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(absManifest), kyaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var man Manifest
	if err := k.Unmarshal("", &man); err != nil {
		return nil, nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	man.ApplyDefaults()

	rootDir := filepath.Dir(absManifest)
	env, err := loadEnvironment(rootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load environment: %w", err)
	}

	// Scenario variables may appear as ${VAR} in source dirs.
	for i, d := range man.SourceDirs {
		man.SourceDirs[i] = expandVars(d, env)
	}

	model := &Model{
		manifest: &man,
		rootDir:  rootDir,
		strategy: man.Strategy(),
		index:    make(map[indexKey]string),
		loaded:   true,
	}

	if err := model.scanSourceDirs(); err != nil {
		return nil, nil, err
	}
	if err := model.applyOverrides(); err != nil {
		return nil, nil, err
	}

	return model, env, nil
}

// FindManifest returns the manifest path inside dir, or "".
func FindManifest(dir string) string {
	for _, name := range []string{ManifestName, ManifestNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// FindProjectRoot walks upward from startDir looking for a manifest.
// Returns empty string if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if FindManifest(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// scanSourceDirs walks each source directory and indexes every file whose
// name follows the naming convention. Files that do not follow it are
// ignored. A missing source directory is not an error.
func (m *Model) scanSourceDirs() error {
	for _, dir := range m.SourceDirs() {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			name, kind, ok := m.strategy.UnitFromFilename(d.Name())
			if !ok {
				return nil
			}
			key := indexKey{name: name, kind: kind}
			if _, exists := m.index[key]; !exists {
				m.index[key] = path
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan source dir %s: %w", dir, err)
		}
	}
	return nil
}

// applyOverrides indexes the manifest's explicit unit file entries,
// replacing any convention-derived mapping for the same pair.
func (m *Model) applyOverrides() error {
	for rawName, files := range m.manifest.Units {
		name, err := m.strategy.Normalize(rawName)
		if err != nil {
			return fmt.Errorf("manifest units: %w", err)
		}
		if files.Spec != "" {
			m.index[indexKey{name: name, kind: unit.KindSpecification}] = m.AbsPath(files.Spec)
		}
		if files.Body != "" {
			m.index[indexKey{name: name, kind: unit.KindBody}] = m.AbsPath(files.Body)
		}
	}
	return nil
}

// varPattern matches ${VAR} references.
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandVars substitutes ${VAR} with scenario variables, falling back to
// the process environment. Unknown variables are left as written.
func expandVars(s string, env *Environment) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := env.Var(varName); val != "" {
			return val
		}
		return match
	})
}
