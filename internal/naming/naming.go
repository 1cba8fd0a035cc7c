// Package naming canonicalizes raw unit names and derives the file names
// the project convention expects for each unit portion.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// Strategy normalizes raw identifiers into canonical unit names and maps
// names to convention-derived file names.
type Strategy interface {
	// Normalize converts a raw identifier into a canonical Name.
	Normalize(raw string) (unit.Name, error)

	// Filename returns the relative file name the convention expects for
	// (name, kind), e.g. "pkg-child.body.unit".
	Filename(name unit.Name, kind unit.Kind) string

	// PlaceholderFilename returns the synthetic file name used for error
	// units standing in for an unresolved (name, kind).
	PlaceholderFilename(name unit.Name, kind unit.Kind) string
}

// Default naming convention suffixes and separator.
const (
	DefaultSeparator  = "-"
	DefaultSpecSuffix = ".spec.unit"
	DefaultBodySuffix = ".body.unit"
)

// identPattern matches a single unit name component.
var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Default is the standard naming convention: names are lowercase dotted
// identifiers, file names join the components with Separator and append
// the kind-specific suffix.
type Default struct {
	Separator  string
	SpecSuffix string
	BodySuffix string
}

// NewDefault returns the default naming convention.
func NewDefault() *Default {
	return &Default{
		Separator:  DefaultSeparator,
		SpecSuffix: DefaultSpecSuffix,
		BodySuffix: DefaultBodySuffix,
	}
}

// Normalize trims and lowercases raw, then validates each dotted component.
func (d *Default) Normalize(raw string) (unit.Name, error) {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return "", errors.New("empty unit name")
	}
	for _, part := range strings.Split(lowered, ".") {
		if !identPattern.MatchString(part) {
			return "", fmt.Errorf("invalid unit name %q: bad component %q", raw, part)
		}
	}
	return unit.Name(lowered), nil
}

// Filename derives the conventional relative file name for (name, kind).
func (d *Default) Filename(name unit.Name, kind unit.Kind) string {
	base := strings.ReplaceAll(string(name), ".", d.Separator)
	if kind == unit.KindBody {
		return base + d.BodySuffix
	}
	return base + d.SpecSuffix
}

// PlaceholderFilename uses the same derivation as Filename: the
// placeholder stands where the conventional file would have been.
func (d *Default) PlaceholderFilename(name unit.Name, kind unit.Kind) string {
	return d.Filename(name, kind)
}

// UnitFromFilename inverts Filename: given a base file name it returns the
// unit name and kind it encodes, or ok=false when the file does not follow
// the convention.
func (d *Default) UnitFromFilename(base string) (unit.Name, unit.Kind, bool) {
	var kind unit.Kind
	var stem string
	switch {
	case strings.HasSuffix(base, d.SpecSuffix):
		kind = unit.KindSpecification
		stem = strings.TrimSuffix(base, d.SpecSuffix)
	case strings.HasSuffix(base, d.BodySuffix):
		kind = unit.KindBody
		stem = strings.TrimSuffix(base, d.BodySuffix)
	default:
		return "", 0, false
	}

	dotted := strings.ReplaceAll(stem, d.Separator, ".")
	name, err := d.Normalize(dotted)
	if err != nil {
		return "", 0, false
	}
	return name, kind, true
}
