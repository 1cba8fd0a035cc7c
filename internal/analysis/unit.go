package analysis

import (
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// Unit is the materialized form of one compilation unit portion: either a
// parsed source file, or a synthetic placeholder carrying the diagnostic
// that explains why no source could back it.
type Unit struct {
	// Filename is the source path the unit was parsed from, or the
	// placeholder file name for synthetic units.
	Filename string

	// Name and Kind are the declared identity from the unit header.
	// Empty/zero on synthetic units and on files with no valid header.
	Name unit.Name
	Kind unit.Kind

	// Requires lists the units named in use clauses.
	Requires []unit.Name

	// Decls lists the declared identifiers.
	Decls []string

	Diagnostics []unit.Diagnostic

	// Synthetic marks units with no backing source file: error units and
	// unreadable files.
	Synthetic bool
}

// IsError reports whether the unit is degraded: synthetic, or parsed with
// diagnostics.
func (u *Unit) IsError() bool {
	return u.Synthetic || len(u.Diagnostics) > 0
}
