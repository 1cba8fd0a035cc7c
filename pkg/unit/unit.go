// Package unit defines the core identifiers shared by the resolver, the
// analysis engine, and the CLI: unit names, unit kinds, and diagnostics.
package unit

import (
	"fmt"
	"strings"
)

// Kind selects which portion of a compilation unit is wanted.
type Kind int

const (
	// KindSpecification is the public interface portion of a unit.
	KindSpecification Kind = iota
	// KindBody is the implementation portion of a unit.
	KindBody
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindSpecification:
		return "specification"
	case KindBody:
		return "body"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DescribeFile returns the phrase used in resolution diagnostics:
// "specification file" or "body file".
func (k Kind) DescribeFile() string {
	if k == KindBody {
		return "body file"
	}
	return "specification file"
}

// Kinds lists both unit kinds in resolution order.
func Kinds() []Kind {
	return []Kind{KindSpecification, KindBody}
}

// ParseKind maps a CLI spelling onto a Kind.
// Accepts "spec", "specification", "body" and "implementation".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spec", "specification":
		return KindSpecification, nil
	case "body", "implementation":
		return KindBody, nil
	default:
		return 0, fmt.Errorf("unknown unit kind %q (expected spec or body)", s)
	}
}

// Name is a canonical dotted unit name such as "pkg.child".
// Values are produced by a naming strategy; raw user input should not be
// used as a Name directly.
type Name string

// String returns the name as a plain string.
func (n Name) String() string { return string(n) }

// Parent returns the enclosing unit name, or "" for a root unit.
// "pkg.child" has parent "pkg"; "pkg" has none.
func (n Name) Parent() Name {
	if i := strings.LastIndex(string(n), "."); i >= 0 {
		return n[:i]
	}
	return ""
}

// Diagnostic is a single message attached to an analysis unit.
type Diagnostic struct {
	Filename string
	Line     int
	Message  string
}

// String formats the diagnostic in file:line: message form.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.Filename, d.Line, d.Message)
	}
	if d.Filename != "" {
		return fmt.Sprintf("%s: %s", d.Filename, d.Message)
	}
	return d.Message
}
