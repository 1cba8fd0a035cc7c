// Package parser reads unit source files into their header, use clauses,
// and declarations. Malformed input degrades into diagnostics on the
// result rather than hard errors, so every readable file yields a
// structurally valid unit.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// Result is the parsed form of one unit source file.
type Result struct {
	Name     unit.Name
	Kind     unit.Kind
	HasUnit  bool // a unit header was found
	Requires []unit.Name
	Decls    []string

	Diagnostics []unit.Diagnostic
}

// namePattern matches a dotted unit name as written in source.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)*$`)

// declPattern matches a declaration identifier.
var declPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Parse reads src (already decoded to UTF-8) into a Result.
//
// The grammar is line based:
//
//	-- comment
//	unit <dotted-name> spec|body
//	use <dotted-name>
//	def <identifier>
//	end
func Parse(filename, src string) *Result {
	res := &Result{}

	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		lineNo := i + 1

		fields := strings.Fields(line)
		switch fields[0] {
		case "unit":
			res.parseHeader(filename, lineNo, fields)
		case "use":
			res.parseUse(filename, lineNo, fields)
		case "def":
			res.parseDecl(filename, lineNo, fields)
		case "end":
			// anything after end is ignored
			return res.finish(filename)
		default:
			res.addDiagnostic(filename, lineNo, "unrecognized directive %q", fields[0])
		}
	}

	return res.finish(filename)
}

func (r *Result) parseHeader(filename string, lineNo int, fields []string) {
	if r.HasUnit {
		r.addDiagnostic(filename, lineNo, "duplicate unit header")
		return
	}
	if len(fields) != 3 {
		r.addDiagnostic(filename, lineNo, "unit header needs a name and a kind")
		return
	}
	if !namePattern.MatchString(fields[1]) {
		r.addDiagnostic(filename, lineNo, "invalid unit name %q", fields[1])
		return
	}
	kind, err := unit.ParseKind(fields[2])
	if err != nil {
		r.addDiagnostic(filename, lineNo, "invalid unit kind %q", fields[2])
		return
	}
	r.Name = unit.Name(strings.ToLower(fields[1]))
	r.Kind = kind
	r.HasUnit = true
}

func (r *Result) parseUse(filename string, lineNo int, fields []string) {
	if len(fields) != 2 || !namePattern.MatchString(fields[1]) {
		r.addDiagnostic(filename, lineNo, "malformed use clause")
		return
	}
	name := unit.Name(strings.ToLower(fields[1]))
	for _, existing := range r.Requires {
		if existing == name {
			return
		}
	}
	r.Requires = append(r.Requires, name)
}

func (r *Result) parseDecl(filename string, lineNo int, fields []string) {
	if len(fields) != 2 || !declPattern.MatchString(fields[1]) {
		r.addDiagnostic(filename, lineNo, "malformed declaration")
		return
	}
	r.Decls = append(r.Decls, fields[1])
}

// finish records the one structural diagnostic that can only be judged at
// end of input.
func (r *Result) finish(filename string) *Result {
	if !r.HasUnit {
		r.Diagnostics = append([]unit.Diagnostic{{
			Filename: filename,
			Message:  "missing unit header",
		}}, r.Diagnostics...)
	}
	return r
}

func (r *Result) addDiagnostic(filename string, line int, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, unit.Diagnostic{
		Filename: filename,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}
