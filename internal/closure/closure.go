// Package closure walks the transitive use graph of a unit through a
// provider. Units the project cannot resolve appear as missing entries;
// the walk itself never aborts on holes in the graph.
package closure

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/unitscope/internal/analysis"
	"github.com/leapstack-labs/unitscope/internal/provider"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// DefaultLimit bounds concurrent materializations per wave.
const DefaultLimit = 4

// Entry is one unit portion reached by the walk.
type Entry struct {
	Name        unit.Name
	Kind        unit.Kind
	Filename    string
	Missing     bool
	Diagnostics []unit.Diagnostic
}

// Walker traverses use graphs breadth first, materializing each reached
// unit portion through the provider with bounded concurrency.
type Walker struct {
	provider *provider.Provider
	actx     *analysis.Context
	limit    int
}

// NewWalker creates a Walker. limit <= 0 selects DefaultLimit.
func NewWalker(p *provider.Provider, actx *analysis.Context, limit int) *Walker {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Walker{provider: p, actx: actx, limit: limit}
}

type request struct {
	name unit.Name
	kind unit.Kind
}

// Walk resolves the specification and body of root and of every unit
// transitively named in use clauses. Entries come back sorted by name
// then kind.
func (w *Walker) Walk(ctx context.Context, root string) ([]Entry, error) {
	rootName, err := w.provider.NormalizeName(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[request]bool)
	frontier := []request{
		{name: rootName, kind: unit.KindSpecification},
		{name: rootName, kind: unit.KindBody},
	}
	for _, req := range frontier {
		seen[req] = true
	}

	var entries []Entry
	for len(frontier) > 0 {
		units := make([]*analysis.Unit, len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.limit)
		for i, req := range frontier {
			i, req := i, req
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				u, err := w.provider.Unit(w.actx, string(req.name), req.kind, provider.UnitOptions{})
				if err != nil {
					return err
				}
				units[i] = u
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []request
		for i, req := range frontier {
			u := units[i]
			entries = append(entries, Entry{
				Name:        req.name,
				Kind:        req.kind,
				Filename:    u.Filename,
				Missing:     u.Synthetic,
				Diagnostics: u.Diagnostics,
			})
			for _, dep := range u.Requires {
				for _, kind := range unit.Kinds() {
					r := request{name: dep, kind: kind}
					if !seen[r] {
						seen[r] = true
						next = append(next, r)
					}
				}
			}
		}
		frontier = next
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Kind < entries[j].Kind
	})
	return entries, nil
}

// Missing filters entries down to the unresolved ones.
func Missing(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Missing {
			out = append(out, e)
		}
	}
	return out
}
