// Package analysis materializes parsed units from source files. A Context
// is one analysis session: units materialized against it are cached per
// filename and reused until invalidated or explicitly reparsed. Contexts
// carry their own concurrency control, independent of the project model's
// lock.
package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/leapstack-labs/unitscope/internal/parser"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// Context is an analysis session.
type Context struct {
	id      string
	charset string
	logger  *slog.Logger

	mu    sync.RWMutex
	units map[string]*Unit
}

// Option configures a Context.
type Option func(*Context)

// WithCharset sets the default source encoding for the session.
func WithCharset(charset string) Option {
	return func(c *Context) { c.charset = charset }
}

// WithLogger sets the structured logger (discard if unset).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

// NewContext creates an analysis session with a fresh session ID.
func NewContext(opts ...Option) *Context {
	c := &Context{
		id:     uuid.NewString(),
		units:  make(map[string]*Unit),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the session identifier.
func (c *Context) ID() string { return c.id }

// UnitFromFile materializes the unit backed by path. The cached unit is
// reused unless reparse is set. A file that cannot be read yields a
// synthetic unit carrying the read diagnostic, not an error: degraded
// inputs stay structurally valid. An unsupported charset is an error.
func (c *Context) UnitFromFile(path, charset string, reparse bool) (*Unit, error) {
	if charset == "" {
		charset = c.charset
	}

	if !reparse {
		c.mu.RLock()
		u, ok := c.units[path]
		c.mu.RUnlock()
		if ok {
			return u, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring the write lock.
	if !reparse {
		if u, ok := c.units[path]; ok {
			return u, nil
		}
	}

	u, err := c.materialize(path, charset)
	if err != nil {
		return nil, err
	}
	c.units[path] = u
	return u, nil
}

// UnitFromError builds a synthetic error unit bound to a placeholder
// filename and one diagnostic message, and caches it like any other unit.
func (c *Context) UnitFromError(filename, message, charset string) *Unit {
	_ = charset // reserved: error units carry no decoded content

	c.mu.Lock()
	defer c.mu.Unlock()

	if u, ok := c.units[filename]; ok && u.Synthetic {
		return u
	}

	u := &Unit{
		Filename:  filename,
		Synthetic: true,
		Diagnostics: []unit.Diagnostic{{
			Filename: filename,
			Message:  message,
		}},
	}
	c.units[filename] = u

	c.logger.Debug("materialized error unit", "session", c.id, "filename", filename)
	return u
}

// Invalidate drops the cached unit for path, if any.
func (c *Context) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.units, path)
}

// InvalidateAll clears the unit cache.
func (c *Context) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units = make(map[string]*Unit)
}

// Cached reports whether path has a cached unit.
func (c *Context) Cached(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.units[path]
	return ok
}

// materialize reads, decodes, and parses path. Caller holds the write lock.
func (c *Context) materialize(path, charset string) (*Unit, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the project model
	if err != nil {
		c.logger.Debug("unreadable source file", "session", c.id, "path", path, "error", err)
		return &Unit{
			Filename:  path,
			Synthetic: true,
			Diagnostics: []unit.Diagnostic{{
				Filename: path,
				Message:  fmt.Sprintf("cannot read source file: %v", err),
			}},
		}, nil
	}

	text, err := decode(raw, charset)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	res := parser.Parse(path, text)
	c.logger.Debug("parsed unit",
		"session", c.id,
		"path", path,
		"unit", res.Name,
		"diagnostics", len(res.Diagnostics))

	return &Unit{
		Filename:    path,
		Name:        res.Name,
		Kind:        res.Kind,
		Requires:    res.Requires,
		Decls:       res.Decls,
		Diagnostics: res.Diagnostics,
	}, nil
}
