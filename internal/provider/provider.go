// Package provider resolves logical compilation units to source files and
// materializes them through an analysis context.
//
// A Provider wraps a project model, serializes all access to it, and
// converts unresolved units into synthetic error units, so callers
// traversing a unit graph with missing dependencies keep going instead of
// failing outright. Providers are safe for concurrent use; the model they
// wrap is not, and is only ever touched under the provider's lock.
package provider

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/unitscope/internal/analysis"
	"github.com/leapstack-labs/unitscope/internal/naming"
	"github.com/leapstack-labs/unitscope/internal/project"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// ErrReleased is returned by resolution calls made after Release.
var ErrReleased = errors.New("unit provider released")

// Provider resolves (unit name, kind) pairs against a project model.
type Provider struct {
	adapter  adapter
	strategy naming.Strategy
	logger   *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithStrategy overrides the naming strategy. Open defaults to the
// strategy the manifest configured; Attach defaults to the model's.
func WithStrategy(s naming.Strategy) Option {
	return func(p *Provider) { p.strategy = s }
}

// WithLogger sets the structured logger (discard if unset).
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// Open loads the manifest at manifestPath and returns a Provider that
// owns the resulting model and environment: Release tears them down.
func Open(manifestPath string, opts ...Option) (*Provider, error) {
	model, env, err := project.Load(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	p := newProvider(model.Strategy(), opts)
	p.adapter.h = &ownedHandle{model: model, env: env}
	p.logger.Debug("provider opened", "project", model.Name(), "manifest", manifestPath)
	return p, nil
}

// Attach returns a Provider borrowing a model owned by the caller.
// Release drops the reference but never unloads or closes the model.
func Attach(model *project.Model, opts ...Option) *Provider {
	p := newProvider(model.Strategy(), opts)
	p.adapter.h = &borrowedHandle{model: model}
	return p
}

func newProvider(strategy naming.Strategy, opts []Option) *Provider {
	p := &Provider{
		strategy: strategy,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.strategy == nil {
		p.strategy = naming.NewDefault()
	}
	return p
}

// NormalizeName canonicalizes a raw unit name with the provider's naming
// strategy.
func (p *Provider) NormalizeName(raw string) (unit.Name, error) {
	return p.strategy.Normalize(raw)
}

// UnitFilename resolves a raw unit name and kind to the absolute path of
// the backing source file. An empty path with nil error means the project
// has no mapping for the pair. After Release it returns ErrReleased.
func (p *Provider) UnitFilename(raw string, kind unit.Kind) (string, error) {
	name, err := p.strategy.Normalize(raw)
	if err != nil {
		return "", err
	}
	path, ok, err := p.adapter.resolve(name, kind)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return path, nil
}

// UnitOptions tunes a single materialization request. The zero value asks
// for the context's default charset and cached reuse.
type UnitOptions struct {
	// Charset is the source encoding; empty selects the context default.
	Charset string
	// Reparse bypasses the context's unit cache.
	Reparse bool
}

// Unit resolves a raw unit name and kind and materializes the result in
// actx. When the project has no mapping, the returned unit is a synthetic
// error unit whose diagnostic reads
//
//	Could not find source file for <name> (<specification file|body file>)
//
// A missing mapping is an expected outcome, never an error. Errors are
// reserved for invalid names, use after Release, and charset failures.
func (p *Provider) Unit(actx *analysis.Context, raw string, kind unit.Kind, opts UnitOptions) (*analysis.Unit, error) {
	name, err := p.strategy.Normalize(raw)
	if err != nil {
		return nil, err
	}

	path, ok, err := p.adapter.resolve(name, kind)
	if err != nil {
		return nil, err
	}
	if !ok {
		placeholder := p.strategy.PlaceholderFilename(name, kind)
		message := fmt.Sprintf("Could not find source file for %s (%s)", name, kind.DescribeFile())
		p.logger.Debug("unit not found", "unit", name, "kind", kind.String())
		return actx.UnitFromError(placeholder, message, opts.Charset), nil
	}

	// The model lock is not held here; the context has its own
	// concurrency control.
	return actx.UnitFromFile(path, opts.Charset, opts.Reparse)
}

// Release tears down whatever the provider owns. Idempotent: the second
// and later calls are no-ops. After Release, resolution calls fail fast
// with ErrReleased.
func (p *Provider) Release() error {
	if err := p.adapter.release(); err != nil {
		return fmt.Errorf("release provider: %w", err)
	}
	return nil
}

// Released reports whether Release has run.
func (p *Provider) Released() bool {
	return p.adapter.released()
}
