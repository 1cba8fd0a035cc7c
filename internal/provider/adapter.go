package provider

import (
	"sync"

	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// adapter serializes every access to the shared project model. The model
// is not reentrant, so resolve and release both run under mu. The mutex
// belongs to this adapter, never a package global: independent providers
// over independent models do not contend.
type adapter struct {
	mu sync.Mutex
	h  handle // nil once released
}

// resolve looks up (name, kind) under the lock. The lock is held only
// across the direct model access, never across analysis delegation.
func (a *adapter) resolve(name unit.Name, kind unit.Kind) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.h == nil {
		return "", false, ErrReleased
	}
	path, ok := a.h.resolve(name, kind)
	return path, ok, nil
}

// release tears down the handle once; later calls are no-ops. The handle
// reference is cleared before teardown runs so a failing step can never
// leave a half-released handle reachable.
func (a *adapter) release() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.h == nil {
		return nil
	}
	h := a.h
	a.h = nil
	return h.release()
}

// released reports whether release has run.
func (a *adapter) released() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.h == nil
}
