package provider

import (
	"errors"

	"github.com/leapstack-labs/unitscope/internal/project"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

// handle is the ownership state of the project model behind a provider.
// An owned handle loaded the model itself and must tear it down on
// release; a borrowed handle was given a live model by its caller and
// must leave it alone.
type handle interface {
	resolve(name unit.Name, kind unit.Kind) (string, bool)
	release() error
}

type ownedHandle struct {
	model *project.Model
	env   *project.Environment
}

func (h *ownedHandle) resolve(name unit.Name, kind unit.Kind) (string, bool) {
	return h.model.FileFromUnit(name, kind)
}

// release tears down in strict order: unload the index before closing the
// model so no mapping can survive the manifest going away, then close the
// environment. References are cleared even when a step errors; the errors
// are joined and reported, but nothing keeps claiming ownership.
func (h *ownedHandle) release() error {
	var errs []error
	h.model.Unload()
	if err := h.model.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := h.env.Close(); err != nil {
		errs = append(errs, err)
	}
	h.model = nil
	h.env = nil
	return errors.Join(errs...)
}

type borrowedHandle struct {
	model *project.Model
}

func (h *borrowedHandle) resolve(name unit.Name, kind unit.Kind) (string, bool) {
	return h.model.FileFromUnit(name, kind)
}

func (h *borrowedHandle) release() error {
	// The model belongs to the caller; just drop the reference.
	h.model = nil
	return nil
}
