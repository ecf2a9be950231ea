package registry

import (
	"sort"

	"github.com/bas-stringer/scry/scryerr"
)

// Registry is the process-wide, read-only-after-boot mapping from a
// procedure's base IRI to its descriptor. Procedures register themselves
// via a compiled-in Register(*Registry) function invoked from a fixed list
// at startup, in place of a dynamic module-import loader.
type Registry struct {
	procedures map[string]*Procedure

	service *ServiceDescription
}

// ServiceDescription is the service's own self-description, rooted at the
// sentinel orb subject alongside each procedure's metadata.
type ServiceDescription struct {
	Author      string
	Description string
	Provenance  string
	Version     string
}

// SetServiceDescription attaches the service-level description emitted at
// the sentinel orb subject when the orb-description graph is built. Set once
// at startup, from process configuration.
func (r *Registry) SetServiceDescription(d ServiceDescription) {
	r.service = &d
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{procedures: make(map[string]*Procedure)}
}

// Add validates proc and inserts it under proc.URI. Returns
// scryerr.ErrRegistryInvalid if validation fails or the URI is already
// registered.
func (r *Registry) Add(proc *Procedure) error {
	if err := proc.AssertValidity(); err != nil {
		return err
	}
	if _, exists := r.procedures[proc.URI]; exists {
		return scryerr.ErrRegistryInvalid.New(proc.URI, "duplicate procedure URI")
	}
	r.procedures[proc.URI] = proc
	return nil
}

// Lookup returns the procedure registered under the given base IRI.
func (r *Registry) Lookup(baseURI string) (*Procedure, bool) {
	p, ok := r.procedures[baseURI]
	return p, ok
}

// All returns every registered procedure, ordered by URI for deterministic
// iteration (used when building the orb description graph).
func (r *Registry) All() []*Procedure {
	out := make([]*Procedure, 0, len(r.procedures))
	for _, p := range r.procedures {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// Len reports how many procedures are registered.
func (r *Registry) Len() int { return len(r.procedures) }
