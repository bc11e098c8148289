package rr

import (
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
)

// Builder reports whether it handles a type code and, if so, decodes
// RDATA for it. Modeled as an interface (rather than a bare function) so
// the registry can hold a heterogeneous, copy-on-write list of builders.
type Builder interface {
	CanBuild(t Type) bool
	Build(t Type, r *wire.Reader, rdlength int) (Data, error)
}

// Registry dispatches a type code to the first registered Builder that
// claims it. It is copy-on-write: Build (the hot path, called once per
// decoded record) never takes a lock; Register does.
type Registry struct {
	builders *support.COWSlice[Builder]
}

// NewRegistry returns a Registry pre-populated with the native builder
// (every type this package names) and the default opaque-RDATA
// fallback, which is always registered last so it only catches what
// native misses.
func NewRegistry() *Registry {
	reg := &Registry{builders: support.NewCOWSlice[Builder]()}
	reg.Register(nativeBuilder{})
	reg.Register(defaultBuilder{})
	return reg
}

// Register appends b to the registry. Safe to call concurrently with
// Build; rare relative to Build, so the cost of copying the snapshot is
// acceptable.
func (reg *Registry) Register(b Builder) {
	reg.builders.Append(b)
}

// Build finds the first builder that claims t and decodes RDATA with it.
func (reg *Registry) Build(t Type, r *wire.Reader, rdlength int) (Data, error) {
	for _, b := range reg.builders.Load() {
		if b.CanBuild(t) {
			return b.Build(t, r, rdlength)
		}
	}
	// NewRegistry always installs defaultBuilder, which claims every
	// type, so this is unreachable through the constructor, but a
	// caller-built empty Registry could hit it.
	return nil, &support.FormatError{Msg: "no builder registered for type"}
}

// Default is the process-wide registry new Message values decode
// against unless a caller supplies their own.
var Default = NewRegistry()
