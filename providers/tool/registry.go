package tool

import (
	"fmt"
	"strings"
)

// Registry is the fixed catalog of tools available to an agent. It is built
// once from a list of [Spec] values and is immutable afterwards, which makes
// it safe for concurrent read access from independent agent runs without
// locking.
//
// Lookups are case-insensitive (models routinely vary the casing of tool
// names); display names keep their original form and insertion order.
type Registry struct {
	specs  []Spec
	byName map[string]int
}

// NewRegistry builds a registry from the given specs. Registering two tools
// under the same name, or a tool with an empty name or nil Run function, is a
// configuration error detected here rather than at call time.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{
		specs:  make([]Spec, 0, len(specs)),
		byName: make(map[string]int, len(specs)),
	}

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("tool registered with empty name")
		}
		if spec.Run == nil {
			return nil, fmt.Errorf("tool %q registered with nil Run function", spec.Name)
		}

		key := strings.ToLower(spec.Name)
		if _, exists := r.byName[key]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", spec.Name)
		}

		r.byName[key] = len(r.specs)
		r.specs = append(r.specs, spec)
	}

	return r, nil
}

// Lookup returns the spec registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (Spec, bool) {
	i, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Spec{}, false
	}
	return r.specs[i], true
}

// Has reports whether a tool with the given name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[strings.ToLower(name)]
	return ok
}

// All returns the specs in insertion order. The slice is a copy; the registry
// itself cannot be modified through it.
func (r *Registry) All() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Names returns the registered tool names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, spec := range r.specs {
		names[i] = spec.Name
	}
	return names
}

// Size returns the number of registered tools.
func (r *Registry) Size() int {
	return len(r.specs)
}
