package action

import "grue/pkg/world"

// Resolver turns a catalogue *world.ActionRef into a callable Hook. The
// built-in Registry below is one implementation; pkg/scripting provides
// another for Lua-backed hooks.
type Resolver interface {
	Resolve(ref *world.ActionRef) (Hook, bool)
}

// Registry holds built-in (Go closure) hooks keyed by catalogue id. It
// implements Resolver for ActionRefs whose Backend is "builtin".
type Registry struct {
	hooks map[string]Hook
}

// NewRegistry creates an empty builtin hook registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string]Hook)}
}

// Register adds or replaces the hook stored under key.
func (r *Registry) Register(key string, h Hook) {
	r.hooks[key] = h
}

// Resolve implements Resolver.
func (r *Registry) Resolve(ref *world.ActionRef) (Hook, bool) {
	if ref == nil || ref.Backend != "builtin" {
		return nil, false
	}
	h, ok := r.hooks[ref.Key]
	return h, ok
}

// Chain tries each Resolver in order and returns the first hit. It lets
// the catalogue loader offer both the builtin registry and a scripting
// resolver without pkg/action depending on pkg/scripting.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(ref *world.ActionRef) (Hook, bool) {
	for _, r := range c {
		if h, ok := r.Resolve(ref); ok {
			return h, true
		}
	}
	return nil, false
}

// Invoke resolves ref against resolver and calls it, returning UseDefault
// (not an error) when ref is nil or cannot be resolved — an entity with no
// action hook simply falls through to the next dispatcher layer.
func Invoke(resolver Resolver, ref *world.ActionRef, rt Runtime, hc HookContext) (Outcome, error) {
	if ref == nil {
		return UseDefault, nil
	}
	h, ok := resolver.Resolve(ref)
	if !ok {
		return UseDefault, nil
	}
	return h.Call(rt, hc)
}
