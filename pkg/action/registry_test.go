package action

import (
	"testing"

	"grue/pkg/world"
)

type stubResolver struct {
	key string
	h   Hook
}

func (s stubResolver) Resolve(ref *world.ActionRef) (Hook, bool) {
	if ref != nil && ref.Key == s.key {
		return s.h, true
	}
	return nil, false
}

func TestChainTriesEachResolverInOrder(t *testing.T) {
	called := ""
	a := stubResolver{key: "a", h: HookFunc(func(rt Runtime, hc HookContext) (Outcome, error) {
		called = "a"
		return Handled, nil
	})}
	b := stubResolver{key: "b", h: HookFunc(func(rt Runtime, hc HookContext) (Outcome, error) {
		called = "b"
		return Handled, nil
	})}
	chain := Chain{a, b}

	outcome, err := Invoke(chain, &world.ActionRef{Key: "b"}, nil, HookContext{})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Handled || called != "b" {
		t.Fatalf("expected chain to dispatch to resolver b, got called=%q outcome=%v", called, outcome)
	}
}

func TestInvokeNilRefIsUseDefault(t *testing.T) {
	outcome, err := Invoke(NewRegistry(), nil, nil, HookContext{})
	if err != nil || outcome != UseDefault {
		t.Fatalf("nil ref should resolve to UseDefault, got outcome=%v err=%v", outcome, err)
	}
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register("dam-room", HookFunc(func(rt Runtime, hc HookContext) (Outcome, error) {
		return Handled, nil
	}))

	outcome, err := Invoke(reg, &world.ActionRef{Backend: "builtin", Key: "dam-room"}, nil, HookContext{Phase: PhaseLook})
	if err != nil || outcome != Handled {
		t.Fatalf("expected builtin hook to run, got outcome=%v err=%v", outcome, err)
	}

	// Wrong backend never resolves against the builtin registry.
	if _, ok := reg.Resolve(&world.ActionRef{Backend: "lua", Key: "dam-room"}); ok {
		t.Fatalf("builtin registry must not resolve lua-backed refs")
	}
}
