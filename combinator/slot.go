package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// Slot is an indirection cell for forward references in a parser graph. A
// left-recursive definition needs to name itself before it is fully
// constructed: create the slot first, use it wherever the parser refers to
// itself, and resolve it once the containing parser exists.
//
// A slot always derives a proper child activation for its target, so that a
// self-reference runs through the memoizer — which is where recursion is
// detected and broken.
type Slot struct {
	target engine.Parser
}

// Resolve fills the slot. Resolving twice replaces the target; parsing
// through an unresolved slot panics.
func (s *Slot) Resolve(p engine.Parser) {
	s.target = p
}

// Parse is part of the Parser contract.
func (s *Slot) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	if s.target == nil {
		panic("combinator: parse through unresolved slot")
	}
	child, err := runChild(ctx, s.target, ctx.Offset)
	if err != nil {
		return err
	}
	sub := subscribeChild(ctx, child)
	for sub.Next() {
		ctx.Results.Add(sub.Result())
	}
	return nil
}

// NodeName is part of the Parser contract.
func (s *Slot) NodeName(cache *engine.NameCache) gll.NodeName {
	if s.target == nil {
		panic("combinator: name of unresolved slot")
	}
	return engine.HashShape("ref", []gll.NodeName{cache.NameOf(s.target)}, nil, "")
}

var _ engine.Parser = (*Slot)(nil)
