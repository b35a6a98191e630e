package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// Optional wraps a child parser and never fails: every child value passes
// through unchanged, and every child error becomes a nil value at the
// activation offset.
type Optional struct {
	P engine.Parser
}

// NewOptional creates an optional wrapper around a parser.
func NewOptional(p engine.Parser) *Optional {
	return &Optional{P: p}
}

// Parse is part of the Parser contract.
func (p *Optional) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	child, err := runChild(ctx, p.P, ctx.Offset)
	if err != nil {
		return err
	}
	sub := subscribeChild(ctx, child)
	for sub.Next() {
		r := sub.Result()
		if r.IsError() {
			ctx.Results.Add(gll.Value(ctx.Offset, nil))
		} else {
			ctx.Results.Add(r)
		}
	}
	return nil
}

// NodeName is part of the Parser contract.
func (p *Optional) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("optional", []gll.NodeName{cache.NameOf(p.P)}, nil, "")
}

var _ engine.Parser = (*Optional)(nil)
