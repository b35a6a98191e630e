package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// MapFunc transforms one result into another. Returning nil suppresses the
// path.
type MapFunc func(gll.Result) *gll.Result

// MapTo applies a mapping function to every result of its child parser.
// Value results are replaced by the function's return value, or dropped when
// the function returns nil. Error results are forwarded unchanged; the
// function still observes them.
//
// Functions have no structural identity, so two MapTo instances over the
// same child share a node name unless they carry distinct Tags. Callers give
// semantically different mappings different tags.
type MapTo struct {
	P   engine.Parser
	Fn  MapFunc
	Tag string
}

// NewMapTo creates a mapping parser. The tag distinguishes the mapping in
// the structural node name.
func NewMapTo(p engine.Parser, tag string, fn MapFunc) *MapTo {
	return &MapTo{P: p, Fn: fn, Tag: tag}
}

// Parse is part of the Parser contract.
func (p *MapTo) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	child, err := runChild(ctx, p.P, ctx.Offset)
	if err != nil {
		return err
	}
	sub := subscribeChild(ctx, child)
	for sub.Next() {
		r := sub.Result()
		mapped := p.Fn(r)
		if r.IsError() {
			ctx.Results.Add(r)
			continue
		}
		if mapped != nil {
			ctx.Results.Add(*mapped)
		}
	}
	return nil
}

// NodeName is part of the Parser contract.
func (p *MapTo) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("map-to", []gll.NodeName{cache.NameOf(p.P)}, nil, p.Tag)
}

var _ engine.Parser = (*MapTo)(nil)
