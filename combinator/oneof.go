package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// OneOf runs an ordered list of alternatives against the same offset and
// emits the value results of every alternative that matched, in child
// order. Error paths of matching runs are discarded; only when no
// alternative produced a value does OneOf emit a single error.
type OneOf struct {
	Children []engine.Parser
}

// NewOneOf creates an ordered-choice parser.
func NewOneOf(children ...engine.Parser) *OneOf {
	return &OneOf{Children: children}
}

// Parse is part of the Parser contract.
func (p *OneOf) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	scratch := make([]gll.Result, 0, len(p.Children))
	anyValue := false
	for _, c := range p.Children {
		child, err := runChild(ctx, c, ctx.Offset)
		if err != nil {
			return err
		}
		sub := subscribeChild(ctx, child)
		for sub.Next() {
			r := sub.Result()
			scratch = append(scratch, r)
			if !r.IsError() {
				anyValue = true
			}
		}
	}
	if !anyValue {
		ctx.Results.Add(gll.Errorf(ctx.Offset, "expected OneOf"))
		return nil
	}
	for _, r := range scratch {
		if !r.IsError() {
			ctx.Results.Add(r)
		}
	}
	return nil
}

// NodeName is part of the Parser contract.
func (p *OneOf) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("one-of", childNames(cache, p.Children), nil, "")
}

var _ engine.Parser = (*OneOf)(nil)
