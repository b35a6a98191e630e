package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/results"
)

// --- Non-ambiguous sequence ------------------------------------------------

// Sequence runs its children in order, each at the position the previous one
// reached. Children are treated as yielding a single canonical result: the
// sequence takes the first result of every child, and the first error stops
// the sequence and propagates. On success it emits one value holding the
// ordered child values as a []interface{}.
type Sequence struct {
	Children []engine.Parser
}

// NewSequence creates a non-ambiguous sequence of child parsers.
func NewSequence(children ...engine.Parser) *Sequence {
	return &Sequence{Children: children}
}

// Parse is part of the Parser contract.
func (p *Sequence) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	offset := ctx.Offset
	values := make([]interface{}, 0, len(p.Children))
	for _, c := range p.Children {
		child, err := runChild(ctx, c, offset)
		if err != nil {
			return err
		}
		sub := subscribeChild(ctx, child)
		if !sub.Next() {
			ctx.Results.Add(gll.Errorf(offset, "expected more"))
			return nil
		}
		r := sub.Result()
		if r.IsError() {
			ctx.Results.Add(r)
			return nil
		}
		values = append(values, r.Value)
		offset = r.Offset
	}
	ctx.Results.Add(gll.Value(offset, values))
	return nil
}

// NodeName is part of the Parser contract.
func (p *Sequence) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("sequence", childNames(cache, p.Children), nil, "")
}

var _ engine.Parser = (*Sequence)(nil)

// --- Ambiguous sequence ----------------------------------------------------

// AmbiguousValue is one node of the lazily produced ambiguity tree shared by
// SequenceAmbiguous and RepeatedAmbiguous. Node is the result of the element
// at this level; Next enumerates the interpretations of the remainder.
// SequenceAmbiguous leaves Next nil when this level is the last element;
// RepeatedAmbiguous always attaches the remainder's stream, which holds no
// value past the last element.
type AmbiguousValue struct {
	Node gll.Result
	Next *results.Stream
}

// SequenceAmbiguous produces every combination of child parse paths. For
// every result of the first child, the remaining sequence is spawned at that
// result's offset and attached as the Next stream of an AmbiguousValue. Use
// Flatten to linearize one interpretation.
//
// An emitted value carries the offset behind the first interpretation of its
// whole chain, so that an ambiguous sequence composes as a plain child of
// other combinators. A first-child result whose remaining sequence admits no
// interpretation is pruned: the remainder's error is forwarded in its place.
type SequenceAmbiguous struct {
	Children []engine.Parser
}

// NewSequenceAmbiguous creates an ambiguous sequence of child parsers.
func NewSequenceAmbiguous(children ...engine.Parser) *SequenceAmbiguous {
	return &SequenceAmbiguous{Children: children}
}

// Parse is part of the Parser contract.
func (p *SequenceAmbiguous) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	if len(p.Children) == 0 {
		return nil
	}
	child, err := runChild(ctx, p.Children[0], ctx.Offset)
	if err != nil {
		return err
	}
	sub := subscribeChild(ctx, child)
	for sub.Next() {
		r := sub.Result()
		if r.IsError() {
			ctx.Results.Add(r)
			continue
		}
		if len(p.Children) == 1 {
			ctx.Results.Add(gll.Value(r.Offset, AmbiguousValue{Node: r}))
			continue
		}
		rest := &SequenceAmbiguous{Children: p.Children[1:]}
		restCtx, err := runChild(ctx, rest, r.Offset)
		if err != nil {
			return err
		}
		restSub := subscribeChild(ctx, restCtx)
		hasValue := false
		var deepest *gll.Result
		for restSub.Next() {
			rr := restSub.Result()
			if !rr.IsError() {
				hasValue = true
				break
			}
			if deepest == nil || rr.Offset > deepest.Offset {
				e := rr
				deepest = &e
			}
		}
		if !hasValue {
			if deepest != nil {
				ctx.Results.Add(*deepest)
			} else {
				ctx.Results.Add(gll.Errorf(r.Offset, "expected more"))
			}
			continue
		}
		end := chainEnd(ctx, r, restCtx.Results)
		ctx.Results.Add(gll.Value(end, AmbiguousValue{Node: r, Next: restCtx.Results}))
	}
	return nil
}

// chainEnd returns the offset behind the first-value interpretation of a
// level chain starting at node.
func chainEnd(ctx *engine.Context, node gll.Result, next *results.Stream) uint64 {
	end := node.Offset
	for next != nil {
		av, ok := FirstChainValue(ctx, next)
		if !ok {
			break
		}
		end = av.Node.Offset
		next = av.Next
	}
	return end
}

// NodeName is part of the Parser contract.
func (p *SequenceAmbiguous) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("sequence-ambiguous", childNames(cache, p.Children), nil, "")
}

var _ engine.Parser = (*SequenceAmbiguous)(nil)

// --- Flattening ------------------------------------------------------------

// Flatten linearizes one path of a {node, next} ambiguity tree into a fresh
// flat stream of the node results, following the first value interpretation
// at every level. The traversal is cycle-safe: a level still being produced
// by an ancestor activation yields the empty-language fallback, which ends
// the path. Error results, the fallback included, are not copied to the flat
// stream.
func Flatten(ctx *engine.Context, root *results.Stream) *results.Stream {
	out := results.New(ctx.Key)
	stream := root
	for stream != nil {
		sub := stream.Subscribe(ctx.Key, ctx.Ancestry(), emptyLanguage(ctx.Offset))
		var next *results.Stream
		advanced := false
		for sub.Next() {
			r := sub.Result()
			if r.IsError() {
				continue
			}
			av, ok := r.Value.(AmbiguousValue)
			if !ok {
				out.Add(r)
				continue
			}
			out.Add(av.Node)
			next = av.Next
			advanced = true
			break
		}
		if !advanced {
			break
		}
		stream = next
	}
	out.Close()
	return out
}

// childNames collects the structural names of a child list.
func childNames(cache *engine.NameCache, children []engine.Parser) []gll.NodeName {
	names := make([]gll.NodeName, len(children))
	for i, c := range children {
		names[i] = cache.NameOf(c)
	}
	return names
}
