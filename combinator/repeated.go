package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// Unbounded denotes a repetition without an upper bound.
const Unbounded = -1

// --- Non-ambiguous repetition ----------------------------------------------

// Repeated matches its child parser between Min and Max times, greedily
// taking the first result of each round. Max set to Unbounded allows any
// number of matches. On success it emits one value holding the collected
// child values as a []interface{}; with fewer than Min matches it emits a
// single error at the furthest offset reached.
//
// A child match that does not advance the offset ends the repetition: a
// non-consuming parser would otherwise loop forever.
type Repeated struct {
	P   engine.Parser
	Min int
	Max int
}

// NewRepeated creates a non-ambiguous repetition.
func NewRepeated(p engine.Parser, min, max int) *Repeated {
	return &Repeated{P: p, Min: min, Max: max}
}

// Parse is part of the Parser contract.
func (p *Repeated) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	if p.Max == 0 {
		return nil
	}
	offset := ctx.Offset
	furthest := ctx.Offset
	values := make([]interface{}, 0)
	for p.Max == Unbounded || len(values) < p.Max {
		child, err := runChild(ctx, p.P, offset)
		if err != nil {
			return err
		}
		sub := subscribeChild(ctx, child)
		if !sub.Next() {
			break
		}
		r := sub.Result()
		if r.IsError() {
			if r.Offset > furthest {
				furthest = r.Offset
			}
			break
		}
		if r.Offset == offset {
			stuck("repetition of a non-consuming parser")
			break
		}
		values = append(values, r.Value)
		offset = r.Offset
		furthest = offset
	}
	if len(values) < p.Min {
		ctx.Results.Add(gll.Errorf(furthest, "expected more"))
		return nil
	}
	ctx.Results.Add(gll.Value(offset, values))
	return nil
}

// NodeName is part of the Parser contract.
func (p *Repeated) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("repeated", []gll.NodeName{cache.NameOf(p.P)},
		[]int64{int64(p.Min), int64(p.Max)}, "")
}

var _ engine.Parser = (*Repeated)(nil)

// --- Ambiguous repetition --------------------------------------------------

// RepeatedAmbiguous enumerates every repetition path of its child parser as
// a {node, next} ambiguity tree, the same shape SequenceAmbiguous produces.
// Every top-level child result spawns the remaining repetition at the
// result's offset, with bounds reduced by one.
//
// A child match whose remainder still owes matches (Min not yet satisfied)
// but admits no interpretation is pruned. When no path survives and Min is
// unmet, a single error at the furthest reached offset is emitted.
type RepeatedAmbiguous struct {
	P   engine.Parser
	Min int
	Max int
}

// NewRepeatedAmbiguous creates an ambiguous repetition.
func NewRepeatedAmbiguous(p engine.Parser, min, max int) *RepeatedAmbiguous {
	return &RepeatedAmbiguous{P: p, Min: min, Max: max}
}

// Parse is part of the Parser contract.
func (p *RepeatedAmbiguous) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	if p.Max == 0 {
		return nil
	}
	child, err := runChild(ctx, p.P, ctx.Offset)
	if err != nil {
		return err
	}
	sub := subscribeChild(ctx, child)
	count := 0
	furthest := ctx.Offset
	for sub.Next() {
		r := sub.Result()
		if r.IsError() {
			if r.Offset > furthest {
				furthest = r.Offset
			}
			continue
		}
		if r.Offset == ctx.Offset {
			stuck("repetition of a non-consuming parser")
			continue
		}
		rest := &RepeatedAmbiguous{P: p.P, Min: decMin(p.Min), Max: decMax(p.Max)}
		restCtx, err := runChild(ctx, rest, r.Offset)
		if err != nil {
			return err
		}
		if rest.Min > 0 && !restHasValue(ctx, restCtx, &furthest) {
			continue
		}
		ctx.Results.Add(gll.Value(r.Offset, AmbiguousValue{Node: r, Next: restCtx.Results}))
		count++
		if r.Offset > furthest {
			furthest = r.Offset
		}
	}
	if count == 0 && p.Min > 0 {
		ctx.Results.Add(gll.Errorf(furthest, "expected more"))
	}
	return nil
}

// restHasValue drains a remainder's results for at least one value, folding
// the deepest error offset into furthest. A remainder that still owes
// matches but has no value means its path can never satisfy Min.
func restHasValue(ctx *engine.Context, restCtx *engine.Context, furthest *uint64) bool {
	sub := subscribeChild(ctx, restCtx)
	for sub.Next() {
		r := sub.Result()
		if !r.IsError() {
			return true
		}
		if r.Offset > *furthest {
			*furthest = r.Offset
		}
	}
	return false
}

// NodeName is part of the Parser contract.
func (p *RepeatedAmbiguous) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("repeated-ambiguous", []gll.NodeName{cache.NameOf(p.P)},
		[]int64{int64(p.Min), int64(p.Max)}, "")
}

var _ engine.Parser = (*RepeatedAmbiguous)(nil)

func decMin(min int) int {
	if min > 0 {
		return min - 1
	}
	return 0
}

func decMax(max int) int {
	if max == Unbounded {
		return Unbounded
	}
	return max - 1
}
