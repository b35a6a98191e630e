package combinator

import (
	"fmt"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// Reentrant drives same-position left recursion for an inner parser that
// may invoke itself at the offset it was invoked at.
//
// The driver retries the inner parser with increasing depth. At depth 0 a
// self-recursive activation short-circuits to the empty-language fallback,
// so the non-recursive alternatives establish the base case. At depth k+1
// the self-recursive activation runs nested at depth k, and its completed
// results feed the outer level, letting the parse grow one recursion level
// per round. A new round supersedes the memo entries of earlier rounds, so
// the lower levels are re-derived inside every round. The retry is local
// to this activation key; unrelated activations keep their memo entries.
//
// Deepening stops at the first round whose results contain no value
// advancing past the previous round's furthest value offset, or which
// contains no value at all; the last advancing round is forwarded. Without
// any advancing round the final error is forwarded instead.
type Reentrant struct {
	Inner engine.Parser
}

// NewReentrant wraps a possibly self-referential parser.
func NewReentrant(inner engine.Parser) *Reentrant {
	return &Reentrant{Inner: inner}
}

// Parse is part of the Parser contract.
func (p *Reentrant) Parse(ctx *engine.Context) error {
	key := gll.PosKey{
		Name:   ctx.Memo.Names().NameOf(p),
		Input:  ctx.Key.Input,
		Offset: ctx.Offset,
	}
	if ctx.Memo.IsRetrying(key) {
		// nested retry: this activation belongs to an outer driver's round
		return p.Inner.Parse(ctx)
	}
	var chosen []gll.Result
	lastErr := emptyLanguage(ctx.Offset)
	best := int64(-1)
	ceiling := uint(len(ctx.Input)) + 2 // a round must advance to be kept
	for depth := uint(0); ; depth++ {
		if depth >= ceiling {
			stuck(fmt.Sprintf("recursion retry for %s exceeds input length", key))
			break
		}
		child := ctx.InitChildRetry(key.Name, ctx.Offset, depth)
		if err := p.Inner.Parse(child); err != nil {
			ctx.Results.Close()
			return err
		}
		round, roundBest := drainRound(ctx, child)
		tracer().Debugf("retry depth %d for %s: %d results, best %d", depth, key, len(round), roundBest)
		if roundBest < 0 {
			if e := deepestError(round); e != nil {
				lastErr = *e
			}
			break
		}
		if roundBest <= best {
			break
		}
		best = roundBest
		chosen = round
	}
	if chosen == nil {
		ctx.Results.Add(lastErr)
	} else {
		for _, r := range chosen {
			ctx.Results.Add(r)
		}
	}
	ctx.Results.Close()
	return nil
}

// NodeName is part of the Parser contract.
func (p *Reentrant) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("reentrant", []gll.NodeName{cache.NameOf(p.Inner)}, nil, "")
}

var _ engine.Parser = (*Reentrant)(nil)

// drainRound collects one retry round's results and the furthest offset any
// value reached, -1 without a value.
func drainRound(ctx *engine.Context, child *engine.Context) ([]gll.Result, int64) {
	var round []gll.Result
	roundBest := int64(-1)
	sub := subscribeChild(ctx, child)
	for sub.Next() {
		r := sub.Result()
		round = append(round, r)
		if !r.IsError() && int64(r.Offset) > roundBest {
			roundBest = int64(r.Offset)
		}
	}
	return round, roundBest
}

// deepestError picks the error with the furthest offset, nil if none.
func deepestError(round []gll.Result) *gll.Result {
	var deepest *gll.Result
	for i := range round {
		r := round[i]
		if r.IsError() && (deepest == nil || r.Offset > deepest.Offset) {
			deepest = &r
		}
	}
	return deepest
}
