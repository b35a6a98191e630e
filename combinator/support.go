package combinator

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/results"
	"github.com/npillmayer/schuko/gconf"
)

// emptyLanguage is the fallback result injected into cyclic subscriptions.
// It doubles as the signal the reentrant retry driver inspects to decide
// whether deepening is worthwhile.
func emptyLanguage(offset uint64) gll.Result {
	return gll.Errorf(offset, "matches only the empty language")
}

// runChild derives the activation for child parser p at offset and runs it,
// unless the memoizer already holds its results — then the caller subscribes
// to the existing stream instead of re-invoking p.
func runChild(ctx *engine.Context, p engine.Parser, offset uint64) (*engine.Context, error) {
	name := ctx.Memo.Names().NameOf(p)
	child := ctx.InitChild(name, offset)
	if !child.ExistingResults {
		if err := p.Parse(child); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// subscribeChild subscribes the parent activation to a child's results. The
// ancestry handed to the stream is the chain above the child, so that a
// child whose stream is still being produced by one of those ancestors
// short-circuits to the empty-language fallback instead of deadlocking.
func subscribeChild(ctx *engine.Context, child *engine.Context) *results.Subscription {
	return child.Results.Subscribe(ctx.Key, child.Ancestry(), emptyLanguage(child.Offset))
}

// stuck reports a parser that makes no progress. With configuration flag
// panic-on-parser-stuck set, it panics for post-mortem debugging; otherwise
// the caller abandons the non-advancing path.
func stuck(msg string) bool {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`GLL parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}
