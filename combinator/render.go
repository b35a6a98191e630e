package combinator

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/results"
)

// ChainString renders a parse value as a compact string, following the
// first-value interpretation of ambiguity trees. Sequence chains render as
// parenthesized tuples, absent optionals as "null". Intended for display
// and for checking parses structurally.
func ChainString(ctx *engine.Context, v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = ChainString(ctx, e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case AmbiguousValue:
		parts := []string{ChainString(ctx, t.Node.Value)}
		next := t.Next
		for next != nil {
			av, ok := FirstChainValue(ctx, next)
			if !ok {
				break
			}
			parts = append(parts, ChainString(ctx, av.Node.Value))
			next = av.Next
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return fmt.Sprint(v)
}

// FirstChainValue reads the first ambiguity-tree value of a stream,
// following the same interpretation Flatten follows.
func FirstChainValue(ctx *engine.Context, stream *results.Stream) (AmbiguousValue, bool) {
	sub := stream.Subscribe(ctx.Key, ctx.Ancestry(), emptyLanguage(ctx.Offset))
	for sub.Next() {
		r := sub.Result()
		if r.IsError() {
			continue
		}
		if av, ok := r.Value.(AmbiguousValue); ok {
			return av, true
		}
	}
	return AmbiguousValue{}, false
}
