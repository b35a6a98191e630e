/*
Package combinator implements the parser combinators of the GLL
engine.

Combinators are small composable parsers: Literal and Always are the
leaves, Sequence, OneOf, Repeated, Optional and MapTo compose parsers
into larger ones. Sequence and Repeated come in a non-ambiguous
flavor, which treats every child as yielding a single canonical
result, and an ambiguous flavor, which enumerates every combination
of child parse paths as a lazily produced {node, next} tree.

Left recursion is handled by Reentrant, an iteratively deepening
retry driver for parsers that invoke themselves at the same input
position, and by Slot, an indirection cell which lets a parser graph
name itself before it is fully constructed:

	expr := &combinator.Slot{}
	body := combinator.NewSequenceAmbiguous(
	    combinator.NewOptional(expr),
	    combinator.NewLiteral("abc"),
	)
	expr.Resolve(combinator.NewReentrant(body))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package combinator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.combinator'.
func tracer() tracing.Trace {
	return tracing.Select("gll.combinator")
}
