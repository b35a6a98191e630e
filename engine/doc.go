/*
Package engine implements the activation machinery of the GLL
combinator engine: the Parser contract, parse contexts, structural
parser-node naming, and the memoizer.

A parse is driven by creating a Context for an input and running a
parser against it:

	ctx := engine.NewContext([]byte("abcabc"), nil)
	defer ctx.Deinit()
	if err := parser.Parse(ctx); err != nil {
	    …
	}
	sub := ctx.Subscribe()
	for sub.Next() {
	    r := sub.Result()
	    …
	}

Execution is single-threaded cooperative: parsers run depth-first on
one logical executor and suspend only at result-stream reads. The
memoizer is shared by every activation of one top-level parse and is
mutated between suspension points without locking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.engine'.
func tracer() tracing.Trace {
	return tracing.Select("gll.engine")
}
