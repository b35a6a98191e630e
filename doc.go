/*
Package gll is a generalized-LL (GLL) parser combinator engine.

GLL parsing explores all left-derivations of a context-free grammar
concurrently. This makes it possible to handle ambiguous grammars,
where the engine enumerates every valid interpretation of the input,
and left-recursive grammars, including left recursion at the same
input position. Package structure is as follows:

■ results: Package results implements lazy multi-subscriber result
streams, the transport for in-flight and completed parse outcomes.
Streams detect cyclic self-subscription, which is the mechanism that
keeps left-recursive grammars from recursing unboundedly.

■ engine: Package engine implements the Parser contract, parse
contexts and the memoizer which caches result streams per parser
activation.

■ combinator: Package combinator implements the combinators proper:
literals, sequences, alternation, repetition, optionals, mapping, and
the reentrant driver for same-position left recursion.

The base package contains data types which are used throughout all
the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gll
