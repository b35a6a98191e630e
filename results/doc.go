/*
Package results implements lazy multi-subscriber result streams.

A Stream is an append-only sequence of parse results, produced by one
parser activation and consumed by any number of subscribers. Each
subscriber traverses the stream independently with its own cursor. A
subscriber reaching the current tail of an unclosed stream suspends
until the producer appends another item or closes the stream.

Streams are created with an owning activation key. A subscription to
a still open stream whose ancestry contains that key is cyclic: the
producer of the stream is an ancestor of the subscriber, which on
left-recursive grammars would otherwise deadlock. Cyclic
subscriptions yield a caller-supplied fallback result instead,
followed by end-of-stream. A closed stream replays its items for any
subscriber.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package results

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.results'.
func tracer() tracing.Trace {
	return tracing.Select("gll.results")
}
