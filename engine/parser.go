package engine

import (
	"hash/fnv"

	"github.com/cnf/structhash"
	"github.com/npillmayer/gll"
)

// Parser is the contract every combinator fulfills.
//
// Parse runs the parser with the given activation context. It produces zero
// or more results into ctx.Results and closes that stream before returning,
// on every exit path. The returned error is reserved for resource failures
// and programmer errors; parse mismatches travel as data-plane results.
//
// NodeName returns the parser's structural hash, using the cache to tolerate
// self-referential parser graphs. Combinators compute their name by hashing
// their kind together with the names of their children, obtained through
// NameCache.NameOf — never by calling a child's NodeName directly, which
// would recurse unboundedly on a cyclic graph.
type Parser interface {
	Parse(ctx *Context) error
	NodeName(cache *NameCache) gll.NodeName
}

// --- Node-name cache -------------------------------------------------------

// NameCache computes and caches structural node names. It is keyed by parser
// instance, so that two requests for the same instance hash its shape only
// once, and so that a recursive request from within an ongoing computation
// can be answered with the gll.SelfRef sentinel.
type NameCache struct {
	names     map[Parser]gll.NodeName
	computing map[Parser]bool
	sentinels int // SelfRef answers handed out during the current computation
}

// NewNameCache creates an empty name cache.
func NewNameCache() *NameCache {
	return &NameCache{
		names:     make(map[Parser]gll.NodeName),
		computing: make(map[Parser]bool),
	}
}

// NameOf returns the structural name of p. While p's name is being computed,
// a nested request for it returns gll.SelfRef.
//
// Only names of fully resolved shapes enter the cache. A shape whose hash
// was computed with a SelfRef placeholder inside depends on where the
// computation entered the cycle; caching it would let two unrelated
// self-referential shapes collide on the placeholder. Such names are
// recomputed per request, which is deterministic for a given parser.
func (c *NameCache) NameOf(p Parser) gll.NodeName {
	if n, ok := c.names[p]; ok {
		return n
	}
	if c.computing[p] {
		c.sentinels++
		return gll.SelfRef
	}
	c.computing[p] = true
	before := c.sentinels
	n := p.NodeName(c)
	delete(c.computing, p)
	if c.sentinels == before {
		c.names[p] = n
	}
	tracer().Debugf("node name %s", n)
	return n
}

// --- Structural hashing ----------------------------------------------------

// nodeShape is the canonical description of a parser node's shape. It is
// dumped by structhash and folded to 64 bits; equal shapes yield equal
// names.
type nodeShape struct {
	Kind     string
	Children []uint64
	Bounds   []int64
	Text     string
}

// HashShape computes a structural node name from a combinator kind, the
// names of its children, numeric bounds and literal text. The result is
// never gll.SelfRef.
func HashShape(kind string, children []gll.NodeName, bounds []int64, text string) gll.NodeName {
	shape := nodeShape{Kind: kind, Bounds: bounds, Text: text}
	for _, c := range children {
		shape.Children = append(shape.Children, uint64(c))
	}
	h := fnv.New64a()
	h.Write(structhash.Dump(shape, 1))
	name := gll.NodeName(h.Sum64())
	if name == gll.SelfRef {
		name = 1
	}
	return name
}
