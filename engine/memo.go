package engine

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/results"
)

// RecursionRetry is the retry bookkeeping for one same-position recursion.
// Max is the depth the current retry round was started with; Current counts
// down as nested activations of the same key descend into the rounds below.
type RecursionRetry struct {
	Current uint
	Max     uint
}

// Memoizer caches one result stream per (activation key, retry depth) for
// the lifetime of a top-level parse. Looking up the same PosDepthKey twice
// returns the same stream, up to supersession by a recursion retry.
//
// Superseded entries are not destroyed immediately: an in-flight ancestor
// may still read them. They move to a deferred-cleanup queue which Deinit
// drains.
type Memoizer struct {
	memoized  map[gll.PosDepthKey]*results.Stream
	names     *NameCache
	recursion map[gll.PosKey]*RecursionRetry
	deferred  *arraylist.List // of *results.Stream
}

// NewMemoizer creates an empty memoizer.
func NewMemoizer() *Memoizer {
	return &Memoizer{
		memoized:  make(map[gll.PosDepthKey]*results.Stream),
		names:     NewNameCache(),
		recursion: make(map[gll.PosKey]*RecursionRetry),
		deferred:  arraylist.New(),
	}
}

// Names returns the node-name cache shared by this parse.
func (m *Memoizer) Names() *NameCache {
	return m.names
}

// Get returns the result stream for an activation, creating it if
// necessary. The boolean reports whether the stream was already present.
//
// The retry depth of the returned entry is determined as follows:
//
//   - key is already retrying and newMax is set: a new retry round starts;
//     the bookkeeping is reset to (newMax, newMax) and entries of depth
//     0…newMax are superseded.
//   - key is already retrying: a nested activation of the same key
//     descends one round; Current counts down, saturating at 0.
//   - newMax is set: a retry starts for a key not seen retrying before.
//   - otherwise the nearest retrying ancestor on path donates its Current
//     depth; entries up to that ancestor's Max are superseded. Without a
//     retrying ancestor the depth is 0.
func (m *Memoizer) Get(path gll.ParserPath, key gll.PosKey, newMax *uint) (*results.Stream, bool) {
	var depth uint
	if rr, ok := m.recursion[key]; ok {
		if newMax != nil {
			rr.Current, rr.Max = *newMax, *newMax
			m.clearPast(key, *newMax)
			depth = *newMax
		} else {
			if rr.Current > 0 {
				rr.Current--
			}
			depth = rr.Current
		}
	} else if newMax != nil {
		m.recursion[key] = &RecursionRetry{Current: *newMax, Max: *newMax}
		m.clearPast(key, *newMax)
		depth = *newMax
	} else {
		for i := len(path) - 1; i >= 0; i-- {
			if rr, ok := m.recursion[path[i]]; ok {
				depth = rr.Current
				m.clearPast(key, rr.Max)
				break
			}
		}
	}
	dkey := gll.PosDepthKey{Pos: key, Depth: depth}
	if stream, ok := m.memoized[dkey]; ok {
		tracer().Debugf("memo hit for %s", dkey)
		return stream, true
	}
	stream := results.New(key)
	m.memoized[dkey] = stream
	return stream, false
}

// IsRetrying reports whether key currently has retry bookkeeping installed.
// The reentrant driver uses it to recognize nested retries and delegate
// instead of starting a second retry loop.
func (m *Memoizer) IsRetrying(key gll.PosKey) bool {
	_, ok := m.recursion[key]
	return ok
}

// clearPast supersedes the memo entries for (key, 0…depth). The streams move
// to the deferred-cleanup queue, since an ancestor activation may still hold
// a subscription into them.
func (m *Memoizer) clearPast(key gll.PosKey, depth uint) {
	for d := uint(0); d <= depth; d++ {
		dkey := gll.PosDepthKey{Pos: key, Depth: d}
		if stream, ok := m.memoized[dkey]; ok {
			tracer().Debugf("superseding memo entry %s", dkey)
			delete(m.memoized, dkey)
			m.deferred.Add(stream)
		}
	}
}

// Deinit drops every live memo entry and the deferred-cleanup queue. The
// memoizer must not be used afterwards.
func (m *Memoizer) Deinit() {
	m.memoized = nil
	m.recursion = nil
	m.deferred.Clear()
}
