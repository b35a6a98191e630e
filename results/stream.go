package results

import (
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/gll"
)

// Stream is a lazy append-only sequence of parse results with multiple
// independent subscribers. The producing parser appends results with Add and
// signals completion with Close; once closed, a stream never gains items.
// Re-subscription after close is allowed and replays the items.
type Stream struct {
	mu     sync.Mutex
	change *sync.Cond      // signalled on Add and Close
	owner  gll.PosKey      // activation which produces this stream
	items  *arraylist.List // of gll.Result
	closed bool
}

// New creates an empty open stream, owned by the activation identified by
// owner.
func New(owner gll.PosKey) *Stream {
	s := &Stream{
		owner: owner,
		items: arraylist.New(),
	}
	s.change = sync.NewCond(&s.mu)
	return s
}

// Owner returns the key of the activation producing this stream.
func (s *Stream) Owner() gll.PosKey {
	return s.owner
}

// Add appends a result. Calling Add on a closed stream is a programming
// error and panics.
func (s *Stream) Add(r gll.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("results: add to closed stream")
	}
	tracer().Debugf("stream %s <- %s", s.owner, r)
	s.items.Add(r)
	s.change.Broadcast()
}

// Close marks the end of the stream. Subscribers which have drained the
// items receive end-of-stream. Closing twice is a programming error and
// panics.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("results: stream closed twice")
	}
	s.closed = true
	s.change.Broadcast()
}

// IsClosed tells if the stream has been closed.
func (s *Stream) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Size returns the number of results appended so far.
func (s *Stream) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Size()
}

// Subscribe starts a traversal of the stream. The subscriber identifies
// itself with its activation key and the path of ancestor activations which
// led to it. If the stream is still open and its owner appears in that
// ancestry, the subscription is cyclic: the subscriber would wait on a
// stream an ancestor of its own is still producing. The traversal then
// yields fallback once, then end-of-stream, regardless of the stream's
// contents. A closed stream replays safely for any subscriber; the
// reentrant retry driver relies on this to let the outer level of a retry
// round consume the completed results of its nested, one-level-shallower
// activation.
func (s *Stream) Subscribe(subscriber gll.PosKey, ancestry gll.ParserPath, fallback gll.Result) *Subscription {
	sub := &Subscription{stream: s}
	s.mu.Lock()
	open := !s.closed
	s.mu.Unlock()
	if open && ancestry.Contains(s.owner) {
		tracer().Debugf("cyclic subscription of %s to stream %s", subscriber, s.owner)
		sub.cyclic = true
		sub.fallback = fallback
	}
	return sub
}

// Subscription is one subscriber's cursor into a stream. Iterate in the
// usual manner:
//
//    sub := stream.Subscribe(key, path, fallback)
//    for sub.Next() {
//        r := sub.Result()
//        …
//    }
//
// Next suspends when the cursor reaches the tail of an unclosed stream and
// resumes as soon as the producer appends or closes.
type Subscription struct {
	stream    *Stream
	cursor    int
	cyclic    bool
	delivered bool // cyclic fallback handed out?
	fallback  gll.Result
	current   gll.Result
}

// Next advances to the next result. It returns false at end-of-stream.
func (sub *Subscription) Next() bool {
	if sub.cyclic {
		if sub.delivered {
			return false
		}
		sub.delivered = true
		sub.current = sub.fallback
		return true
	}
	s := sub.stream
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub.cursor >= s.items.Size() {
		if s.closed {
			return false
		}
		s.change.Wait()
	}
	item, _ := s.items.Get(sub.cursor)
	sub.cursor++
	sub.current = item.(gll.Result)
	return true
}

// Result returns the result Next advanced to.
func (sub *Subscription) Result() gll.Result {
	return sub.current
}
