package gll

import "fmt"

// --- Parse results ---------------------------------------------------------

// Result is the outcome of running a parser at some input position. It is a
// tagged value: either a successfully parsed Value, or an Err describing a
// parse mismatch. Errors are ordinary data-plane values, not exceptional
// control flow; containing combinators inspect and possibly recover from them.
//
// Offset is the input position just behind a successful match, or the
// position at which a mismatch was observed.
type Result struct {
	Offset uint64
	Value  interface{}
	Err    error
}

// Value creates a successful result at a given offset.
func Value(offset uint64, v interface{}) Result {
	return Result{Offset: offset, Value: v}
}

// Failure creates an error result at a given offset.
func Failure(offset uint64, err error) Result {
	return Result{Offset: offset, Err: err}
}

// Errorf creates an error result at a given offset, with a formatted message.
func Errorf(offset uint64, format string, args ...interface{}) Result {
	return Result{Offset: offset, Err: fmt.Errorf(format, args...)}
}

// IsError tells if a result represents a parse mismatch.
func (r Result) IsError() bool {
	return r.Err != nil
}

func (r Result) String() string {
	if r.IsError() {
		return fmt.Sprintf("⟨error @%d: %s⟩", r.Offset, r.Err.Error())
	}
	return fmt.Sprintf("⟨%v @%d⟩", r.Value, r.Offset)
}

// --- Parser node names -----------------------------------------------------

// NodeName identifies a parser node by shape: a 64-bit content hash over the
// combinator kind and the names of its structural inputs. Two parser
// instances with identical shape share a name, which deduplicates memoizer
// entries across instances.
type NodeName uint64

// SelfRef is the sentinel name produced for a self-referential shape while
// its hash is being computed. A parser whose shape hash is requested
// recursively from within its own computation receives SelfRef instead of
// descending further.
const SelfRef NodeName = 0

func (n NodeName) String() string {
	if n == SelfRef {
		return "#self"
	}
	return fmt.Sprintf("#%016x", uint64(n))
}

// --- Activation keys -------------------------------------------------------

// PosKey identifies the activation of a parser node at a specific position of
// a specific input. Input identity is a serial ID handed out per parse
// context.
type PosKey struct {
	Name   NodeName
	Input  uint64
	Offset uint64
}

func (k PosKey) String() string {
	return fmt.Sprintf("%s@%d.%d", k.Name, k.Input, k.Offset)
}

// PosDepthKey extends a PosKey with the current reentrant retry depth.
// Memoizer entries are keyed by PosDepthKey, so that every retry round of a
// same-position recursion owns a separate result stream.
type PosDepthKey struct {
	Pos   PosKey
	Depth uint
}

func (k PosDepthKey) String() string {
	return fmt.Sprintf("%s/%d", k.Pos, k.Depth)
}

// --- Parser paths ----------------------------------------------------------

// ParserPath is the ordered chain of ancestor activations leading to the
// current one, root first. Result streams consult it to detect cyclic
// subscription.
type ParserPath []PosKey

// Clone copies a path. Child contexts receive a cloned, extended path and own
// their copy exclusively.
func (p ParserPath) Clone() ParserPath {
	c := make(ParserPath, len(p), len(p)+1)
	copy(c, p)
	return c
}

// Push appends an activation key and returns the extended path.
func (p ParserPath) Push(key PosKey) ParserPath {
	return append(p, key)
}

// Contains tells if key appears anywhere on the path.
func (p ParserPath) Contains(key PosKey) bool {
	for _, k := range p {
		if k == key {
			return true
		}
	}
	return false
}

// --- Spans -----------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
