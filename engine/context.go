package engine

import (
	"sync/atomic"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/results"
)

// inputSerial hands out identities for input slices. Activation keys carry
// the input identity so that memo entries of unrelated parses never collide.
var inputSerial uint64

// Context is the per-activation state of a running parser: the input, the
// position to parse at, the stream to produce results into, and handles to
// the shared memoizer and the chain of ancestor activations.
//
// Contexts form a tree: every child parser invocation derives a child
// context with InitChild. A context exclusively owns its Path copy; the
// memoizer owns the result streams.
type Context struct {
	Input   []byte          // read-only input
	Offset  uint64          // position this activation parses at
	Results *results.Stream // stream this activation produces into
	// ExistingResults tells that the memoizer already held the stream for
	// this activation. The caller must not re-invoke the child parser then;
	// it subscribes directly instead.
	ExistingResults bool
	Memo            *Memoizer
	Key             gll.PosKey
	Path            gll.ParserPath
	Payload         interface{} // user payload, handed through unchanged
}

// NewContext creates a top-level context for parsing input. It owns a fresh
// memoizer and the root result stream. Release with Deinit.
func NewContext(input []byte, payload interface{}) *Context {
	id := atomic.AddUint64(&inputSerial, 1)
	key := gll.PosKey{Name: gll.SelfRef, Input: id, Offset: 0}
	ctx := &Context{
		Input:   input,
		Memo:    NewMemoizer(),
		Key:     key,
		Path:    gll.ParserPath{key},
		Results: results.New(key),
		Payload: payload,
	}
	tracer().Debugf("new context for input #%d (%d bytes)", id, len(input))
	return ctx
}

// InitChild derives the context for invoking a child parser with structural
// name at input position offset. The child's result stream comes from the
// memoizer; when the stream was already present, ExistingResults is set on
// the child and the caller subscribes instead of re-running the parser.
func (ctx *Context) InitChild(name gll.NodeName, offset uint64) *Context {
	return ctx.initChild(name, offset, nil)
}

// InitChildRetry derives a child context for one round of a same-position
// recursion retry. It installs maxDepth as the new retry depth for the
// child's activation key and supersedes the memo entries of earlier rounds.
func (ctx *Context) InitChildRetry(name gll.NodeName, offset uint64, maxDepth uint) *Context {
	return ctx.initChild(name, offset, &maxDepth)
}

func (ctx *Context) initChild(name gll.NodeName, offset uint64, newMax *uint) *Context {
	key := gll.PosKey{Name: name, Input: ctx.Key.Input, Offset: offset}
	path := ctx.Path.Clone().Push(key)
	stream, cached := ctx.Memo.Get(path, key, newMax)
	return &Context{
		Input:           ctx.Input,
		Offset:          offset,
		Results:         stream,
		ExistingResults: cached,
		Memo:            ctx.Memo,
		Key:             key,
		Path:            path,
		Payload:         ctx.Payload,
	}
}

// Ancestry returns the chain of strict ancestor activations, i.e. the
// context's path without the activation itself. Subscriptions pass it to
// result streams for cycle detection.
func (ctx *Context) Ancestry() gll.ParserPath {
	if n := len(ctx.Path); n > 0 && ctx.Path[n-1] == ctx.Key {
		return ctx.Path[:n-1]
	}
	return ctx.Path
}

// Subscribe starts a traversal of the top-level results. The topmost caller
// usually inspects the first result it yields.
func (ctx *Context) Subscribe() *results.Subscription {
	return ctx.Results.Subscribe(ctx.Key, nil, gll.Errorf(ctx.Offset, "matches only the empty language"))
}

// Deinit releases everything owned by this parse: the memoizer with all its
// result streams, including entries superseded during recursion retries.
// The context must not be used afterwards.
func (ctx *Context) Deinit() {
	if ctx.Memo != nil {
		ctx.Memo.Deinit()
		ctx.Memo = nil
	}
	ctx.Path = nil
}
