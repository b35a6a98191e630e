package combinator

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/engine"
)

// --- Literal ---------------------------------------------------------------

// Literal matches a fixed run of input bytes. On a match it emits the
// matched lexeme as a value, positioned just behind the match; on a mismatch
// it emits a single error result at the activation offset.
//
// An empty literal matches at every offset with zero consumption. Repeated
// guards against looping on such parsers, see Repeated.
type Literal struct {
	Lexeme []byte
}

// NewLiteral creates a literal parser for a string.
func NewLiteral(s string) *Literal {
	return &Literal{Lexeme: []byte(s)}
}

// Parse is part of the Parser contract.
func (p *Literal) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	if bytes.HasPrefix(ctx.Input[ctx.Offset:], p.Lexeme) {
		ctx.Results.Add(gll.Value(ctx.Offset+uint64(len(p.Lexeme)), string(p.Lexeme)))
	} else {
		ctx.Results.Add(gll.Errorf(ctx.Offset, "expected '%s'", p.Lexeme))
	}
	return nil
}

// NodeName is part of the Parser contract.
func (p *Literal) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("literal", nil, nil, string(p.Lexeme))
}

var _ engine.Parser = (*Literal)(nil)

// --- Always ----------------------------------------------------------------

// Always ignores the input and emits a fixed result once, positioned at the
// activation offset. It lifts constants into the combinator graph.
type Always struct {
	R gll.Result
}

// NewAlways creates a parser that always yields r.
func NewAlways(r gll.Result) *Always {
	return &Always{R: r}
}

// Parse is part of the Parser contract.
func (p *Always) Parse(ctx *engine.Context) error {
	defer ctx.Results.Close()
	r := p.R
	r.Offset = ctx.Offset
	ctx.Results.Add(r)
	return nil
}

// NodeName is part of the Parser contract.
func (p *Always) NodeName(cache *engine.NameCache) gll.NodeName {
	return engine.HashShape("always", nil, nil, fmt.Sprintf("%v/%v", p.R.Value, p.R.Err))
}

var _ engine.Parser = (*Always)(nil)
