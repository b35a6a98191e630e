package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/combinator"
	"github.com/npillmayer/gll/engine"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// grammar is one of the built-in demo grammars. Grammars are constructed
// programmatically from combinators; G.REPL has no grammar source language.
type grammar struct {
	parser engine.Parser
	about  string
}

// We provide a small set of demo grammars for experiments with ambiguity
// and left recursion:
//
//  abc      ➞ Expr? "abc"            (left-recursive, same position)
//  greeting ➞ "ello" | "elloworld"   (ambiguous alternation)
//  list     ➞ ("ab")*                (unbounded repetition)
//
func makeGrammars() map[string]grammar {
	expr := &combinator.Slot{}
	expr.Resolve(combinator.NewReentrant(
		combinator.NewSequenceAmbiguous(
			combinator.NewOptional(expr),
			combinator.NewLiteral("abc"),
		),
	))
	return map[string]grammar{
		"abc": {
			parser: expr,
			about:  "Expr = Expr? 'abc'  — left recursion at the same position",
		},
		"greeting": {
			parser: combinator.NewOneOf(
				combinator.NewLiteral("ello"),
				combinator.NewLiteral("elloworld"),
			),
			about: "Greeting = 'ello' | 'elloworld'  — ambiguous alternation",
		},
		"list": {
			parser: combinator.NewRepeatedAmbiguous(
				combinator.NewLiteral("ab"), 0, combinator.Unbounded,
			),
			about: "List = ('ab')*  — unbounded repetition",
		},
	}
}

// main() starts an interactive CLI ("G.REPL"), where users may enter input
// strings to parse against one of the built-in demo grammars. G.REPL prints
// out every interpretation the engine enumerates. It is intended as a
// sandbox for experiments with ambiguous and left-recursive grammars during
// parser development.
//
// Please refer to packages "engine" and "combinator".
//
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gname := flag.String("grammar", "abc", "Demo grammar to start with")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to G.REPL")
	grammars := makeGrammars()
	current, ok := grammars[*gname]
	name := *gname
	if !ok {
		pterm.Error.Println(fmt.Sprintf("no demo grammar '%s'", *gname))
		os.Exit(3)
	}
	pterm.Info.Println(fmt.Sprintf("grammar %s: %s", name, current.about))
	//
	repl, err := readline.New("grepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			name, current = command(line, grammars, name, current)
			continue
		}
		parse(current.parser, line)
	}
	println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// command handles ':'-prefixed REPL commands: ':grammars' lists the demo
// grammars, ':grammar <name>' switches.
func command(line string, grammars map[string]grammar, name string, current grammar) (string, grammar) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":grammars":
		names := make([]string, 0, len(grammars))
		for n := range grammars {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			pterm.Info.Println(fmt.Sprintf("%-10s %s", n, grammars[n].about))
		}
	case ":grammar":
		if len(fields) < 2 {
			pterm.Error.Println("usage: :grammar <name>")
			break
		}
		g, ok := grammars[fields[1]]
		if !ok {
			pterm.Error.Println(fmt.Sprintf("no demo grammar '%s'", fields[1]))
			break
		}
		name, current = fields[1], g
		pterm.Info.Println(fmt.Sprintf("grammar %s: %s", name, current.about))
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %s", fields[0]))
	}
	return name, current
}

// parse runs one top-level parse and prints every enumerated result.
func parse(p engine.Parser, input string) {
	ctx := engine.NewContext([]byte(input), nil)
	defer ctx.Deinit()
	if err := p.Parse(ctx); err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	sub := ctx.Subscribe()
	n := 0
	for sub.Next() {
		r := sub.Result()
		n++
		if r.IsError() {
			pterm.Error.Println(fmt.Sprintf("[%d] at %d: %s", n, r.Offset, r.Err.Error()))
			continue
		}
		pterm.Info.Println(fmt.Sprintf("[%d] %s, spans %s of %d bytes",
			n, combinator.ChainString(ctx, r.Value), gll.Span{0, r.Offset}, len(input)))
		renderTree(ctx, r.Value)
	}
	if n == 0 {
		pterm.Info.Println("no results")
	}
}

// renderTree displays an ambiguity chain as a tree on the terminal.
func renderTree(ctx *engine.Context, v interface{}) {
	ll := leveledValue(ctx, v, pterm.LeveledList{}, 0)
	if len(ll) < 2 {
		return
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledValue(ctx *engine.Context, v interface{}, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch t := v.(type) {
	case combinator.AmbiguousValue:
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  fmt.Sprintf("…%d", t.Node.Offset),
		})
		ll = leveledValue(ctx, t.Node.Value, ll, level+1)
		if t.Next != nil {
			if av, ok := combinator.FirstChainValue(ctx, t.Next); ok {
				ll = leveledValue(ctx, av, ll, level)
			}
		}
	case []interface{}:
		for _, e := range t {
			ll = leveledValue(ctx, e, ll, level)
		}
	default:
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  combinator.ChainString(ctx, v),
		})
	}
	return ll
}

// tracer traces with key 'gll.combinator'.
func tracer() tracing.Trace {
	return tracing.Select("gll.combinator")
}
