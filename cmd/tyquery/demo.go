package main

import (
	"fmt"

	"github.com/uros-5/tinymist/internal/check"
	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/runtimesig"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

// demoEval is a tiny Evaluator good enough to drive the scenarios this
// CLI ships with: it mini-evaluates literals and `+`/`-` over ints. A
// real host runtime is out of scope for this module (spec §1); this
// stands in for one.
type demoEval struct{}

func (demoEval) MiniEval(n *syntax.Node) (hostval.Value, bool) {
	switch n.Kind {
	case syntax.KindInt:
		return hostval.Value{Kind: "int", Raw: n.Literal}, true
	case syntax.KindFloat:
		return hostval.Value{Kind: "float", Raw: n.Literal}, true
	case syntax.KindBool:
		return hostval.Value{Kind: "bool", Raw: n.Literal}, true
	case syntax.KindString:
		return hostval.Value{Kind: "string", Raw: n.Literal}, true
	default:
		return hostval.Value{}, false
	}
}

func (e demoEval) ConstEval(n *syntax.Node) (hostval.Value, bool) { return e.MiniEval(n) }

type demoGlobals struct {
	values map[string]hostval.Value
}

func (g demoGlobals) ResolveGlobal(n *syntax.Node, _ bool) (hostval.Value, bool) {
	v, ok := g.values[n.Text]
	return v, ok
}

// demoCallable models a library function identified only by name, for
// the runtime-signature analyzer's StaticTable.
type demoCallable struct{ name string }

func (d demoCallable) Name() string { return d.name }

func newDemoSignatures() *runtimesig.StaticTable {
	return runtimesig.NewStaticTable(map[string]runtimesig.Signature{
		"rect": {
			Pos: nil,
			Named: []runtimesig.Param{
				{Name: "stroke", Cast: runtimesig.CastInfo{}},
				{Name: "width", Cast: runtimesig.CastInfo{}},
			},
			Ret: runtimesig.CastInfo{Element: "rect"},
		},
	})
}

func newDemoGlobals() demoGlobals {
	return demoGlobals{values: map[string]hostval.Value{
		"red":  {Kind: "color", Raw: "red"},
		"rect": {Kind: "function", Raw: "rect", Func: demoCallable{"rect"}},
	}}
}

// spanCol gives a demo node a single-line span at the given column, so
// the CLI's `hover` subcommand has something to query by: these trees
// are hand-authored stand-ins for a real parser's output (spec §1), but
// a parser would still attach a span to every node, so the demo columns
// approximate where each token sits in the scenario's doc comment.
func spanCol(col int) syntax.Span {
	return spanRange(col, col+1)
}

func spanRange(startCol, endCol int) syntax.Span {
	return syntax.Span{
		Start: syntax.Pos{Line: 1, Column: startCol},
		End:   syntax.Pos{Line: 1, Column: endCol},
	}
}

// buildScenario constructs one named hand-authored syntax tree and its
// def/use table, mirroring spec §8's testable scenarios. Parsing is out
// of scope for this module, so the CLI's demo trees stand in for a real
// parser's output.
func buildScenario(name string) (*syntax.Node, *defuse.Table, error) {
	switch name {
	case "literal":
		return scenarioLiteral()
	case "closure":
		return scenarioClosure()
	case "recursive":
		return scenarioRecursive()
	case "conditional":
		return scenarioConditional()
	default:
		return nil, nil, fmt.Errorf("unknown scenario %q (try: literal, closure, recursive, conditional)", name)
	}
}

// scenarioLiteral: let x = 1
func scenarioLiteral() (*syntax.Node, *defuse.Table, error) {
	tbl := defuse.NewTable()
	pat := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "x"}
	tbl.Bind(pat, "x")
	lit := &syntax.Node{Kind: syntax.KindInt, Literal: int64(1)}
	let := &syntax.Node{Kind: syntax.KindLetBinding, Pattern: pat, Init: lit}
	root := &syntax.Node{Kind: syntax.KindCode, Children: []*syntax.Node{let}}
	return root, tbl, nil
}

// scenarioClosure: let f(a, b: 2) = a + b
func scenarioClosure() (*syntax.Node, *defuse.Table, error) {
	tbl := defuse.NewTable()

	aNode := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "a"}
	tbl.Bind(aNode, "a")
	bNode := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "b"}
	tbl.Bind(bNode, "b")

	aRef := &syntax.Node{Kind: syntax.KindIdent, Text: "a", Span: spanCol(18)}
	tbl.Use(aRef, aNode)
	bRef := &syntax.Node{Kind: syntax.KindIdent, Text: "b", Span: spanCol(22)}
	tbl.Use(bRef, bNode)

	body := &syntax.Node{Kind: syntax.KindBinary, BinOp: "+", Left: aRef, Right: bRef}

	closure := &syntax.Node{
		Kind: syntax.KindClosure,
		Params: []*syntax.Param{
			{Name: "a", Node: aNode},
			{Name: "b", Named: true, Node: bNode, Default: &syntax.Node{Kind: syntax.KindInt, Literal: int64(2)}},
		},
		Body: body,
	}

	fNode := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "f"}
	tbl.Bind(fNode, "f")
	let := &syntax.Node{Kind: syntax.KindLetBinding, Pattern: fNode, Init: closure}
	root := &syntax.Node{Kind: syntax.KindCode, Children: []*syntax.Node{let}}
	return root, tbl, nil
}

// scenarioRecursive: let rec = (x) => rec(x)
func scenarioRecursive() (*syntax.Node, *defuse.Table, error) {
	tbl := defuse.NewTable()

	recNode := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "rec"}
	tbl.Bind(recNode, "rec")
	xNode := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "x"}
	tbl.Bind(xNode, "x")

	recRef := &syntax.Node{Kind: syntax.KindIdent, Text: "rec", Span: spanCol(18)}
	tbl.Use(recRef, recNode)
	xRef := &syntax.Node{Kind: syntax.KindIdent, Text: "x", Span: spanCol(22)}
	tbl.Use(xRef, xNode)

	argsNode := &syntax.Node{Kind: syntax.KindArgs, Children: []*syntax.Node{xRef}}
	call := &syntax.Node{Kind: syntax.KindFuncCall, Callee: recRef, Args: argsNode, Span: spanRange(18, 24)}

	closure := &syntax.Node{
		Kind:   syntax.KindClosure,
		Params: []*syntax.Param{{Name: "x", Node: xNode}},
		Body:   call,
	}

	let := &syntax.Node{Kind: syntax.KindLetBinding, Pattern: recNode, Init: closure}
	root := &syntax.Node{Kind: syntax.KindCode, Children: []*syntax.Node{let}}
	return root, tbl, nil
}

// scenarioConditional: if cond { "a" } else { 1 }, joined in a block with
// a sibling literal 2, so the block's joined type collapses to Undef.
func scenarioConditional() (*syntax.Node, *defuse.Table, error) {
	tbl := defuse.NewTable()
	cond := &syntax.Node{Kind: syntax.KindBool, Literal: true}
	then := &syntax.Node{Kind: syntax.KindString, Literal: "a"}
	els := &syntax.Node{Kind: syntax.KindInt, Literal: int64(1)}
	ifNode := &syntax.Node{Kind: syntax.KindConditional, Cond: cond, Then: then, Else: els}
	other := &syntax.Node{Kind: syntax.KindInt, Literal: int64(2)}
	root := &syntax.Node{Kind: syntax.KindCode, Children: []*syntax.Node{ifNode, other}}
	return root, tbl, nil
}

func printType(label string, t ty.Type) {
	fmt.Printf("%s %s\n", cyan(label+":"), t.String())
}
