package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/runtimesig"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

func TestApplyFuncConstrainsPositionalsAndCollectsReturn(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "a")
	f := ty.Func{Pos: []ty.Type{v.Ref()}, Ret: ty.Content}
	ae := argEval{bundle: ty.Args{Positional: []ty.Type{ty.Boolean{Lit: true, HasLit: true}}}}

	var candidates []ty.Type
	c.Apply(f, ae, &candidates)

	require.Equal(t, []ty.Type{ty.Content}, candidates)
	lbs, _ := v.Snapshot()
	assert.Equal(t, []ty.Type{ty.Boolean{Lit: true, HasLit: true}}, lbs)
}

func TestApplyFuncExtraPositionalsConstrainedAgainstAny(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "extra")
	f := ty.Func{Pos: []ty.Type{}, Ret: ty.Any}
	ae := argEval{bundle: ty.Args{Positional: []ty.Type{v.Ref()}}}

	var candidates []ty.Type
	c.Apply(f, ae, &candidates)

	lbs, _ := v.Snapshot()
	assert.Empty(t, lbs, "extras are constrained to Any as an upper bound, so no lower bound is recorded on the actual")
}

func TestApplyFuncIgnoresRestDeclaredTypeForExtras(t *testing.T) {
	c := newTestChecker()
	restType := ty.Type(ty.Builtin{Kind: ty.Length})
	f := ty.Func{Pos: []ty.Type{}, Rest: &restType, Ret: ty.Any}
	v := c.info.VarFor(1, "extra")
	ae := argEval{bundle: ty.Args{Positional: []ty.Type{v.Ref()}}}

	var candidates []ty.Type
	c.Apply(f, ae, &candidates)

	_, ubs := v.Snapshot()
	assert.Equal(t, []ty.Type{ty.Any}, ubs, "extras are constrained against Any, never the declared rest type")
}

func TestApplyFuncNamedParam(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "stroke")
	f := ty.Func{Named: []ty.NamedParam{{Name: "stroke", Type: v.Ref()}}, Ret: ty.Any}
	ae := argEval{bundle: ty.Args{Named: []ty.NamedParam{{Name: "stroke", Type: ty.Content}}}}

	var candidates []ty.Type
	c.Apply(f, ae, &candidates)

	lbs, _ := v.Snapshot()
	assert.Equal(t, []ty.Type{ty.Content}, lbs)
}

func TestApplyFuncUnknownNamedParamIsNoOp(t *testing.T) {
	c := newTestChecker()
	f := ty.Func{Ret: ty.Any}
	ae := argEval{bundle: ty.Args{Named: []ty.NamedParam{{Name: "bogus", Type: ty.Content}}}}
	var candidates []ty.Type
	assert.NotPanics(t, func() { c.Apply(f, ae, &candidates) })
}

func TestApplyVarAppliesEachBound(t *testing.T) {
	c := newTestChecker()
	f1 := ty.Func{Ret: ty.Content}
	f2 := ty.Func{Ret: ty.Any}
	v := c.info.VarFor(1, "f")
	v.EverBe(f1)
	v.ConstrainUpper(f2)

	var candidates []ty.Type
	c.Apply(v.Ref(), argEval{}, &candidates)

	assert.ElementsMatch(t, []ty.Type{ty.Content, ty.Any}, candidates)
}

func TestApplyNonCallableProducesNoCandidates(t *testing.T) {
	c := newTestChecker()
	var candidates []ty.Type
	c.Apply(ty.Dict{}, argEval{}, &candidates)
	assert.Empty(t, candidates)
}

type rectCallable struct{}

func (rectCallable) Name() string      { return "rect" }
func (rectCallable) ElementID() string { return "rect" }

func TestApplyCallableConstrainsAndUsesCatalogLookup(t *testing.T) {
	c := newTestChecker()
	c.sigs = runtimesig.NewStaticTable(map[string]runtimesig.Signature{
		"rect": {
			Named: []runtimesig.Param{{Name: "width"}},
			Ret:   runtimesig.CastInfo{Element: "rect"},
		},
	})
	v := hostval.Value{Kind: "function", Func: rectCallable{}}
	item := &syntax.Node{Kind: syntax.KindArgNamed, Text: "width", Span: spanAt(5)}
	ae := argEval{
		bundle:    ty.Args{Named: []ty.NamedParam{{Name: "width", Type: ty.Content}}},
		namedItem: map[string]*syntax.Node{"width": item},
	}

	var candidates []ty.Type
	c.Apply(ty.Value{V: v}, ae, &candidates)

	require.Equal(t, []ty.Type{ty.Element{ID: "rect"}}, candidates)
	// The declared type backfilled at the named argument comes from the
	// catalog's rect parameter map, not from the (empty) CastInfo.
	got, ok := c.info.At(item.Span)
	require.True(t, ok)
	assert.Equal(t, ty.Builtin{Kind: ty.Length}, got)
}

func TestApplyCallableMissingAnalysisIsNoOp(t *testing.T) {
	c := newTestChecker()
	c.sigs = runtimesig.NewStaticTable(nil)
	v := hostval.Value{Kind: "function", Func: rectCallable{}}
	var candidates []ty.Type
	c.Apply(ty.Value{V: v}, argEval{}, &candidates)
	assert.Empty(t, candidates)
}

func TestApplyCallableMissingAnalysisEmitsSIG001(t *testing.T) {
	c := newTestChecker()
	c.sigs = runtimesig.NewStaticTable(nil)
	collector := &collectingSink{}
	c.sink = collector
	v := hostval.Value{Kind: "function", Func: rectCallable{}}
	var candidates []ty.Type
	c.Apply(ty.Value{V: v}, argEval{}, &candidates)
	require.Len(t, collector.messages, 1)
}

type textCallable struct{}

func (textCallable) Name() string      { return "text" }
func (textCallable) ElementID() string { return "text" }

func TestApplyCallableRejectsInvalidLangTagWithSIG002(t *testing.T) {
	c := newTestChecker()
	c.sigs = runtimesig.NewStaticTable(map[string]runtimesig.Signature{
		"text": {Pos: []runtimesig.Param{{Name: "lang"}}},
	})
	collector := &collectingSink{}
	c.sink = collector
	v := hostval.Value{Kind: "function", Func: textCallable{}}
	node := &syntax.Node{Kind: syntax.KindString, Literal: "not-a-lang"}
	actual := ty.Value{V: hostval.Value{Kind: "string", Raw: "not-a-lang"}}
	ae := argEval{bundle: ty.Args{Positional: []ty.Type{actual}}, posNodes: []*syntax.Node{node}}

	var candidates []ty.Type
	c.Apply(ty.Value{V: v}, ae, &candidates)

	require.Len(t, collector.messages, 1)
}

func TestApplyCallableAcceptsValidLangTag(t *testing.T) {
	c := newTestChecker()
	c.sigs = runtimesig.NewStaticTable(map[string]runtimesig.Signature{
		"text": {Pos: []runtimesig.Param{{Name: "lang"}}},
	})
	collector := &collectingSink{}
	c.sink = collector
	v := hostval.Value{Kind: "function", Func: textCallable{}}
	node := &syntax.Node{Kind: syntax.KindString, Literal: "en"}
	actual := ty.Value{V: hostval.Value{Kind: "string", Raw: "en"}}
	ae := argEval{bundle: ty.Args{Positional: []ty.Type{actual}}, posNodes: []*syntax.Node{node}}

	var candidates []ty.Type
	c.Apply(ty.Value{V: v}, ae, &candidates)

	assert.Empty(t, collector.messages)
}

func TestApplyAtWithAppliesUnderlyingFunc(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "stroke")
	f := ty.Func{Named: []ty.NamedParam{{Name: "stroke", Type: v.Ref()}}, Ret: ty.Any}
	at := ty.At{Target: f, Field: "with"}
	ae := argEval{bundle: ty.Args{Named: []ty.NamedParam{{Name: "stroke", Type: ty.Content}}}}

	var candidates []ty.Type
	c.Apply(at, ae, &candidates)

	lbs, _ := v.Snapshot()
	assert.Equal(t, []ty.Type{ty.Content}, lbs)
	require.Len(t, candidates, 1)
	w, ok := candidates[0].(ty.With)
	require.True(t, ok)
	assert.Equal(t, f, w.Callee)
}

func TestApplyAtNonWithFieldProducesNoCandidates(t *testing.T) {
	c := newTestChecker()
	at := ty.At{Target: ty.Any, Field: "fields"}
	var candidates []ty.Type
	c.Apply(at, argEval{}, &candidates)
	assert.Empty(t, candidates)
}

func TestPrimaryTypePrefersUpperBound(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "x")
	v.ConstrainUpper(ty.Content)
	v.EverBe(ty.Any)
	assert.Equal(t, ty.Content, c.primaryType(v.Ref()))
}

func TestPrimaryTypeFallsBackToLowerBound(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "x")
	v.EverBe(ty.Content)
	assert.Equal(t, ty.Content, c.primaryType(v.Ref()))
}

func TestPrimaryTypeNoBoundsIsAny(t *testing.T) {
	c := newTestChecker()
	v := c.info.VarFor(1, "x")
	assert.Equal(t, ty.Any, c.primaryType(v.Ref()))
}
