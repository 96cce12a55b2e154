package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

func newPatternChecker() (*Checker, *defuse.Table) {
	tbl := defuse.NewTable()
	c := newTestChecker()
	c.resolver = tbl
	c.file = "<test>"
	return c, tbl
}

func TestCheckPatternIdentBindsVariable(t *testing.T) {
	c, tbl := newPatternChecker()
	pat := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "x"}
	tbl.Bind(pat, "x")

	got := c.checkPattern(pat, ty.Content)
	v, ok := got.(ty.Var)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)

	fv, ok := c.varByID(v.DefID)
	require.True(t, ok)
	lbs, _ := fv.Snapshot()
	assert.Equal(t, []ty.Type{ty.Content}, lbs)
}

func TestCheckPatternPlaceholderPassesThroughIncoming(t *testing.T) {
	c, _ := newPatternChecker()
	pat := &syntax.Node{Kind: syntax.KindPatternPlaceholder}
	assert.Equal(t, ty.Content, c.checkPattern(pat, ty.Content))
}

func TestCheckPatternNilReturnsIncoming(t *testing.T) {
	c, _ := newPatternChecker()
	assert.Equal(t, ty.Content, c.checkPattern(nil, ty.Content))
}

func TestCheckPatternParenthesizedRecursesIntoFirstChild(t *testing.T) {
	c, tbl := newPatternChecker()
	inner := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "x"}
	tbl.Bind(inner, "x")
	outer := &syntax.Node{Kind: syntax.KindPatternParenthesized, Children: []*syntax.Node{inner}}

	got := c.checkPattern(outer, ty.Content)
	_, ok := got.(ty.Var)
	assert.True(t, ok)
}

func TestCheckPatternDestructuringBindsEachSubPatternAgainstAny(t *testing.T) {
	c, tbl := newPatternChecker()
	a := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "a"}
	b := &syntax.Node{Kind: syntax.KindPatternIdent, Text: "b"}
	tbl.Bind(a, "a")
	tbl.Bind(b, "b")
	destr := &syntax.Node{Kind: syntax.KindPatternDestructuring, Children: []*syntax.Node{a, b}}

	got := c.checkPattern(destr, ty.Tuple{Elems: []ty.Type{ty.Content, ty.Any}})
	assert.Equal(t, ty.Any, got)

	defA, ok := tbl.GetDef("<test>", a)
	require.True(t, ok)
	fv, ok := c.varByID(defA.ID)
	require.True(t, ok)
	lbs, _ := fv.Snapshot()
	assert.Equal(t, []ty.Type{ty.Any}, lbs)
}
