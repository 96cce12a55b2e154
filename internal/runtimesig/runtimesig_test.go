package runtimesig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCallable struct{ name string }

func (s stubCallable) Name() string { return s.name }

func TestStaticTableAnalyzeKnownCallable(t *testing.T) {
	tbl := NewStaticTable(map[string]Signature{
		"rect": {
			Pos: []Param{{Name: "w"}},
			Ret: CastInfo{Element: "rect"},
		},
	})
	analysis, ok := tbl.Analyze(stubCallable{"rect"})
	require.True(t, ok)
	sig := analysis.Primary()
	require.Len(t, sig.Pos, 1)
	assert.Equal(t, "w", sig.Pos[0].Name)
	assert.Equal(t, "rect", sig.Ret.Element)
}

func TestStaticTableAnalyzeUnknownCallable(t *testing.T) {
	tbl := NewStaticTable(nil)
	_, ok := tbl.Analyze(stubCallable{"missing"})
	assert.False(t, ok)
}
