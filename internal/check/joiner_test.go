package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uros-5/tinymist/internal/ty"
)

func TestJoinerEmptyIsNone(t *testing.T) {
	j := NewJoiner()
	assert.Equal(t, ty.None, j.Finalize())
}

func TestJoinerIgnoresTrivialNoOps(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.ClauseT)
	j.Incorporate(ty.Undef)
	j.Incorporate(ty.Infer)
	j.Incorporate(ty.FlowNone)
	assert.Equal(t, ty.None, j.Finalize())
}

func TestJoinerSingleConcreteChild(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.Content)
	assert.Equal(t, ty.Content, j.Finalize())
}

func TestJoinerMismatchedConcreteCollapsesToUndef(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.Dict{Fields: []ty.DictField{{Name: "x", Type: ty.Any}}})
	j.Incorporate(ty.Array{Elem: ty.Any})
	assert.Equal(t, ty.Undef, j.Finalize())
}

func TestJoinerRepeatedContentStaysContent(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.Content)
	j.Incorporate(ty.Content)
	assert.Equal(t, ty.Content, j.Finalize())
}

func TestJoinerContentThenOtherBecomesUndef(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.Content)
	j.Incorporate(ty.Array{Elem: ty.Any})
	assert.Equal(t, ty.Undef, j.Finalize())
}

func TestJoinerVariableChildWidensToAny(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.Content)
	j.Incorporate(ty.Var{DefID: 1, Name: "x"})
	assert.Equal(t, ty.Any, j.Finalize())
}

func TestJoinerPoisonedWithoutDefiniteIsNone(t *testing.T) {
	j := NewJoiner()
	j.Poison()
	assert.Equal(t, ty.None, j.Finalize())
	assert.True(t, j.Poisoned())
}

// A control-exit child never overrides an otherwise-definite join: e.g.
// `{ "a"; break }` still finalizes to Content, matching the original's
// FlowNone => {} no-op arm.
func TestJoinerPoisonedWithDefiniteKeepsDefinite(t *testing.T) {
	j := NewJoiner()
	j.Incorporate(ty.Content)
	j.Poison()
	assert.Equal(t, ty.Content, j.Finalize())
	assert.True(t, j.Poisoned())
}
