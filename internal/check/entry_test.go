package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/ty"
)

func TestCheckerSimplifyDelegatesToInfo(t *testing.T) {
	c := New("<test>", defuse.NewTable(), nil, nil, nil)
	v := c.varFor(1, "x")
	v.EverBe(ty.Content)
	assert.Equal(t, ty.Content, c.Simplify(v.Ref(), true))
}

func TestCheckerSignaturesExtractsFuncFromVar(t *testing.T) {
	c := New("<test>", defuse.NewTable(), nil, nil, nil)
	v := c.varFor(1, "f")
	v.ConstrainUpper(ty.Func{Ret: ty.Content})

	sigs := c.Signatures(v.Ref(), true)
	require.Len(t, sigs, 1)
	assert.Equal(t, ty.Content, sigs[0].Ret)
}
