package hostval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCallable struct{}

func (stubCallable) Name() string { return "stub" }

func TestValueStringDefaultsWhenKindEmpty(t *testing.T) {
	v := Value{}
	assert.Equal(t, "<value>", v.String())
}

func TestValueStringReportsKind(t *testing.T) {
	v := Value{Kind: "color"}
	assert.Equal(t, "color", v.String())
}

func TestValueIsCallable(t *testing.T) {
	assert.False(t, Value{}.IsCallable())
	assert.True(t, Value{Func: stubCallable{}}.IsCallable())
}
