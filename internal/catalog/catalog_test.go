package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uros-5/tinymist/internal/ty"
)

func TestDefaultCatalogCanonicalDicts(t *testing.T) {
	c := Default()
	for _, kind := range []ty.BuiltinKind{ty.Stroke, ty.Margin, ty.Inset, ty.Outset, ty.Radius} {
		d, ok := c.CanonicalDict(kind)
		require.Truef(t, ok, "expected canonical dict for %s", kind)
		assert.NotEmpty(t, d.Fields)
	}
}

func TestDefaultCatalogHasNoDictForScalarDomains(t *testing.T) {
	c := Default()
	_, ok := c.CanonicalDict(ty.Length)
	assert.False(t, ok)
}

func TestStrokeFieldTypes(t *testing.T) {
	c := Default()
	d, ok := c.CanonicalDict(ty.Stroke)
	require.True(t, ok)
	idx := d.FieldIndex("paint")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, ty.Builtin{Kind: ty.Color}, d.Fields[idx].Type)
}

func TestLookupElementParam(t *testing.T) {
	c := Default()
	got, ok := c.Lookup("rect", "width")
	require.True(t, ok)
	assert.Equal(t, ty.Builtin{Kind: ty.Length}, got)
}

func TestLookupMissingElementOrParam(t *testing.T) {
	c := Default()
	_, ok := c.Lookup("nonexistent", "width")
	assert.False(t, ok)
	_, ok = c.Lookup("rect", "nonexistent")
	assert.False(t, ok)
}

func TestLoadRejectsUnknownDict(t *testing.T) {
	_, err := Load([]byte("dicts:\n  bogus:\n    fields: []\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFieldType(t *testing.T) {
	_, err := Load([]byte("dicts:\n  stroke:\n    fields:\n      - {name: x, type: bogus}\n"))
	assert.Error(t, err)
}

func TestLoadParsesMinimalDoc(t *testing.T) {
	raw := []byte(`
dicts:
  margin:
    fields:
      - {name: top, type: length}
elements:
  box:
    fill: color
`)
	c, err := Load(raw)
	require.NoError(t, err)
	d, ok := c.CanonicalDict(ty.Margin)
	require.True(t, ok)
	require.Len(t, d.Fields, 1)
	assert.Equal(t, "top", d.Fields[0].Name)
	fill, ok := c.Lookup("box", "fill")
	require.True(t, ok)
	assert.Equal(t, ty.Builtin{Kind: ty.Color}, fill)
}

func TestMustLoadPanicsOnInvalidYAML(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad([]byte("dicts: [this is not a map"))
	})
}

func TestValidateLangTag(t *testing.T) {
	assert.True(t, ValidateLangTag("en"))
	assert.True(t, ValidateLangTag("fr"))
	assert.False(t, ValidateLangTag("not-a-lang-tag-at-all-123"))
}

func TestValidateRegionTag(t *testing.T) {
	assert.True(t, ValidateRegionTag("US"))
	assert.False(t, ValidateRegionTag("not-a-region-123"))
}
