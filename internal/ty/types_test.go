package ty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrivialString(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"Any", Any, "Any"},
		{"None", None, "None"},
		{"Content", Content, "Content"},
		{"Undef", Undef, "Undef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTrivialHashesAreDistinct(t *testing.T) {
	assert.NotEqual(t, Any.Hash(), None.Hash())
	assert.Equal(t, Any.Hash(), Any.Hash())
}

func TestBooleanStringAndHash(t *testing.T) {
	unknown := Boolean{}
	lit := Boolean{Lit: true, HasLit: true}
	assert.Equal(t, "bool", unknown.String())
	assert.Equal(t, "true", lit.String())
	assert.NotEqual(t, unknown.Hash(), lit.Hash())
}

func TestBuiltinKindString(t *testing.T) {
	assert.Equal(t, "length", Length.String())
	assert.Equal(t, "arguments", ArgsKind.String())
	assert.Equal(t, "builtin?", BuiltinKind(999).String())
}

func TestBuiltinPathPreference(t *testing.T) {
	p := Builtin{Kind: PathKind, Preference: "smooth"}
	assert.Equal(t, "path(smooth)", p.String())
	bare := Builtin{Kind: PathKind}
	assert.Equal(t, "path", bare.String())
}

func TestDictStringAndFieldIndex(t *testing.T) {
	d := Dict{Fields: []DictField{
		{Name: "x", Type: Any},
		{Name: "y", Type: Content},
	}}
	assert.Equal(t, "{x: Any, y: Content}", d.String())
	assert.Equal(t, 1, d.FieldIndex("y"))
	assert.Equal(t, -1, d.FieldIndex("z"))
}

func TestDictHashOrderSensitive(t *testing.T) {
	a := Dict{Fields: []DictField{{Name: "x", Type: Any}, {Name: "y", Type: Content}}}
	b := Dict{Fields: []DictField{{Name: "y", Type: Content}, {Name: "x", Type: Any}}}
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestArrayAndTupleString(t *testing.T) {
	arr := Array{Elem: Content}
	require.Equal(t, "array<Content>", arr.String())
	tup := Tuple{Elems: []Type{Any, Content}}
	assert.Equal(t, "(Any, Content)", tup.String())
}

func TestFuncString(t *testing.T) {
	rest := Type(Any)
	f := Func{
		Pos:   []Type{Content},
		Named: []NamedParam{{Name: "stroke", Type: Any}},
		Rest:  &rest,
		Ret:   Content,
	}
	assert.Equal(t, "(Content, stroke: Any, ...Any) -> Content", f.String())
	assert.Equal(t, 1, f.Arity())
}

func TestWithAppliedArgCount(t *testing.T) {
	w := With{
		Callee: Any,
		Applied: []Args{
			{Positional: []Type{Any, Any}, Named: []NamedParam{{Name: "a", Type: Any}}},
			{Positional: []Type{Any}},
		},
	}
	assert.Equal(t, 4, w.AppliedArgCount())
}

func TestUnaryAndBinaryString(t *testing.T) {
	u := Unary{Op: UnaryNeg, Operand: Content}
	assert.Equal(t, "-(Content)", u.String())
	b := Binary{Op: "+", Operands: [2]Type{Content, Any}}
	assert.Equal(t, "(Content + Any)", b.String())
}

func TestIfString(t *testing.T) {
	i := If{Cond: Any, Then: Content, Else: None}
	assert.Equal(t, "if Any { Content } else { None }", i.String())
}

func TestVarString(t *testing.T) {
	v := Var{DefID: 7, Name: "x"}
	assert.Equal(t, "@x", v.String())
}

func TestLetString(t *testing.T) {
	onlyLbs := Let{Lbs: []Type{Content}}
	assert.Equal(t, " ⪰ Content", onlyLbs.String())
	both := Let{Lbs: []Type{Content}, Ubs: []Type{Any}}
	assert.Equal(t, " ⪰ Content ⪯ Any", both.String())
}

func TestUnionStringIsNotDeduplicated(t *testing.T) {
	u := Union{Arms: []Type{Content, Content}}
	assert.Equal(t, "Content | Content", u.String())
	assert.Len(t, u.Arms, 2)
}
