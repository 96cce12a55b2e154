// Package ty implements the Type Lattice: the closed set of type terms
// the inference engine manipulates (spec §3.1, §4.1). Types are
// hashable and structurally compared; hashing feeds the Simplifier's
// memo tables (spec §3.3).
package ty

import (
	"fmt"
	"strings"

	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/syntax"
)

// Type is the interface every term in the lattice implements. It is a
// closed set: every switch over Type in this module, in internal/check,
// and in internal/catalog must be exhaustive (spec §9, "Polymorphic
// iteration over type variants").
type Type interface {
	String() string
	Hash() Hash
	isType()
}

// ---- Trivial ----

type trivial struct{ name string }

func (t trivial) String() string { return t.name }
func (t trivial) Hash() Hash     { return hashString("trivial:" + t.name) }
func (trivial) isType()          {}

var (
	Any      Type = trivial{"Any"}
	None     Type = trivial{"None"}
	FlowNone Type = trivial{"FlowNone"}
	Undef    Type = trivial{"Undef"}
	AutoT    Type = trivial{"Auto"}
	Content  Type = trivial{"Content"}
	Infer    Type = trivial{"Infer"}
	ClauseT  Type = trivial{"Clause"}
)

// ---- Scalars ----

// Boolean optionally carries the literal value when known.
type Boolean struct {
	Lit    bool
	HasLit bool
}

func (b Boolean) String() string {
	if b.HasLit {
		return fmt.Sprintf("%v", b.Lit)
	}
	return "bool"
}
func (b Boolean) Hash() Hash {
	if b.HasLit {
		return hashString(fmt.Sprintf("bool:%v", b.Lit))
	}
	return hashString("bool:?")
}
func (Boolean) isType() {}

// ---- Built-in aliases ----

// BuiltinKind enumerates the structural aliases the Built-in Catalog
// maintains (spec §3.1, §4.5).
type BuiltinKind int

const (
	Length BuiltinKind = iota
	Color
	Dir
	TextSize
	TextLang
	TextRegion
	TextFont
	Stroke
	Margin
	Inset
	Outset
	Radius
	PathKind
	FloatKind
	ArgsKind
)

func (k BuiltinKind) String() string {
	switch k {
	case Length:
		return "length"
	case Color:
		return "color"
	case Dir:
		return "direction"
	case TextSize:
		return "text-size"
	case TextLang:
		return "text-lang"
	case TextRegion:
		return "text-region"
	case TextFont:
		return "text-font"
	case Stroke:
		return "stroke"
	case Margin:
		return "margin"
	case Inset:
		return "inset"
	case Outset:
		return "outset"
	case Radius:
		return "radius"
	case PathKind:
		return "path"
	case FloatKind:
		return "float"
	case ArgsKind:
		return "arguments"
	default:
		return "builtin?"
	}
}

// Builtin is a named structural shape or scalar domain. Path carries a
// preference string (spec §3.1: "Path(preference)").
type Builtin struct {
	Kind       BuiltinKind
	Preference string // only meaningful when Kind == PathKind
}

func (b Builtin) String() string {
	if b.Kind == PathKind && b.Preference != "" {
		return fmt.Sprintf("path(%s)", b.Preference)
	}
	return b.Kind.String()
}
func (b Builtin) Hash() Hash {
	return hashString(fmt.Sprintf("builtin:%d:%s", b.Kind, b.Preference))
}
func (Builtin) isType() {}

// ---- Literal ----

// Value is a concrete library value captured at a span.
type Value struct {
	V    hostval.Value
	Span syntax.Span
}

func (v Value) String() string { return v.V.String() }
func (v Value) Hash() Hash     { return hashString("value:" + v.V.String() + ":" + v.Span.String()) }
func (Value) isType()          {}

// ValueDoc is a Value accompanied by documentation (e.g. from a
// value-cast parameter), spec §4.1.
type ValueDoc struct {
	V   hostval.Value
	Doc string
}

func (v ValueDoc) String() string { return v.V.String() }
func (v ValueDoc) Hash() Hash     { return hashString("valuedoc:" + v.V.String() + ":" + v.Doc) }
func (ValueDoc) isType()          {}

// ---- Element ----

// Element is a constructor identity from the host library.
type Element struct{ ID string }

func (e Element) String() string { return e.ID }
func (e Element) Hash() Hash     { return hashString("element:" + e.ID) }
func (Element) isType()          {}

// ---- Structural ----

// DictField is one entry of a Dict, in declaration order.
type DictField struct {
	Name string
	Type Type
	Span syntax.Span // defining span; zero value is Detached
}

// Dict is a structural dictionary. Field names are unique per dict;
// order is preserved (spec §3.1).
type Dict struct {
	Fields []DictField
}

func (d Dict) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range d.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Type.String())
	}
	sb.WriteString("}")
	return sb.String()
}
func (d Dict) Hash() Hash {
	parts := []string{"dict"}
	for _, f := range d.Fields {
		parts = append(parts, f.Name, hashHex(f.Type.Hash()))
	}
	return hashString(strings.Join(parts, "|"))
}
func (Dict) isType() {}

// FieldIndex returns the index of name in d.Fields, or -1.
func (d Dict) FieldIndex(name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Array is a homogeneous sequence type.
type Array struct{ Elem Type }

func (a Array) String() string { return "array<" + a.Elem.String() + ">" }
func (a Array) Hash() Hash     { return hashString("array:" + hashHex(a.Elem.Hash())) }
func (Array) isType()          {}

// Tuple is a fixed-arity, heterogeneous sequence.
type Tuple struct{ Elems []Type }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t Tuple) Hash() Hash {
	parts := []string{"tuple"}
	for _, e := range t.Elems {
		parts = append(parts, hashHex(e.Hash()))
	}
	return hashString(strings.Join(parts, "|"))
}
func (Tuple) isType() {}

// ---- Functional ----

// NamedParam is one named formal (for Func) or actual (for Args).
type NamedParam struct {
	Name string
	Type Type
}

// Func is a callable signature.
type Func struct {
	Pos   []Type
	Named []NamedParam
	Rest  *Type
	Ret   Type
}

func (f Func) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	parts := make([]string, 0, len(f.Pos)+len(f.Named)+1)
	for _, p := range f.Pos {
		parts = append(parts, p.String())
	}
	for _, n := range f.Named {
		parts = append(parts, n.Name+": "+n.Type.String())
	}
	if f.Rest != nil {
		parts = append(parts, "..."+(*f.Rest).String())
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(") -> ")
	sb.WriteString(f.Ret.String())
	return sb.String()
}
func (f Func) Hash() Hash {
	parts := []string{"func"}
	for _, p := range f.Pos {
		parts = append(parts, hashHex(p.Hash()))
	}
	for _, n := range f.Named {
		parts = append(parts, n.Name, hashHex(n.Type.Hash()))
	}
	if f.Rest != nil {
		parts = append(parts, "rest", hashHex((*f.Rest).Hash()))
	}
	parts = append(parts, "ret", hashHex(f.Ret.Hash()))
	return hashString(strings.Join(parts, "|"))
}
func (Func) isType() {}

// Arity returns the number of positional formals.
func (f Func) Arity() int { return len(f.Pos) }

// With is a partial-application record: callee.with(args...).
type With struct {
	Callee  Type
	Applied []Args
}

func (w With) String() string {
	var sb strings.Builder
	sb.WriteString(w.Callee.String())
	for _, a := range w.Applied {
		sb.WriteString(".with(")
		sb.WriteString(a.String())
		sb.WriteString(")")
	}
	return sb.String()
}
func (w With) Hash() Hash {
	parts := []string{"with", hashHex(w.Callee.Hash())}
	for _, a := range w.Applied {
		parts = append(parts, hashHex(a.Hash()))
	}
	return hashString(strings.Join(parts, "|"))
}
func (With) isType() {}

// AppliedArgCount returns the total number of actual arguments across
// every applied bundle (used to clamp signature arity, spec §4.3.4).
func (w With) AppliedArgCount() int {
	n := 0
	for _, a := range w.Applied {
		n += len(a.Positional) + len(a.Named)
	}
	return n
}

// Args is an actual-argument bundle; it is not itself a type that flows
// through constraining, only a carrier passed to Apply (spec §3.1).
type Args struct {
	Positional []Type
	Named      []NamedParam
}

func (a Args) String() string {
	parts := make([]string, 0, len(a.Positional)+len(a.Named))
	for _, p := range a.Positional {
		parts = append(parts, p.String())
	}
	for _, n := range a.Named {
		parts = append(parts, n.Name+": "+n.Type.String())
	}
	return strings.Join(parts, ", ")
}
func (a Args) Hash() Hash {
	parts := []string{"args"}
	for _, p := range a.Positional {
		parts = append(parts, hashHex(p.Hash()))
	}
	for _, n := range a.Named {
		parts = append(parts, n.Name, hashHex(n.Type.Hash()))
	}
	return hashString(strings.Join(parts, "|"))
}
func (Args) isType() {}

// ---- Projection ----

// At is a deferred field access; resolution is postponed until apply or
// simplification sees enough of target's shape (spec §3.1, §4.2.1).
type At struct {
	Target Type
	Field  string
}

func (a At) String() string { return a.Target.String() + "." + a.Field }
func (a At) Hash() Hash     { return hashString("at:" + hashHex(a.Target.Hash()) + ":" + a.Field) }
func (At) isType()          {}

// ---- Compound ----

// Union is an unordered (not deduplicated, per spec §4.1) list of arms.
type Union struct{ Arms []Type }

func (u Union) String() string {
	parts := make([]string, len(u.Arms))
	for i, a := range u.Arms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}
func (u Union) Hash() Hash {
	parts := []string{"union"}
	for _, a := range u.Arms {
		parts = append(parts, hashHex(a.Hash()))
	}
	return hashString(strings.Join(parts, "|"))
}
func (Union) isType() {}

// Unary wraps an operand with a syntactic unary operator.
type Unary struct {
	Op      UnaryOp
	Operand Type
}

// UnaryOp mirrors syntax.UnaryOp as the lattice's own operator tag; the
// walker converts between the two (check.toTyUnaryOp).
type UnaryOp int

const (
	UnaryPos UnaryOp = iota
	UnaryNeg
	UnaryNot
	UnaryContext
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPos:
		return "+"
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "not"
	case UnaryContext:
		return "context"
	default:
		return "?"
	}
}

func (u Unary) String() string { return u.Op.String() + "(" + u.Operand.String() + ")" }
func (u Unary) Hash() Hash {
	return hashString(fmt.Sprintf("unary:%d:%s", u.Op, hashHex(u.Operand.Hash())))
}
func (Unary) isType() {}

// Binary wraps two operands with a syntactic binary operator tag.
type Binary struct {
	Op       string
	Operands [2]Type
}

func (b Binary) String() string {
	return "(" + b.Operands[0].String() + " " + b.Op + " " + b.Operands[1].String() + ")"
}
func (b Binary) Hash() Hash {
	return hashString("binary:" + b.Op + ":" + hashHex(b.Operands[0].Hash()) + ":" + hashHex(b.Operands[1].Hash()))
}
func (Binary) isType() {}

// If is a conditional type; Else defaults to None when absent (spec §4.2.1).
type If struct {
	Cond Type
	Then Type
	Else Type
}

func (i If) String() string { return "if " + i.Cond.String() + " { " + i.Then.String() + " } else { " + i.Else.String() + " }" }
func (i If) Hash() Hash {
	return hashString("if:" + hashHex(i.Cond.Hash()) + ":" + hashHex(i.Then.Hash()) + ":" + hashHex(i.Else.Hash()))
}
func (If) isType() {}

// ---- Variable ----

// Var is an inference variable reference; its identity is DefID, Name
// is only for debugging/hover display (spec §3.1, §3.2).
type Var struct {
	DefID debugID
	Name  string
}

// debugID aliases defuse.DefID so this file doesn't need to import
// defuse directly in every signature; kept distinct for readability.
type debugID = defuse.DefID

func (v Var) String() string { return "@" + v.Name }
func (v Var) Hash() Hash     { return hashString(fmt.Sprintf("var:%d", v.DefID)) }
func (Var) isType()          {}

// ---- Bound (Simplifier output only) ----

// Let is produced only by the Simplifier: a variable collapsed to its
// remaining, still-informative bounds (spec §3.1, §4.4).
type Let struct {
	Lbs []Type
	Ubs []Type
}

func (l Let) String() string {
	var sb strings.Builder
	if len(l.Lbs) > 0 {
		parts := make([]string, len(l.Lbs))
		for i, t := range l.Lbs {
			parts[i] = t.String()
		}
		sb.WriteString(" ⪰ " + strings.Join(parts, " | "))
	}
	if len(l.Ubs) > 0 {
		parts := make([]string, len(l.Ubs))
		for i, t := range l.Ubs {
			parts[i] = t.String()
		}
		sb.WriteString(" ⪯ " + strings.Join(parts, " & "))
	}
	return sb.String()
}
func (l Let) Hash() Hash {
	parts := []string{"let"}
	for _, t := range l.Lbs {
		parts = append(parts, "lb", hashHex(t.Hash()))
	}
	for _, t := range l.Ubs {
		parts = append(parts, "ub", hashHex(t.Hash()))
	}
	return hashString(strings.Join(parts, "|"))
}
func (Let) isType() {}
