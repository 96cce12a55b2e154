package ty

import (
	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/runtimesig"
	"github.com/uros-5/tinymist/internal/syntax"
)

// IsDict reports whether t is a structural dictionary. Per the original
// implementation this is deliberately narrow: an empty array literal is
// also "constructing a dict" in the host grammar, but since it carries
// no fields yet there is nothing useful to coerce, so it is not treated
// as a dict here either (spec §4.3.2 dict-alias coercion comment).
func IsDict(t Type) bool {
	_, ok := t.(Dict)
	return ok
}

// FromTypes collapses a sequence of candidate types into one: empty
// becomes Any, a singleton is returned as-is, otherwise they are
// wrapped in a Union with no deduplication (spec §4.1).
func FromTypes(seq []Type) Type {
	switch len(seq) {
	case 0:
		return Any
	case 1:
		return seq[0]
	default:
		cp := make([]Type, len(seq))
		copy(cp, seq)
		return Union{Arms: cp}
	}
}

// ParamMapLookup consults the Built-in Catalog's parameter map for a
// refined type for (elementID, paramName). Implemented by
// internal/catalog; passed in rather than imported to keep ty a leaf
// package in the dependency order (spec §2).
type ParamMapLookup func(elementID, paramName string) (Type, bool)

// FromReturnSite maps a host callable's declared return description to
// a Type (spec §4.1). Element constructors become Element(id); partial
// applications recurse into the wrapped callable; value casts become
// ValueDoc; type casts become a detached Value wrapping the cast's
// named type; unions flatten into a single Union.
func FromReturnSite(callable hostval.Callable, cast runtimesig.CastInfo) Type {
	if cast.Element != "" {
		return Element{ID: cast.Element}
	}
	if cast.Partial != nil {
		// The callable this site wraps may itself be a partial
		// application further down; from_return_site has no cast info
		// for it, so we recurse with an empty CastInfo.
		return FromReturnSite(cast.Partial, runtimesig.CastInfo{})
	}
	if len(cast.Union) > 0 {
		arms := make([]Type, 0, len(cast.Union))
		for _, u := range cast.Union {
			flattenReturnSite(callable, u, &arms)
		}
		return FromTypes(arms)
	}
	if cast.TypeCast {
		return Value{V: hostval.Value{Kind: "type", Raw: cast.TypeName}, Span: syntax.Detached}
	}
	if cast.ValueDoc != "" {
		return ValueDoc{V: hostval.Value{Kind: callable.Name()}, Doc: cast.ValueDoc}
	}
	return Any
}

func flattenReturnSite(callable hostval.Callable, cast runtimesig.CastInfo, out *[]Type) {
	if len(cast.Union) > 0 {
		for _, u := range cast.Union {
			flattenReturnSite(callable, u, out)
		}
		return
	}
	*out = append(*out, FromReturnSite(callable, cast))
}

// FromParamSite is FromReturnSite's counterpart for a declared
// parameter: it first consults the catalog's parameter map for
// element/native callables, falling back to the generic cast-based
// mapping only when the catalog has no entry (spec §4.1).
func FromParamSite(callable hostval.Callable, param runtimesig.Param, lookup ParamMapLookup) Type {
	if lookup != nil {
		elementID := ""
		// The catalog keys its parameter map by element id; non-element
		// callables (plain functions) have no such entry and always
		// fall through to the generic mapping below.
		if e, ok := callable.(hostval.ElementCallable); ok {
			elementID = e.ElementID()
		}
		if elementID != "" {
			if refined, ok := lookup(elementID, param.Name); ok {
				return refined
			}
		}
	}
	return FromReturnSite(callable, param.Cast)
}

// ---- Signature extraction (spec §4.3.4) ----

// VarBounds is the subset of TypeCheckInfo.vars access Signatures needs;
// implemented by internal/check.TypeCheckInfo.
type VarBounds interface {
	Bounds(id defuse.DefID) (lbs, ubs []Type, ok bool)
}

// SimplifyFunc is internal/check's Simplifier entry point, passed in so
// ty need not import check (spec dependency order: Simplifier depends
// on the lattice, not vice versa).
type SimplifyFunc func(t Type, principal bool) Type

// Signatures extracts the list of Func signatures usable for completion
// from t (spec §4.3.4). Each returned signature's parameter types are
// simplified before return.
func Signatures(t Type, vb VarBounds, simplify SimplifyFunc, principal bool) []Func {
	var out []Func
	collectSignatures(t, vb, simplify, principal, &out)
	for i := range out {
		out[i] = simplifySignature(out[i], simplify, principal)
	}
	return out
}

func collectSignatures(t Type, vb VarBounds, simplify SimplifyFunc, principal bool, out *[]Func) {
	switch v := t.(type) {
	case Func:
		*out = append(*out, v)
	case With:
		var callee []Func
		collectSignatures(v.Callee, vb, simplify, principal, &callee)
		consume := v.AppliedArgCount()
		for _, f := range callee {
			*out = append(*out, dropLeadingPositionals(f, consume))
		}
	case Union:
		for _, arm := range v.Arms {
			collectSignatures(arm, vb, simplify, principal, out)
		}
	case Var:
		if vb == nil {
			return
		}
		lbs, ubs, ok := vb.Bounds(v.DefID)
		if !ok {
			return
		}
		for _, ub := range ubs {
			collectSignatures(ub, vb, simplify, principal, out)
		}
		if !principal {
			for _, lb := range lbs {
				collectSignatures(lb, vb, simplify, principal, out)
			}
		}
	default:
		// no candidates
	}
}

func dropLeadingPositionals(f Func, n int) Func {
	if n < 0 {
		n = 0
	}
	if n > len(f.Pos) {
		n = len(f.Pos)
	}
	out := f
	out.Pos = append([]Type{}, f.Pos[n:]...)
	return out
}

func simplifySignature(f Func, simplify SimplifyFunc, principal bool) Func {
	if simplify == nil {
		return f
	}
	out := f
	out.Pos = make([]Type, len(f.Pos))
	for i, p := range f.Pos {
		out.Pos[i] = simplify(p, principal)
	}
	out.Named = make([]NamedParam, len(f.Named))
	for i, n := range f.Named {
		out.Named[i] = NamedParam{Name: n.Name, Type: simplify(n.Type, principal)}
	}
	if f.Rest != nil {
		r := simplify(*f.Rest, principal)
		out.Rest = &r
	}
	out.Ret = simplify(f.Ret, principal)
	return out
}
