package check

import (
	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/ty"
)

// simplifyCache is the canonicalization cache described in spec §3.3: two
// memo tables (global by content hash x polarity, and per-variable by
// defId x polarity) plus the two polarity-occurrence scratch sets built
// by the analyze phase. It is rebuilt on every Simplify call and never
// shared across calls.
type simplifyCache struct {
	globalMemo map[globalMemoKey]ty.Type
	varMemo    map[varMemoKey]ty.Type
	positives  map[defuse.DefID]bool
	negatives  map[defuse.DefID]bool
	visited    map[varMemoKey]bool
}

type globalMemoKey struct {
	hash     ty.Hash
	positive bool
}

type varMemoKey struct {
	id       defuse.DefID
	positive bool
}

func newSimplifyCache() *simplifyCache {
	return &simplifyCache{
		globalMemo: make(map[globalMemoKey]ty.Type),
		varMemo:    make(map[varMemoKey]ty.Type),
		positives:  make(map[defuse.DefID]bool),
		negatives:  make(map[defuse.DefID]bool),
		visited:    make(map[varMemoKey]bool),
	}
}

// Simplify turns τ into a principal (or, with principal=false, a fuller)
// type via two-phase polarity-directed substitution (spec §4.4). It
// implements ty.SimplifyFunc and is the Simplifier half of the module's
// external interface (spec §6).
func (info *TypeCheckInfo) Simplify(t ty.Type, principal bool) ty.Type {
	info.simplifyMu.Lock()
	defer info.simplifyMu.Unlock()
	info.cache = newSimplifyCache()
	if t == nil {
		return ty.Any
	}
	analyzePolarity(t, true, info, info.cache)
	return transform(t, true, principal, info)
}

// analyzePolarity records, per variable, whether it occurs positively
// and/or negatively in t (spec §4.4 phase 1). Polarity inverts through
// function parameters and dict fields, and it only descends into a
// variable's lbs when positive / ubs when negative, dual to transform.
func analyzePolarity(t ty.Type, positive bool, info *TypeCheckInfo, cache *simplifyCache) {
	switch v := t.(type) {
	case ty.Var:
		key := varMemoKey{id: v.DefID, positive: positive}
		if cache.visited[key] {
			return
		}
		cache.visited[key] = true
		if positive {
			cache.positives[v.DefID] = true
		} else {
			cache.negatives[v.DefID] = true
		}
		lbs, ubs, ok := info.Bounds(v.DefID)
		if !ok {
			return
		}
		if positive {
			for _, b := range lbs {
				analyzePolarity(b, true, info, cache)
			}
		} else {
			for _, b := range ubs {
				analyzePolarity(b, false, info, cache)
			}
		}

	case ty.Func:
		for _, p := range v.Pos {
			analyzePolarity(p, !positive, info, cache)
		}
		for _, n := range v.Named {
			analyzePolarity(n.Type, !positive, info, cache)
		}
		if v.Rest != nil {
			analyzePolarity(*v.Rest, !positive, info, cache)
		}
		analyzePolarity(v.Ret, positive, info, cache)

	case ty.With:
		analyzePolarity(v.Callee, positive, info, cache)
		for _, a := range v.Applied {
			analyzeArgsPolarity(a, positive, info, cache)
		}

	case ty.Dict:
		for _, f := range v.Fields {
			analyzePolarity(f.Type, !positive, info, cache)
		}
	case ty.Array:
		analyzePolarity(v.Elem, positive, info, cache)
	case ty.Tuple:
		for _, e := range v.Elems {
			analyzePolarity(e, positive, info, cache)
		}
	case ty.Union:
		for _, a := range v.Arms {
			analyzePolarity(a, positive, info, cache)
		}
	case ty.Unary:
		analyzePolarity(v.Operand, positive, info, cache)
	case ty.Binary:
		analyzePolarity(v.Operands[0], positive, info, cache)
		analyzePolarity(v.Operands[1], positive, info, cache)
	case ty.If:
		analyzePolarity(v.Cond, positive, info, cache)
		analyzePolarity(v.Then, positive, info, cache)
		analyzePolarity(v.Else, positive, info, cache)
	case ty.At:
		analyzePolarity(v.Target, positive, info, cache)
	default:
		// Trivial, Boolean, Builtin, Value, ValueDoc, Element, Let, Args:
		// no variables to record.
	}
}

func analyzeArgsPolarity(a ty.Args, positive bool, info *TypeCheckInfo, cache *simplifyCache) {
	for _, p := range a.Positional {
		analyzePolarity(p, !positive, info, cache)
	}
	for _, n := range a.Named {
		analyzePolarity(n.Type, !positive, info, cache)
	}
}

// transform rebuilds t for the given polarity and principal flag (spec
// §4.4 phase 2), consulting and filling the global content-hash memo for
// non-variable types.
func transform(t ty.Type, positive, principal bool, info *TypeCheckInfo) ty.Type {
	if t == nil {
		return ty.Any
	}
	if v, ok := t.(ty.Var); ok {
		return transformVarCached(v, positive, principal, info)
	}
	key := globalMemoKey{hash: t.Hash(), positive: positive}
	if cached, ok := info.cache.globalMemo[key]; ok {
		return cached
	}
	result := transformStructural(t, positive, principal, info)
	info.cache.globalMemo[key] = result
	return result
}

// transformVarCached applies the cycle-safe "visiting -> Any" sentinel
// pattern (spec §9): the per-variable memo is seeded with Any before
// recursing, so a variable that reaches itself through its own bounds
// terminates instead of looping.
func transformVarCached(v ty.Var, positive, principal bool, info *TypeCheckInfo) ty.Type {
	key := varMemoKey{id: v.DefID, positive: positive}
	if cached, ok := info.cache.varMemo[key]; ok {
		return cached
	}
	info.cache.varMemo[key] = ty.Any
	result := transformVar(v, positive, principal, info)
	info.cache.varMemo[key] = result
	return result
}

func transformVar(v ty.Var, positive, principal bool, info *TypeCheckInfo) ty.Type {
	lbs, ubs, ok := info.Bounds(v.DefID)
	if !ok {
		return ty.Any
	}
	cache := info.cache
	onlyPositive := cache.positives[v.DefID] && !cache.negatives[v.DefID]
	onlyNegative := cache.negatives[v.DefID] && !cache.positives[v.DefID]
	if principal && onlyPositive {
		return collapseBounds(lbs, true, principal, info)
	}
	if principal && onlyNegative {
		return collapseBounds(ubs, false, principal, info)
	}
	lbsT := transformEach(lbs, true, principal, info)
	ubsT := transformEach(ubs, false, principal, info)
	if len(lbsT) == 0 && len(ubsT) == 0 {
		return ty.Any
	}
	return ty.Let{Lbs: lbsT, Ubs: ubsT}
}

// collapseBounds implements the purely-one-sided shortcut: drop the
// other bound set entirely, returning the sole remaining bound directly
// when there is exactly one, Any when there are none, or a one-sided Let
// otherwise.
func collapseBounds(bounds []ty.Type, positive, principal bool, info *TypeCheckInfo) ty.Type {
	transformed := transformEach(bounds, positive, principal, info)
	switch len(transformed) {
	case 0:
		return ty.Any
	case 1:
		return transformed[0]
	default:
		if positive {
			return ty.Let{Lbs: transformed}
		}
		return ty.Let{Ubs: transformed}
	}
}

func transformEach(types []ty.Type, positive, principal bool, info *TypeCheckInfo) []ty.Type {
	out := make([]ty.Type, len(types))
	for i, t := range types {
		out[i] = transform(t, positive, principal, info)
	}
	return out
}

func transformStructural(t ty.Type, positive, principal bool, info *TypeCheckInfo) ty.Type {
	switch v := t.(type) {
	case ty.Func:
		pos := make([]ty.Type, len(v.Pos))
		for i, p := range v.Pos {
			pos[i] = transform(p, !positive, principal, info)
		}
		named := make([]ty.NamedParam, len(v.Named))
		for i, n := range v.Named {
			named[i] = ty.NamedParam{Name: n.Name, Type: transform(n.Type, !positive, principal, info)}
		}
		var rest *ty.Type
		if v.Rest != nil {
			r := transform(*v.Rest, !positive, principal, info)
			rest = &r
		}
		ret := transform(v.Ret, positive, principal, info)
		return ty.Func{Pos: pos, Named: named, Rest: rest, Ret: ret}

	case ty.Dict:
		fields := make([]ty.DictField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = ty.DictField{
				Name: f.Name,
				Type: transform(f.Type, !positive, principal, info),
				Span: f.Span,
			}
		}
		return ty.Dict{Fields: fields}

	case ty.Array:
		return ty.Array{Elem: transform(v.Elem, positive, principal, info)}

	case ty.Tuple:
		elems := make([]ty.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = transform(e, positive, principal, info)
		}
		return ty.Tuple{Elems: elems}

	case ty.Union:
		arms := make([]ty.Type, len(v.Arms))
		for i, a := range v.Arms {
			arms[i] = transform(a, positive, principal, info)
		}
		return ty.Union{Arms: arms}

	case ty.Unary:
		return ty.Unary{Op: v.Op, Operand: transform(v.Operand, positive, principal, info)}

	case ty.Binary:
		return ty.Binary{Op: v.Op, Operands: [2]ty.Type{
			transform(v.Operands[0], positive, principal, info),
			transform(v.Operands[1], positive, principal, info),
		}}

	case ty.If:
		return ty.If{
			Cond: transform(v.Cond, positive, principal, info),
			Then: transform(v.Then, positive, principal, info),
			Else: transform(v.Else, positive, principal, info),
		}

	case ty.At:
		return ty.At{Target: transform(v.Target, positive, principal, info), Field: v.Field}

	case ty.With:
		applied := make([]ty.Args, len(v.Applied))
		for i, a := range v.Applied {
			applied[i] = transformArgs(a, positive, principal, info)
		}
		return ty.With{Callee: transform(v.Callee, positive, principal, info), Applied: applied}

	default:
		// Trivial, Boolean, Builtin, Value, ValueDoc, Element, Let, Args:
		// no variables to substitute.
		return t
	}
}

func transformArgs(a ty.Args, positive, principal bool, info *TypeCheckInfo) ty.Args {
	pos := make([]ty.Type, len(a.Positional))
	for i, p := range a.Positional {
		pos[i] = transform(p, !positive, principal, info)
	}
	named := make([]ty.NamedParam, len(a.Named))
	for i, n := range a.Named {
		named[i] = ty.NamedParam{Name: n.Name, Type: transform(n.Type, !positive, principal, info)}
	}
	return ty.Args{Positional: pos, Named: named}
}
