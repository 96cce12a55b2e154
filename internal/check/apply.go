package check

import (
	"github.com/uros-5/tinymist/internal/catalog"
	"github.com/uros-5/tinymist/internal/diag"
	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/runtimesig"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

// argEval is the result of evaluating a KindArgs node: the Args bundle
// Apply reasons over, plus enough syntax back-references to backfill
// mapping at the actual-argument spans (spec §4.3.1 case 3).
type argEval struct {
	bundle    ty.Args
	posNodes  []*syntax.Node
	namedItem map[string]*syntax.Node // the ArgNamed node itself
	namedExpr map[string]*syntax.Node // its value child
}

// Apply implements check_apply (spec §4.3.1): given a callee Type and an
// evaluated Args bundle, it posts constraints and appends result
// candidates.
func (c *Checker) Apply(callee ty.Type, ae argEval, candidates *[]ty.Type) {
	switch v := callee.(type) {
	case ty.Var:
		fv, ok := c.varByID(v.DefID)
		if !ok {
			return
		}
		lbs, ubs := fv.Snapshot()
		for _, b := range lbs {
			c.Apply(b, ae, candidates)
		}
		for _, b := range ubs {
			c.Apply(b, ae, candidates)
		}
	case ty.Func:
		c.applyFunc(v, ae)
		*candidates = append(*candidates, v.Ret)
	case ty.Value:
		c.applyCallable(v.V, ae, candidates)
	case ty.ValueDoc:
		c.applyCallable(v.V, ae, candidates)
	case ty.At:
		c.applyAt(v, ae, candidates)
	default:
		// Dict, Array, Tuple, With, Args, Union, Let, non-callable
		// literals, trivials, Builtin, Boolean, Unary, Binary, If,
		// Element, Clause: no candidates added.
	}
}

func (c *Checker) applyFunc(f ty.Func, ae argEval) {
	for i, actual := range ae.bundle.Positional {
		// Extras beyond the declared arity are constrained against Any;
		// the declared rest type is not consulted here (spec §9, rest-arg
		// handling is a known gap in check_apply).
		var formal ty.Type = ty.Any
		if i < len(f.Pos) {
			formal = f.Pos[i]
		}
		c.Constrain(actual, formal)
	}
	for _, na := range ae.bundle.Named {
		if formal, ok := namedFormal(f, na.Name); ok {
			c.Constrain(na.Type, formal)
		}
	}
}

func namedFormal(f ty.Func, name string) (ty.Type, bool) {
	for _, n := range f.Named {
		if n.Name == name {
			return n.Type, true
		}
	}
	return nil, false
}

func (c *Checker) applyCallable(v hostval.Value, ae argEval, candidates *[]ty.Type) {
	if v.Func == nil || c.sigs == nil {
		return
	}
	analysis, ok := c.sigs.Analyze(v.Func)
	if !ok {
		if c.sink != nil {
			c.sink.Emit(diag.Record{
				Code:    diag.SIG001,
				Message: "runtime-signature analyzer has no entry for " + v.Func.Name(),
			})
		}
		return
	}
	sig := analysis.Primary()
	var lookup ty.ParamMapLookup
	if c.catalog != nil {
		lookup = c.catalog.Lookup
	}
	for i, actual := range ae.bundle.Positional {
		var declared ty.Type = ty.Any
		if i < len(sig.Pos) {
			declared = ty.FromParamSite(v.Func, sig.Pos[i], lookup)
		}
		c.Constrain(actual, declared)
		if i < len(ae.posNodes) && ae.posNodes[i] != nil {
			c.info.backfillIfAbsent(ae.posNodes[i].Span, declared)
			c.checkScalarDomainLiteral(declared, ae.posNodes[i])
		}
	}
	for _, na := range ae.bundle.Named {
		param, ok := findNamedParam(sig, na.Name)
		if !ok {
			continue
		}
		declared := ty.FromParamSite(v.Func, param, lookup)
		c.Constrain(na.Type, declared)
		if item, ok := ae.namedItem[na.Name]; ok {
			c.info.backfillIfAbsent(item.Span, declared)
		}
		if expr, ok := ae.namedExpr[na.Name]; ok {
			c.info.backfillIfAbsent(expr.Span, declared)
		}
	}
	*candidates = append(*candidates, ty.FromReturnSite(v.Func, sig.Ret))
}

func findNamedParam(sig runtimesig.Signature, name string) (runtimesig.Param, bool) {
	for _, p := range sig.Named {
		if p.Name == name {
			return p, true
		}
	}
	return runtimesig.Param{}, false
}

// checkScalarDomainLiteral validates a string literal argument against
// its declared scalar domain (spec §4.1, SPEC_FULL.md domain-stack
// wiring) and emits SIG002 on failure. It reads the literal straight off
// the syntax node rather than through a hostval.Value.
func (c *Checker) checkScalarDomainLiteral(declared ty.Type, node *syntax.Node) {
	if c.sink == nil || node == nil || node.Kind != syntax.KindString {
		return
	}
	b, ok := declared.(ty.Builtin)
	if !ok {
		return
	}
	raw, ok := node.Literal.(string)
	if !ok {
		return
	}
	switch b.Kind {
	case ty.TextLang:
		if !catalog.ValidateLangTag(raw) {
			c.sink.Emit(diag.Record{Code: diag.SIG002, Message: "not a valid language tag: " + raw})
		}
	case ty.TextRegion:
		if !catalog.ValidateRegionTag(raw) {
			c.sink.Emit(diag.Record{Code: diag.SIG002, Message: "not a valid region tag: " + raw})
		}
	}
}

func (c *Checker) applyAt(a ty.At, ae argEval, candidates *[]ty.Type) {
	if a.Field != "with" && a.Field != "where" {
		return
	}
	primary := c.primaryType(a.Target)
	if f, ok := primary.(ty.Func); ok {
		c.applyFunc(f, ae)
	}
	*candidates = append(*candidates, ty.With{Callee: a.Target, Applied: []ty.Args{ae.bundle}})
}

// primaryType resolves an At's target to a representative shape (spec
// §4.3.1 case 4): the first upper bound, else the first lower bound,
// else Any; recurses through variables and nested At targets.
func (c *Checker) primaryType(t ty.Type) ty.Type {
	switch v := t.(type) {
	case ty.Var:
		fv, ok := c.varByID(v.DefID)
		if !ok {
			return ty.Any
		}
		lbs, ubs := fv.Snapshot()
		if len(ubs) > 0 {
			return c.primaryType(ubs[0])
		}
		if len(lbs) > 0 {
			return c.primaryType(lbs[0])
		}
		return ty.Any
	case ty.At:
		return c.primaryType(v.Target)
	default:
		return t
	}
}
