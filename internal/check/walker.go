package check

import (
	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

// checkExpr is the per-node contract (spec §4.2.1): every node yields a
// Type. The call-site entry point additionally records its result at the
// call's own span (see checkFuncCall).
func (c *Checker) checkExpr(n *syntax.Node) ty.Type {
	if n == nil {
		return ty.Any
	}
	switch n.Kind {
	case syntax.KindText, syntax.KindLinebreak, syntax.KindEscape, syntax.KindShorthand,
		syntax.KindSmartQuote, syntax.KindRaw, syntax.KindLink, syntax.KindLabel,
		syntax.KindRef, syntax.KindMathAlign, syntax.KindPrimes:
		return ty.Content

	case syntax.KindSpace, syntax.KindParbreak:
		return ty.None

	case syntax.KindBreak, syntax.KindContinue, syntax.KindReturn:
		return ty.FlowNone

	case syntax.KindStrong, syntax.KindEmph, syntax.KindHeading, syntax.KindListItem,
		syntax.KindEnumItem, syntax.KindTermItem, syntax.KindEquation,
		syntax.KindMathDelimited, syntax.KindMathAttach, syntax.KindMathFrac,
		syntax.KindMathRoot, syntax.KindParenthesized:
		return c.checkContainer(n.Children)

	case syntax.KindMarkupBlock, syntax.KindContentBlock:
		return c.checkMode(Markup, n)
	case syntax.KindCodeBlock, syntax.KindCode:
		return c.checkMode(Code, n)
	case syntax.KindMath:
		return c.checkMode(Math, n)

	case syntax.KindClause:
		return ty.ClauseT

	case syntax.KindBool, syntax.KindInt, syntax.KindFloat, syntax.KindNumeric, syntax.KindString:
		return c.checkLiteral(n)

	case syntax.KindIdent:
		return c.checkIdent(n, false)
	case syntax.KindMathIdent:
		return c.checkIdent(n, true)

	case syntax.KindArray:
		return c.checkArray(n)
	case syntax.KindDict:
		return c.checkDict(n)
	case syntax.KindDictNamed, syntax.KindDictKeyed, syntax.KindDictSpread:
		// Reached only when a field entry is evaluated standalone
		// (outside checkDict); the value it wraps is its type.
		return c.checkExpr(n.Value)

	case syntax.KindUnary:
		return c.checkUnary(n)
	case syntax.KindBinary:
		return c.checkBinary(n)
	case syntax.KindFieldAccess:
		target := c.checkExpr(n.Left)
		return ty.At{Target: target, Field: n.Text}

	case syntax.KindFuncCall:
		return c.checkFuncCall(n)
	case syntax.KindArgs:
		return ty.Any

	case syntax.KindClosure:
		return c.checkClosure(n)

	case syntax.KindLetBinding:
		return c.checkLetBinding(n)

	case syntax.KindSetRule:
		return c.checkSetRule(n)
	case syntax.KindShowRule:
		return c.checkShowRule(n)

	case syntax.KindContextual:
		return ty.Unary{Op: ty.UnaryContext, Operand: c.checkExpr(n.Body)}

	case syntax.KindConditional:
		return c.checkConditional(n)

	case syntax.KindWhileLoop, syntax.KindForLoop:
		c.checkExpr(n.Cond)
		c.checkExpr(n.Body)
		return ty.Any

	case syntax.KindModuleImport, syntax.KindModuleInclude:
		for _, ch := range n.Children {
			c.checkExpr(ch)
		}
		return ty.None

	case syntax.KindDestructuring:
		for _, ch := range n.Children {
			c.checkExpr(ch)
		}
		return ty.Any

	case syntax.KindDestructAssignment:
		c.checkExpr(n.Left)
		c.checkExpr(n.Right)
		return ty.Any

	default:
		return ty.Undef
	}
}

func (c *Checker) checkMode(mode Mode, n *syntax.Node) ty.Type {
	var result ty.Type
	c.pushMode(mode, func() {
		result = c.checkContainer(n.Children)
	})
	return result
}

func isControlExit(k syntax.Kind) bool {
	switch k {
	case syntax.KindBreak, syntax.KindContinue, syntax.KindReturn:
		return true
	default:
		return false
	}
}

// checkContainer implements the Joiner traversal (spec §4.2.3).
func (c *Checker) checkContainer(children []*syntax.Node) ty.Type {
	j := NewJoiner()
	for _, child := range children {
		t := c.checkExpr(child)
		if isControlExit(child.Kind) {
			j.Poison()
		}
		j.Incorporate(t)
	}
	return j.Finalize()
}

func (c *Checker) checkLiteral(n *syntax.Node) ty.Type {
	if c.eval != nil {
		if v, ok := c.eval.MiniEval(n); ok {
			return ty.Value{V: v, Span: n.Span}
		}
	}
	return ty.Value{V: hostval.Value{Kind: literalKind(n.Kind), Raw: n.Literal}, Span: n.Span}
}

func literalKind(k syntax.Kind) string {
	switch k {
	case syntax.KindBool:
		return "bool"
	case syntax.KindInt:
		return "int"
	case syntax.KindFloat:
		return "float"
	case syntax.KindNumeric:
		return "numeric"
	case syntax.KindString:
		return "string"
	default:
		return "literal"
	}
}

func (c *Checker) checkIdent(n *syntax.Node, inMath bool) ty.Type {
	if c.resolver != nil {
		if id, ok := c.resolver.GetRef(n); ok {
			v := c.varFor(id, n.Text)
			ref := v.Ref()
			c.info.backfillIfAbsent(n.Span, ref)
			return ref
		}
	}
	if c.global != nil {
		if v, ok := c.global.ResolveGlobal(n, inMath); ok {
			return ty.Value{V: v, Span: n.Span}
		}
	}
	return ty.Undef
}

func (c *Checker) checkArray(n *syntax.Node) ty.Type {
	filtered := syntax.NonClause(n.Children)
	elems := make([]ty.Type, len(filtered))
	for i, ch := range filtered {
		elems[i] = c.checkExpr(ch)
	}
	return ty.Tuple{Elems: elems}
}

func (c *Checker) checkDict(n *syntax.Node) ty.Type {
	var fields []ty.DictField
	for _, ch := range n.Children {
		switch ch.Kind {
		case syntax.KindDictNamed:
			t := c.checkExpr(ch.Value)
			fields = append(fields, ty.DictField{Name: ch.Text, Type: t, Span: ch.Span})
		case syntax.KindDictKeyed:
			name, ok := c.keyString(ch.Key)
			t := c.checkExpr(ch.Value)
			if ok {
				fields = append(fields, ty.DictField{Name: name, Type: t, Span: ch.Span})
			}
		case syntax.KindDictSpread:
			// Open question (spec §9): a spread's contribution to the
			// dict's own field set is not modeled; only its expression is
			// evaluated, for side effects (variable uses inside it).
			c.checkExpr(ch.Value)
		default:
			c.checkExpr(ch)
		}
	}
	return ty.Dict{Fields: fields}
}

func (c *Checker) keyString(key *syntax.Node) (string, bool) {
	if key == nil || c.eval == nil {
		return "", false
	}
	v, ok := c.eval.ConstEval(key)
	if !ok {
		return "", false
	}
	s, ok := v.Raw.(string)
	return s, ok
}

func (c *Checker) checkUnary(n *syntax.Node) ty.Type {
	operand := c.checkExpr(n.Operand)
	if c.eval != nil {
		if v, ok := c.eval.MiniEval(n); ok {
			return ty.Value{V: v, Span: n.Span}
		}
	}
	return ty.Unary{Op: toTyUnaryOp(n.UnOp), Operand: operand}
}

func toTyUnaryOp(op syntax.UnaryOp) ty.UnaryOp {
	switch op {
	case syntax.UnaryPos:
		return ty.UnaryPos
	case syntax.UnaryNeg:
		return ty.UnaryNeg
	case syntax.UnaryNot:
		return ty.UnaryNot
	case syntax.UnaryContext:
		return ty.UnaryContext
	default:
		return ty.UnaryPos
	}
}

func (c *Checker) checkBinary(n *syntax.Node) ty.Type {
	left := c.checkExpr(n.Left)
	right := c.checkExpr(n.Right)
	if c.eval != nil {
		if v, ok := c.eval.MiniEval(n); ok {
			return ty.Value{V: v, Span: n.Span}
		}
	}
	c.constrainBinary(n.BinOp, left, right)
	return ty.Binary{Op: string(n.BinOp), Operands: [2]ty.Type{left, right}}
}

// constrainBinary posts the side-effecting constraints a Binary node's
// operator implies (spec §4.2.1, §4.3.2), mirroring the original
// check_binary's per-operator match.
func (c *Checker) constrainBinary(op syntax.BinaryOp, lhs, rhs ty.Type) {
	switch op {
	case syntax.BinEq, syntax.BinNeq, syntax.BinLeq, syntax.BinGeq:
		c.PossibleEverBe(lhs, rhs)
		c.PossibleEverBe(rhs, lhs)
	case syntax.BinAnd, syntax.BinOr:
		c.Constrain(lhs, ty.Boolean{})
		c.Constrain(rhs, ty.Boolean{})
	case syntax.BinAssign:
		c.PossibleEverBe(lhs, rhs)
	}
}

// evalArgs evaluates a KindArgs node into the Args bundle Apply consumes,
// tracking each actual's syntax node for the span-backfill case 3 needs.
func (c *Checker) evalArgs(n *syntax.Node) argEval {
	ae := argEval{
		namedItem: make(map[string]*syntax.Node),
		namedExpr: make(map[string]*syntax.Node),
	}
	if n == nil {
		return ae
	}
	for _, ch := range n.Children {
		switch ch.Kind {
		case syntax.KindArgNamed:
			t := c.checkExpr(ch.Value)
			ae.bundle.Named = append(ae.bundle.Named, ty.NamedParam{Name: ch.Text, Type: t})
			ae.namedItem[ch.Text] = ch
			ae.namedExpr[ch.Text] = ch.Value
		case syntax.KindArgSpread:
			// Rest-arg handling on the caller side is ignored by
			// check_apply (spec §9); the expression is still evaluated
			// for its own variable uses.
			c.checkExpr(ch.Value)
		case syntax.KindClause:
			// punctuation between actuals
		default:
			t := c.checkExpr(ch)
			ae.bundle.Positional = append(ae.bundle.Positional, t)
			ae.posNodes = append(ae.posNodes, ch)
		}
	}
	return ae
}

func (c *Checker) checkFuncCall(n *syntax.Node) ty.Type {
	calleeType := c.checkExpr(n.Callee)
	ae := c.evalArgs(n.Args)
	var candidates []ty.Type
	c.Apply(calleeType, ae, &candidates)
	result := ty.FromTypes(candidates)
	c.info.setCallResult(n.Span, result)
	return result
}

func (c *Checker) checkClosure(n *syntax.Node) ty.Type {
	var pos []ty.Type
	var named []ty.NamedParam
	var rest *ty.Type

	for _, p := range n.Params {
		switch {
		case p.Rest:
			v := c.varFor(c.defIDForParam(p), p.Name)
			v.EverBe(ty.Builtin{Kind: ty.ArgsKind})
			r := v.Ref()
			rest = &r
		case p.Named:
			v := c.varFor(c.defIDForParam(p), p.Name)
			if p.Default != nil {
				v.EverBe(c.checkExpr(p.Default))
			}
			named = append(named, ty.NamedParam{Name: p.Name, Type: v.Ref()})
		default:
			v := c.varFor(c.defIDForParam(p), p.Name)
			if p.Default != nil {
				v.EverBe(c.checkExpr(p.Default))
			}
			pos = append(pos, v.Ref())
		}
	}

	ret := c.checkExpr(n.Body)
	return ty.Func{Pos: pos, Named: named, Rest: rest, Ret: ret}
}

// defIDForParam resolves a closure parameter to its definition id via the
// def/use resolver, keyed by the parameter's own binding-site node.
func (c *Checker) defIDForParam(p *syntax.Param) defuse.DefID {
	if c.resolver == nil || p.Node == nil {
		return 0
	}
	if def, ok := c.resolver.GetDef(c.file, p.Node); ok {
		return def.ID
	}
	return 0
}

func (c *Checker) checkLetBinding(n *syntax.Node) ty.Type {
	var value ty.Type
	if n.Init != nil {
		value = c.checkExpr(n.Init)
	} else {
		value = ty.Infer
	}
	if n.ClosureShorthand {
		v := c.varFor(c.defIDFromNode(n), n.ClosureName)
		// Closure-as-strong: the binding's variable is pushed to lbs via
		// the same shared store as any other "ever-be" site, not a
		// separate strong-binding kind (spec §4.2.1, SPEC_FULL.md
		// supplemented feature #1).
		v.AsStrong(value)
		ref := v.Ref()
		c.info.backfillIfAbsent(n.Span, ref)
		return ref
	}
	return c.checkPattern(n.Pattern, value)
}

// defIDFromNode resolves node itself as a binding site (used where the
// binding occurrence has no separate pattern sub-node, e.g. closure
// shorthand lets).
func (c *Checker) defIDFromNode(n *syntax.Node) defuse.DefID {
	if c.resolver == nil {
		return 0
	}
	if def, ok := c.resolver.GetDef(c.file, n); ok {
		return def.ID
	}
	return 0
}

func (c *Checker) checkSetRule(n *syntax.Node) ty.Type {
	calleeType := c.checkExpr(n.Callee)
	ae := c.evalArgs(n.Args)
	var candidates []ty.Type
	c.Apply(calleeType, ae, &candidates)
	return ty.Any
}

func (c *Checker) checkShowRule(n *syntax.Node) ty.Type {
	c.checkExpr(n.Selector)
	c.checkExpr(n.Transform)
	return ty.Any
}

func (c *Checker) checkConditional(n *syntax.Node) ty.Type {
	cond := c.checkExpr(n.Cond)
	then := c.checkExpr(n.Then)
	var els ty.Type = ty.None
	if n.Else != nil {
		els = c.checkExpr(n.Else)
	}
	return ty.If{Cond: cond, Then: then, Else: els}
}
