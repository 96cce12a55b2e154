package check

import "github.com/uros-5/tinymist/internal/ty"

// Constrain posts the subtype assertion lhs ⪯ rhs (spec §4.3.2). All
// constraint posting is additive; there is no unification or occurs
// check.
func (c *Checker) Constrain(lhs, rhs ty.Type) {
	if lv, ok := lhs.(ty.Var); ok {
		if rv, ok := rhs.(ty.Var); ok {
			// Same or different id: merging distinct variables is an
			// open question (spec §9); both cases are a no-op today.
			_ = lv
			_ = rv
			return
		}
		v, ok := c.varByID(lv.DefID)
		if ok {
			v.ConstrainUpper(rhs)
		}
		return
	}
	if rv, ok := rhs.(ty.Var); ok {
		v, ok := c.varByID(rv.DefID)
		if ok {
			v.ConstrainLower(lhs)
		}
		return
	}
	if lu, ok := lhs.(ty.Union); ok {
		for _, arm := range lu.Arms {
			c.Constrain(arm, rhs)
		}
		return
	}
	if ru, ok := rhs.(ty.Union); ok {
		for _, arm := range ru.Arms {
			c.Constrain(lhs, arm)
		}
		return
	}
	if kind, ok := dictAliasKind(rhs); ok {
		if ty.IsDict(lhs) {
			if canon, ok := c.catalog.CanonicalDict(kind); ok {
				c.Constrain(lhs, canon)
			}
		}
		return
	}
	if kind, ok := dictAliasKind(lhs); ok {
		if ty.IsDict(rhs) {
			if canon, ok := c.catalog.CanonicalDict(kind); ok {
				c.Constrain(canon, rhs)
			}
		}
		return
	}
	if ld, ok := lhs.(ty.Dict); ok {
		if rd, ok := rhs.(ty.Dict); ok {
			c.constrainDictFields(ld, rd)
			return
		}
	}
	if lvv, ok := lhs.(ty.Value); ok {
		c.info.backfillIfAbsent(lvv.Span, rhs)
		return
	}
	if rvv, ok := rhs.(ty.Value); ok {
		c.info.backfillIfAbsent(rvv.Span, lhs)
		return
	}
	// All other combinations: no-op (logged).
	c.logNoOp("constrain", lhs, rhs)
}

func dictAliasKind(t ty.Type) (ty.BuiltinKind, bool) {
	b, ok := t.(ty.Builtin)
	if !ok {
		return 0, false
	}
	switch b.Kind {
	case ty.Stroke, ty.Margin, ty.Inset, ty.Outset, ty.Radius:
		return b.Kind, true
	default:
		return 0, false
	}
}

func (c *Checker) constrainDictFields(a, b ty.Dict) {
	bIdx := make(map[string]int, len(b.Fields))
	for i, f := range b.Fields {
		bIdx[f.Name] = i
	}
	for _, fa := range a.Fields {
		j, ok := bIdx[fa.Name]
		if !ok {
			continue
		}
		fb := b.Fields[j]
		c.Constrain(fa.Type, fb.Type)
		if !fa.Span.IsDetached() {
			c.info.backfillIfAbsent(fa.Span, fb.Type)
		}
		if !fb.Span.IsDetached() {
			c.info.backfillIfAbsent(fb.Span, fa.Type)
		}
	}
}

// PossibleEverBe posts the "has ever been" relation used at equality and
// assignment sites (spec §4.3.3): ground-ish rhs values are threaded
// back into lhs as a lower bound without creating cross-variable edges;
// anything else is a no-op.
func (c *Checker) PossibleEverBe(lhs, rhs ty.Type) {
	if !isGroundish(rhs) {
		return
	}
	c.Constrain(rhs, lhs)
}

func isGroundish(t ty.Type) bool {
	switch t.(type) {
	case ty.Value, ty.ValueDoc, ty.Element, ty.Boolean, ty.Builtin:
		return true
	}
	switch t {
	case ty.Any, ty.None, ty.FlowNone, ty.Undef, ty.AutoT, ty.Content, ty.Infer, ty.ClauseT:
		return true
	}
	return false
}
