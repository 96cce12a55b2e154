package check

import (
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

// checkPattern distributes incoming's type through pat, creating and
// binding variables at identifier sites (spec §4.2.2).
func (c *Checker) checkPattern(pat *syntax.Node, incoming ty.Type) ty.Type {
	if pat == nil {
		return incoming
	}
	switch pat.Kind {
	case syntax.KindPatternIdent, syntax.KindIdent:
		def, ok := c.resolver.GetDef(c.file, pat)
		if !ok {
			return incoming
		}
		v := c.varFor(def.ID, def.Name)
		v.EverBe(incoming)
		ref := v.Ref()
		c.info.backfillIfAbsent(pat.Span, ref)
		return ref

	case syntax.KindPatternPlaceholder, syntax.KindPatternNormal:
		return incoming

	case syntax.KindPatternParenthesized:
		return c.checkPattern(firstChild(pat), incoming)

	case syntax.KindPatternDestructuring:
		// Structural destructuring inference is an open extension (spec
		// §9); sub-patterns still get a chance to bind their own
		// variables, each against Any rather than a narrowed slice of
		// incoming.
		for _, child := range pat.Children {
			c.checkPattern(child, ty.Any)
		}
		return ty.Any

	default:
		return incoming
	}
}

func firstChild(n *syntax.Node) *syntax.Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}
