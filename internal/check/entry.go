package check

import "github.com/uros-5/tinymist/internal/ty"

// Simplify exposes TypeCheckInfo.Simplify through the Checker that built
// it, for callers that only hold a Checker (e.g. the demo CLI).
func (c *Checker) Simplify(t ty.Type, principal bool) ty.Type {
	return c.info.Simplify(t, principal)
}

// Signatures extracts the Func signatures usable for completion from t
// (spec §4.3.4, "Type.signatures").
func (c *Checker) Signatures(t ty.Type, principal bool) []ty.Func {
	return ty.Signatures(t, c.info, c.info.Simplify, principal)
}
