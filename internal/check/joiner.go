package check

import "github.com/uros-5/tinymist/internal/ty"

// Joiner aggregates a container node's child types into one parent type
// (spec §4.2.3). It starts at None and accumulates a "definite" part
// plus a side list of variable "possibles"; a control-exit child poisons
// it.
type Joiner struct {
	definite ty.Type // nil means "not yet set" (distinct from ty.None)
	possibles []ty.Type
	poisoned bool
}

// NewJoiner returns a Joiner ready to incorporate children.
func NewJoiner() *Joiner { return &Joiner{} }

func isIgnoredTrivial(t ty.Type) bool {
	switch t {
	case ty.ClauseT, ty.Undef, ty.Any, ty.Infer, ty.None, ty.FlowNone:
		return true
	default:
		return false
	}
}

// Incorporate folds one child's type into the joiner's running state.
func (j *Joiner) Incorporate(t ty.Type) {
	if isIgnoredTrivial(t) {
		return
	}
	if _, isVar := t.(ty.Var); isVar {
		j.possibles = append(j.possibles, t)
		return
	}
	if t == ty.Content {
		switch {
		case j.definite == nil:
			j.definite = ty.Content
		case j.definite == ty.Content:
			// stays Content
		default:
			j.definite = ty.Undef
		}
		return
	}
	// Any other concrete, non-content type.
	if j.definite == nil {
		j.definite = t
	} else {
		j.definite = ty.Undef
	}
}

// Poison marks the joiner as having observed a control-exit statement
// (break/continue/return) among its children (spec §4.2.1, §4.2.3).
func (j *Joiner) Poison() { j.poisoned = true }

// Finalize returns the joined type. If possibles is empty, the definite
// part is returned (None if nothing concrete was ever seen); otherwise
// the join is widened to Any, a broad merge left as an open refinement
// by the spec (§4.2.3, §9). A control-exit child only sets the poisoned
// flag for callers that care (it is never consulted here): per spec
// §4.2.3, `FlowNone` is an ignored trivial like `Undef`/`Any`, so a
// poisoned child never overrides an otherwise-definite join.
func (j *Joiner) Finalize() ty.Type {
	if len(j.possibles) == 0 {
		if j.definite == nil {
			return ty.None
		}
		return j.definite
	}
	return ty.Any
}

// Poisoned reports whether a control-exit child was ever incorporated,
// for callers that want to distinguish "definitely reached the end" from
// "exited early" without changing the joined type itself.
func (j *Joiner) Poisoned() bool { return j.poisoned }
