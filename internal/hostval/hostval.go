// Package hostval models the host runtime values the checker treats as
// opaque, and the three synchronous hooks the Walker uses to reach into
// the host: mini-evaluation of constant expressions, const-evaluation,
// and global-scope resolution of unbound identifiers (spec §6).
package hostval

import "github.com/uros-5/tinymist/internal/syntax"

// Value is an opaque library value captured at a span (e.g. a literal,
// an element constructor, a callable). The checker reads Func to reach
// the runtime-signature analyzer and, for dict keys, a string Raw;
// otherwise it treats the value as opaque. It is produced and owned by
// the host runtime.
type Value struct {
	// Kind names the dynamic shape for String()/debugging purposes only.
	Kind string
	// Raw is the host-side payload (e.g. a parsed color, a length).
	Raw any
	// Func is set when the value is callable; nil otherwise.
	Func Callable
}

func (v Value) String() string {
	if v.Kind == "" {
		return "<value>"
	}
	return v.Kind
}

// IsCallable reports whether the value can be the callee of a FuncCall.
func (v Value) IsCallable() bool { return v.Func != nil }

// Callable is the minimal shape the checker needs from a host function
// or element constructor in order to hand it to the runtime-signature
// analyzer (internal/runtimesig).
type Callable interface {
	Name() string
}

// ElementCallable is implemented by callables backed by a library
// element constructor; the Built-in Catalog's parameter map is keyed by
// ElementID (spec §4.1, §4.5).
type ElementCallable interface {
	Callable
	ElementID() string
}

// Evaluator is implemented by the host and supplies the two evaluation
// hooks the Walker calls synchronously while traversing an expression.
// Implementations must be referentially transparent per span: calling
// MiniEval or ConstEval twice on the same node must return equal results.
type Evaluator interface {
	// MiniEval evaluates expr down to a concrete Value, or reports ok=false
	// if expr is not a compile-time-reducible expression.
	MiniEval(expr *syntax.Node) (v Value, ok bool)
	// ConstEval is MiniEval restricted to expressions the host considers
	// truly constant (stricter than MiniEval; used where a partial
	// evaluation would be misleading, e.g. dict keys).
	ConstEval(expr *syntax.Node) (v Value, ok bool)
}

// GlobalResolver looks up identifiers that are not locally bound, using
// the global scope (Code mode) or the math scope (Math mode) of the host
// library (spec §4.2, "Identifier").
type GlobalResolver interface {
	ResolveGlobal(node *syntax.Node, inMath bool) (v Value, ok bool)
}
