// Package runtimesig models the runtime signature analyzer collaborator:
// given a library-provided callable value, it returns a structured
// description of its positional/named parameters, each optionally
// carrying a pre-declared type hint and documentation (spec §1, §6).
// The analyzer itself lives outside this module; we only define the
// contract and a small static-table implementation for tests/demo use.
package runtimesig

import "github.com/uros-5/tinymist/internal/hostval"

// CastInfo describes how a declared parameter or return value is cast
// between the host's dynamic value and a refined static shape. It
// mirrors the distinction `Type.from_return_site`/`from_param_site` make
// between element constructors, partial applications, value casts, and
// type casts (spec §4.1).
type CastInfo struct {
	// Element is set when the site is a library element constructor.
	Element string
	// Partial, if set, is the wrapped callable a partial application
	// (`.with`) defers to; from_return_site recurses into it.
	Partial hostval.Callable
	// ValueDoc is a docstring attached to a concrete captured value.
	ValueDoc string
	// TypeCast, if true, means the site casts to a named static type
	// rather than a concrete value.
	TypeCast bool
	TypeName string
	// Union lists the flattened members of a union cast, if any.
	Union []CastInfo
}

// Param describes one declared parameter.
type Param struct {
	Name     string
	Named    bool
	Variadic bool
	Doc      string
	Cast     CastInfo
	// InferType, when non-nil, carries a pre-declared static type hint.
	// ty.FromParamSite does not read it: a parameter's type comes from the
	// catalog's parameter map, else from Cast.
	InferType any
}

// Signature is one concrete arity of a callable (the "primary" one for
// the callables this engine deals with; the document language's runtime
// does not support true overloading at this layer).
type Signature struct {
	Pos   []Param
	Named []Param
	Rest  *Param
	Ret   CastInfo
}

// Analysis is the structured description `Analyze` returns.
type Analysis struct {
	sig Signature
}

// Primary returns the callable's single usable signature.
func (a Analysis) Primary() Signature { return a.sig }

// Analyzer is the contract consumed by internal/check's Apply step 3
// ("Value/ValueDoc holding a callable").
type Analyzer interface {
	Analyze(callable hostval.Callable) (Analysis, bool)
}

// StaticTable is a tiny Analyzer backed by a name->Signature map, enough
// to drive tests and the demo CLI without a real host runtime.
type StaticTable struct {
	byName map[string]Signature
}

// NewStaticTable builds a StaticTable from the given entries.
func NewStaticTable(entries map[string]Signature) *StaticTable {
	t := &StaticTable{byName: make(map[string]Signature, len(entries))}
	for k, v := range entries {
		t.byName[k] = v
	}
	return t
}

func (t *StaticTable) Analyze(callable hostval.Callable) (Analysis, bool) {
	sig, ok := t.byName[callable.Name()]
	if !ok {
		return Analysis{}, false
	}
	return Analysis{sig: sig}, true
}
