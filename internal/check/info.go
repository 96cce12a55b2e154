// Package check implements the Inference Walker, the Simplifier, and the
// FlowVar/TypeCheckInfo data model (spec §3, §4.2-§4.4).
package check

import (
	"sync"

	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

// FlowVar is one inference variable: a stable id, a debug name, and a
// shared-mutable store of lower/upper bounds (spec §3.2). The store is
// multiple-reader/single-writer; writes happen only from the owning
// file's Walker and from Constrain during the same walk (spec §5).
type FlowVar struct {
	id   defuse.DefID
	name string

	mu  sync.RWMutex
	lbs []ty.Type
	ubs []ty.Type
}

func newFlowVar(id defuse.DefID, name string) *FlowVar {
	return &FlowVar{id: id, name: name}
}

// ID returns the variable's stable definition id.
func (v *FlowVar) ID() defuse.DefID { return v.id }

// Name returns the variable's debug name.
func (v *FlowVar) Name() string { return v.name }

// Ref returns the Var type term referencing this variable.
func (v *FlowVar) Ref() ty.Type { return ty.Var{DefID: v.id, Name: v.name} }

// EverBe records that the variable has, at some point, taken on exp as a
// concrete value: it appends to the lower bounds. Used by the pattern
// checker and closure parameters at binding sites (spec §4.2.2);
// PossibleEverBe reaches the lower bounds through Constrain and
// ConstrainLower instead.
func (v *FlowVar) EverBe(exp ty.Type) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lbs = append(v.lbs, exp)
}

// AsStrong is kept distinct from EverBe to mirror the original
// implementation's FlowVarKind::Weak-only variable store, where a
// historical "Strong" binding kind was removed but the method survived
// with identical behavior (SPEC_FULL.md supplemented feature #1).
func (v *FlowVar) AsStrong(exp ty.Type) { v.EverBe(exp) }

// ConstrainUpper appends rhs to the variable's upper bounds.
func (v *FlowVar) ConstrainUpper(rhs ty.Type) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ubs = append(v.ubs, rhs)
}

// ConstrainLower appends lhs to the variable's lower bounds.
func (v *FlowVar) ConstrainLower(lhs ty.Type) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lbs = append(v.lbs, lhs)
}

// Snapshot returns copies of the current bound lists.
func (v *FlowVar) Snapshot() (lbs, ubs []ty.Type) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	lbs = append([]ty.Type{}, v.lbs...)
	ubs = append([]ty.Type{}, v.ubs...)
	return lbs, ubs
}

// TypeCheckInfo is the per-file result of one Inference Walker traversal
// (spec §3.3). It is filled during the walk, then becomes effectively
// read-only except for the simplifier's internal cache (spec §3.4).
type TypeCheckInfo struct {
	varsMu sync.Mutex
	vars   map[defuse.DefID]*FlowVar

	mapMu   sync.Mutex
	mapping map[syntax.Span]ty.Type

	simplifyMu sync.Mutex
	cache      *simplifyCache
}

// NewTypeCheckInfo creates an empty TypeCheckInfo, ready for one walk.
func NewTypeCheckInfo() *TypeCheckInfo {
	return &TypeCheckInfo{
		vars:    make(map[defuse.DefID]*FlowVar),
		mapping: make(map[syntax.Span]ty.Type),
	}
}

// VarFor returns the FlowVar for id, creating it lazily on first
// encounter (spec §3.2: "Variables are created lazily on first
// encounter").
func (info *TypeCheckInfo) VarFor(id defuse.DefID, name string) *FlowVar {
	info.varsMu.Lock()
	defer info.varsMu.Unlock()
	if v, ok := info.vars[id]; ok {
		return v
	}
	v := newFlowVar(id, name)
	info.vars[id] = v
	return v
}

// Vars returns a snapshot of the id->FlowVar map.
func (info *TypeCheckInfo) Vars() map[defuse.DefID]*FlowVar {
	info.varsMu.Lock()
	defer info.varsMu.Unlock()
	out := make(map[defuse.DefID]*FlowVar, len(info.vars))
	for k, v := range info.vars {
		out[k] = v
	}
	return out
}

// Bounds implements ty.VarBounds.
func (info *TypeCheckInfo) Bounds(id defuse.DefID) (lbs, ubs []ty.Type, ok bool) {
	info.varsMu.Lock()
	v, found := info.vars[id]
	info.varsMu.Unlock()
	if !found {
		return nil, nil, false
	}
	lbs, ubs = v.Snapshot()
	return lbs, ubs, true
}

// At returns the Type recorded at span, if any.
func (info *TypeCheckInfo) At(span syntax.Span) (ty.Type, bool) {
	info.mapMu.Lock()
	defer info.mapMu.Unlock()
	t, ok := info.mapping[span]
	return t, ok
}

// Mapping returns a snapshot of the span->Type table.
func (info *TypeCheckInfo) Mapping() map[syntax.Span]ty.Type {
	info.mapMu.Lock()
	defer info.mapMu.Unlock()
	out := make(map[syntax.Span]ty.Type, len(info.mapping))
	for k, v := range info.mapping {
		out[k] = v
	}
	return out
}

// setCallResult always (re-)sets the mapping at span: call nodes insert
// their result unconditionally (spec §3.3, "inserted at most once at
// root-of-call sites" — each call node is visited exactly once per walk,
// so "at most once" and "always" coincide here).
func (info *TypeCheckInfo) setCallResult(span syntax.Span, t ty.Type) {
	if span.IsDetached() {
		return
	}
	info.mapMu.Lock()
	defer info.mapMu.Unlock()
	info.mapping[span] = t
}

// backfillIfAbsent implements the insert-if-absent semantics inner
// sites use, so an early (possibly weaker) observation at a span is not
// clobbered by a later one (spec §3.3).
func (info *TypeCheckInfo) backfillIfAbsent(span syntax.Span, t ty.Type) {
	if span.IsDetached() {
		return
	}
	info.mapMu.Lock()
	defer info.mapMu.Unlock()
	if _, ok := info.mapping[span]; ok {
		return
	}
	info.mapping[span] = t
}
