// Package defuse models the definition/use resolver collaborator: given
// an identifier occurrence, it answers which stable definition the
// occurrence binds to. The resolver itself is out of scope for this
// module (spec §1); this package only defines the contract the Inference
// Walker consumes, plus a small in-memory implementation useful for
// tests and the demo CLI.
package defuse

import "github.com/uros-5/tinymist/internal/syntax"

// DefID stably identifies one binding site across a source file.
type DefID uint64

// Def describes the definition an identifier occurrence resolves to.
type Def struct {
	ID   DefID
	Name string
	Node *syntax.Node // the binding site, e.g. the LetBinding pattern or Param
}

// Resolver is the contract the Walker relies on (spec §6).
type Resolver interface {
	// GetRef resolves an identifier occurrence to the DefID it reads from.
	GetRef(identRef *syntax.Node) (DefID, bool)
	// GetDef resolves an identifier occurrence to the Def it binds at its
	// own binding site (used when the occurrence *is* the binding site).
	GetDef(file string, identRef *syntax.Node) (Def, bool)
}

// Table is a simple in-memory Resolver keyed by node identity, suitable
// for tests and for the standalone CLI which builds its own tiny trees.
type Table struct {
	refs map[*syntax.Node]DefID
	defs map[*syntax.Node]Def
	next DefID
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		refs: make(map[*syntax.Node]DefID),
		defs: make(map[*syntax.Node]Def),
	}
}

// Bind registers node as a fresh binding site for name and returns its DefID.
func (t *Table) Bind(node *syntax.Node, name string) DefID {
	t.next++
	id := t.next
	t.defs[node] = Def{ID: id, Name: name, Node: node}
	t.refs[node] = id
	return id
}

// Use registers occurrence as a read of the binding established at def.
func (t *Table) Use(occurrence *syntax.Node, def *syntax.Node) {
	if id, ok := t.refs[def]; ok {
		t.refs[occurrence] = id
	}
}

func (t *Table) GetRef(identRef *syntax.Node) (DefID, bool) {
	id, ok := t.refs[identRef]
	return id, ok
}

func (t *Table) GetDef(_ string, identRef *syntax.Node) (Def, bool) {
	d, ok := t.defs[identRef]
	return d, ok
}
