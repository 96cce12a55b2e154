package check

import (
	"github.com/uros-5/tinymist/internal/catalog"
	"github.com/uros-5/tinymist/internal/defuse"
	"github.com/uros-5/tinymist/internal/diag"
	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/runtimesig"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

// Mode is the interpret mode controlling how a bare identifier resolves
// (spec §4.2, GLOSSARY "Interpret mode").
type Mode int

const (
	Markup Mode = iota
	Code
	Math
)

// Checker is the Inference Walker. One Checker performs exactly one
// traversal of one source file (spec §5: "single-threaded cooperative
// within one source file").
type Checker struct {
	info     *TypeCheckInfo
	resolver defuse.Resolver
	eval     hostval.Evaluator
	global   hostval.GlobalResolver
	sigs     runtimesig.Analyzer
	catalog  *catalog.Catalog
	sink     diag.Sink

	file string
	mode Mode
}

// Option configures a Checker.
type Option func(*Checker)

// WithCatalog overrides the default Built-in Catalog.
func WithCatalog(c *catalog.Catalog) Option { return func(ch *Checker) { ch.catalog = c } }

// WithDiagSink attaches a diag.Sink to receive advisory records.
func WithDiagSink(s diag.Sink) Option { return func(ch *Checker) { ch.sink = s } }

// New builds a Checker for one file. resolver, eval, global, and sigs are
// the external collaborators described in spec §6.
func New(file string, resolver defuse.Resolver, eval hostval.Evaluator, global hostval.GlobalResolver, sigs runtimesig.Analyzer, opts ...Option) *Checker {
	c := &Checker{
		info:     NewTypeCheckInfo(),
		resolver: resolver,
		eval:     eval,
		global:   global,
		sigs:     sigs,
		catalog:  catalog.Default(),
		file:     file,
		mode:     Markup,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TypeCheck is the module's entry point (spec §6): given a parsed root
// node, it runs the Inference Walker and returns the resulting
// TypeCheckInfo, or ok=false only if def/use info cannot be obtained for
// the file (spec §7).
func TypeCheck(file string, root *syntax.Node, resolver defuse.Resolver, eval hostval.Evaluator, global hostval.GlobalResolver, sigs runtimesig.Analyzer, opts ...Option) (*TypeCheckInfo, bool) {
	c := New(file, resolver, eval, global, sigs, opts...)
	if resolver == nil {
		if c.sink != nil {
			c.sink.Emit(diag.Record{
				Code:    diag.CHK001,
				Message: "type_check: no def/use info for " + file,
			})
		}
		return nil, false
	}
	c.checkRoot(root)
	return c.info, true
}

// Info returns the TypeCheckInfo being built.
func (c *Checker) Info() *TypeCheckInfo { return c.info }

func (c *Checker) varByID(id defuse.DefID) (*FlowVar, bool) {
	c.info.varsMu.Lock()
	v, ok := c.info.vars[id]
	c.info.varsMu.Unlock()
	return v, ok
}

func (c *Checker) varFor(id defuse.DefID, name string) *FlowVar {
	return c.info.VarFor(id, name)
}

func (c *Checker) logNoOp(where string, lhs, rhs ty.Type) {
	if c.sink == nil {
		return
	}
	c.sink.Emit(diag.Record{
		Code:    diag.CST001,
		Message: where + ": no-op for " + lhs.String() + " ⪯ " + rhs.String(),
	})
}

// pushMode sets mode for the duration of fn, then restores the previous
// mode. The walker never fails, so there is no unwinding-on-error case
// (spec §4.2.4).
func (c *Checker) pushMode(m Mode, fn func()) {
	prev := c.mode
	c.mode = m
	fn()
	c.mode = prev
}

func (c *Checker) checkRoot(root *syntax.Node) {
	if root == nil {
		return
	}
	c.checkExpr(root)
}
