// Package syntax models the immutable, typed syntax tree that the type
// checker walks. Parsing and AST construction are out of scope for this
// module (spec §1); syntax is the external collaborator the rest of the
// module consumes: a read-only tree of spans and typed node kinds.
package syntax

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Span is a half-open range in a source file, used as the key for
// TypeCheckInfo.mapping and for backfilling declared types onto call
// arguments.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string { return fmt.Sprintf("%s-%s", s.Start, s.End) }

// Detached is the span used for casts and other types that have no
// concrete source position (e.g. a Value produced from a type cast).
var Detached = Span{}

// IsDetached reports whether a span came from Detached.
func (s Span) IsDetached() bool { return s == Detached }

// Kind is the closed set of syntax node kinds the walker understands.
type Kind int

const (
	// Trivial markup -> Content
	KindText Kind = iota
	KindLinebreak
	KindEscape
	KindShorthand
	KindSmartQuote
	KindRaw
	KindLink
	KindLabel
	KindRef
	KindMathAlign
	KindPrimes

	// Whitespace -> None
	KindSpace
	KindParbreak

	// Control exits -> FlowNone
	KindBreak
	KindContinue
	KindReturn

	// Container nodes (joined)
	KindStrong
	KindEmph
	KindHeading
	KindListItem
	KindEnumItem
	KindTermItem
	KindEquation
	KindMathDelimited
	KindMathAttach
	KindMathFrac
	KindMathRoot
	KindParenthesized
	KindMarkupBlock
	KindCodeBlock
	KindContentBlock

	// Punctuation/keywords -> Clause
	KindClause

	// Literals
	KindBool
	KindInt
	KindFloat
	KindNumeric
	KindString

	// Identifiers
	KindIdent
	KindMathIdent

	// Structural
	KindArray
	KindDict
	KindDictNamed
	KindDictKeyed
	KindDictSpread

	// Operators / projection
	KindUnary
	KindBinary
	KindFieldAccess

	// Calls and closures
	KindFuncCall
	KindArgs
	KindArgNamed
	KindArgSpread
	KindClosure

	// Bindings and rules
	KindLetBinding
	KindSetRule
	KindShowRule
	KindContextual
	KindConditional

	// Loops and modules
	KindWhileLoop
	KindForLoop
	KindModuleImport
	KindModuleInclude
	KindDestructuring
	KindDestructAssignment

	// Mode-bearing roots
	KindCode
	KindMath

	// Pattern kinds, consumed by the pattern checker (spec §4.2.2).
	KindPatternIdent
	KindPatternPlaceholder
	KindPatternNormal
	KindPatternParenthesized
	KindPatternDestructuring
)

// UnaryOp enumerates the unary operators the lattice distinguishes.
type UnaryOp int

const (
	UnaryPos UnaryOp = iota
	UnaryNeg
	UnaryNot
	UnaryContext
)

// BinaryOp is the binary operator tag carried by a Binary node. Most
// values are opaque to the engine beyond identity and mini-eval, but the
// checker recognizes the comparison/logical/assignment spellings below
// to post side-effecting constraints (spec §4.2.1, §4.3.2).
type BinaryOp string

const (
	BinAdd       BinaryOp = "+"
	BinSub       BinaryOp = "-"
	BinMul       BinaryOp = "*"
	BinDiv       BinaryOp = "/"
	BinEq        BinaryOp = "=="
	BinNeq       BinaryOp = "!="
	BinLeq       BinaryOp = "<="
	BinGeq       BinaryOp = ">="
	BinLt        BinaryOp = "<"
	BinGt        BinaryOp = ">"
	BinAnd       BinaryOp = "and"
	BinOr        BinaryOp = "or"
	BinIn        BinaryOp = "in"
	BinNotIn     BinaryOp = "not in"
	BinAssign    BinaryOp = "="
	BinAddAssign BinaryOp = "+="
	BinSubAssign BinaryOp = "-="
	BinMulAssign BinaryOp = "*="
	BinDivAssign BinaryOp = "/="
)

// Param describes one closure parameter.
type Param struct {
	Name    string
	Named   bool
	Rest    bool
	Default *Node // optional default-value expression, for named params
	Span    Span
	// Node is the parameter's own binding-site node, the identity the
	// def/use resolver keys its definition on (mirrors LetBinding.Pattern
	// for non-closure bindings).
	Node *Node
}

// Node is a single entry in the syntax tree. It is a tagged struct rather
// than one type per kind: the syntax tree is a provided, read-only
// collaborator (spec §1 Out of scope), so it does not need the same
// closed-enum discipline the Type lattice requires internally.
type Node struct {
	Kind Kind
	Span Span

	// Generic children, e.g. container members, array/tuple elements.
	Children []*Node

	// Ident / MathIdent / FieldAccess field name / dict field name.
	Text string

	// Literal payload for Bool/Int/Float/Numeric/String nodes. Populated
	// by the (external) parser. The walker prefers the mini-evaluator's
	// result and falls back to this payload when mini-eval declines; the
	// scalar-domain check on call arguments reads string payloads directly.
	Literal any

	// Unary/Binary operator tags.
	UnOp  UnaryOp
	BinOp BinaryOp

	// Unary operand.
	Operand *Node

	// Binary/Conditional/LetBinding/ShowRule substructure.
	Left  *Node
	Right *Node
	Cond  *Node
	Then  *Node
	Else  *Node

	// FuncCall / SetRule.
	Callee *Node
	Args   *Node // Kind == KindArgs

	// Closure.
	Params []*Param
	Body   *Node

	// LetBinding.
	Pattern            *Node
	Init               *Node
	ClosureShorthand   bool
	ClosureName        string
	ClosureParams      []*Param
	ClosureBody        *Node

	// ShowRule.
	Selector  *Node
	Transform *Node

	// Dict field entries (KindDictNamed/KindDictKeyed/KindDictSpread).
	Key   *Node
	Value *Node

	// Pattern kinds reuse Kind + Text (identifier pattern), Children
	// (destructuring sub-patterns).
}

// NonClause returns children with KindClause entries filtered out, per
// the joiner and array/tuple construction rules (spec §4.2.1, §4.2.3).
func NonClause(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == KindClause {
			continue
		}
		out = append(out, n)
	}
	return out
}
