// Package coreir defines the elaborated core expression tree the
// constraint generator consumes. Lexing, parsing, and the surface-to-core
// elaboration that produces these nodes (including expansion of pattern
// matches into nested conditionals plus data-constructor tests) are
// external collaborators; this package only names the shapes the core
// walks.
package coreir

import (
	"fmt"
	"strings"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/types"
)

// NodeID is a stable identity assigned by the elaborator, used as the key
// into TrackedTypes. Two distinct nodes never share an ID even if they are
// structurally identical.
type NodeID uint64

// Expr is the base interface every core expression variant implements.
type Expr interface {
	ID() NodeID
	Loc() ident.Location
	String() string
	exprNode()
}

// node is embedded by every variant to provide ID/Loc for free.
type node struct {
	NodeID NodeID
	Pos    ident.Location
}

func (n node) ID() NodeID        { return n.NodeID }
func (n node) Loc() ident.Location { return n.Pos }

// Var is a variable reference, resolved against the current SchemeResolver.
type Var struct {
	node
	Name string
}

func (v *Var) exprNode() {}
func (v *Var) String() string { return v.Name }

// LitKind enumerates the fixed nominal literal kinds the generator maps
// directly to Int/Float/String/Char.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	CharLit
)

// Literal is a literal value of one of the fixed kinds.
type Literal struct {
	node
	Kind  LitKind
	Value string
}

func (l *Literal) exprNode() {}
func (l *Literal) String() string { return l.Value }

// Lambda introduces a single parameter binding; multi-argument surface
// lambdas are curried by the elaborator into nested Lambda nodes.
type Lambda struct {
	node
	Param     string
	Body      Expr
	ReturnAnn types.Type // optional explicit return-type annotation, nil if absent
}

func (l *Lambda) exprNode() {}
func (l *Lambda) String() string {
	return fmt.Sprintf("λ%s. %s", l.Param, l.Body)
}

// Application is function application f(x).
type Application struct {
	node
	Func Expr
	Arg  Expr
}

func (a *Application) exprNode() {}
func (a *Application) String() string {
	return fmt.Sprintf("%s(%s)", a.Func, a.Arg)
}

// Let is a non-recursive binding: infer e1 locally, generalize, extend the
// resolver for e2.
type Let struct {
	node
	Name  string
	Value Expr
	Body  Expr
}

func (l *Let) exprNode() {}
func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Name, l.Value, l.Body)
}

// Fix is the explicit fixpoint combinator used to type single self-recursive
// bindings without going through the SCC scheduler's multi-name path.
type Fix struct {
	node
	Func Expr
}

func (f *Fix) exprNode() {}
func (f *Fix) String() string { return fmt.Sprintf("fix(%s)", f.Func) }

// Conditional is if c then t else e.
type Conditional struct {
	node
	Cond Expr
	Then Expr
	Else Expr
}

func (c *Conditional) exprNode() {}
func (c *Conditional) String() string {
	return fmt.Sprintf("if %s then %s else %s", c.Cond, c.Then, c.Else)
}

// Block is a sequence of statements; the generator enforces that no
// statement may follow a Return.
type Block struct {
	node
	Statements []Expr
}

func (b *Block) exprNode() {}
func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Return yields bottom and constrains its operand's type against the
// enclosing function's declared (or inferred) return type.
type Return struct {
	node
	Value Expr
}

func (r *Return) exprNode() {}
func (r *Return) String() string { return fmt.Sprintf("return %s", r.Value) }

// Tuple is an ordered sequence of component expressions.
type Tuple struct {
	node
	Elems []Expr
}

func (t *Tuple) exprNode() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// As is an explicit type ascription; Unchecked marks a cast the generator
// must not constrain (an escape hatch the elaborator sets for unsafe casts).
type As struct {
	node
	Value     Expr
	Type      types.Type
	Unchecked bool
}

func (a *As) exprNode() {}
func (a *As) String() string { return fmt.Sprintf("(%s as %s)", a.Value, a.Type) }

// New* constructors stamp the node's identity and location; the elaborator
// is expected to hand out strictly increasing NodeIDs so TrackedTypes
// lookups are collision-free.

func NewVar(id NodeID, loc ident.Location, name string) *Var {
	return &Var{node: node{NodeID: id, Pos: loc}, Name: name}
}

func NewLiteral(id NodeID, loc ident.Location, kind LitKind, value string) *Literal {
	return &Literal{node: node{NodeID: id, Pos: loc}, Kind: kind, Value: value}
}

func NewLambda(id NodeID, loc ident.Location, param string, body Expr) *Lambda {
	return &Lambda{node: node{NodeID: id, Pos: loc}, Param: param, Body: body}
}

func NewApplication(id NodeID, loc ident.Location, fn, arg Expr) *Application {
	return &Application{node: node{NodeID: id, Pos: loc}, Func: fn, Arg: arg}
}

func NewLet(id NodeID, loc ident.Location, name string, value, body Expr) *Let {
	return &Let{node: node{NodeID: id, Pos: loc}, Name: name, Value: value, Body: body}
}

func NewFix(id NodeID, loc ident.Location, fn Expr) *Fix {
	return &Fix{node: node{NodeID: id, Pos: loc}, Func: fn}
}

func NewConditional(id NodeID, loc ident.Location, cond, then, els Expr) *Conditional {
	return &Conditional{node: node{NodeID: id, Pos: loc}, Cond: cond, Then: then, Else: els}
}

func NewBlock(id NodeID, loc ident.Location, stmts []Expr) *Block {
	return &Block{node: node{NodeID: id, Pos: loc}, Statements: stmts}
}

func NewReturn(id NodeID, loc ident.Location, value Expr) *Return {
	return &Return{node: node{NodeID: id, Pos: loc}, Value: value}
}

func NewTuple(id NodeID, loc ident.Location, elems []Expr) *Tuple {
	return &Tuple{node: node{NodeID: id, Pos: loc}, Elems: elems}
}

func NewAs(id NodeID, loc ident.Location, value Expr, ty types.Type, unchecked bool) *As {
	return &As{node: node{NodeID: id, Pos: loc}, Value: value, Type: ty, Unchecked: unchecked}
}

// Decl is a top-level (name, expr) declaration as produced by the parser
// and passed to the core by the driver.
type Decl struct {
	Name string
	Expr Expr
}
