// Package types implements the type representation of the core: a tagged
// sum of type shapes, fresh-variable generation, free-variable computation,
// and capture-avoiding substitution. Every Type is immutable once built and
// is shared by reference — construction never fails; only downstream
// unification reports failure.
package types

import (
	"sort"
	"strings"

	"github.com/corvidlang/corvid/internal/ident"
)

// ArrowName is the distinguished nominal id used to encode function types
// as the two-step application ((-> a) b), per the data model.
const ArrowName = "->"

// Type is the tagged sum. All variants implement it; type switches (not
// dynamic casts) are how callers inspect a Type.
type Type interface {
	// Repr is the deterministic canonical string used for equality,
	// hashing, and scheme normalization comparisons.
	Repr() string
	// Rebind applies a capture-avoiding substitution.
	Rebind(sub Subst) Type
	// RemapVars performs pure variable renaming (name -> name), used
	// during scheme normalization; unlike Rebind it never introduces a
	// non-variable type.
	RemapVars(remap map[string]string) Type
	// FTVs returns the set of free variable names.
	FTVs() map[string]bool
	// String renders the type with precedence-aware parenthesization.
	String() string
	typeNode()
}

// Variable is a type variable with a name and the set of class predicates
// (by class name only; see internal/scheme for the (ClassName, Type) pair
// form used once a predicate is attached to a concrete type) it must
// satisfy once bound.
type Variable struct {
	Name  string
	Preds map[string]bool
	Loc   ident.Location
}

func (v *Variable) typeNode() {}

func (v *Variable) Repr() string { return v.Name }

func (v *Variable) String() string { return ReprPreds(v.Preds) + v.Name }

func (v *Variable) Rebind(sub Subst) Type {
	if t, ok := sub[v.Name]; ok {
		return t
	}
	return v
}

func (v *Variable) RemapVars(remap map[string]string) Type {
	if n, ok := remap[v.Name]; ok {
		return &Variable{Name: n, Preds: v.Preds, Loc: v.Loc}
	}
	return v
}

func (v *Variable) FTVs() map[string]bool {
	return map[string]bool{v.Name: true}
}

// Id is a nominal type constant: Int, Bool, a user data type name, or the
// distinguished arrow constructor. Ids whose first rune is uppercase or
// which start with "::" are nominal names; by convention lowercase bare
// names are never constructed as Id — those are Variables instead.
type Id struct {
	Name string
}

func (i *Id) typeNode() {}

func (i *Id) Repr() string { return i.Name }

func (i *Id) String() string { return i.Name }

func (i *Id) Rebind(Subst) Type { return i }

func (i *Id) RemapVars(map[string]string) Type { return i }

func (i *Id) FTVs() map[string]bool { return map[string]bool{} }

// IsNominal reports whether name denotes a nominal type name rather than a
// type variable, per the data-model invariant.
func IsNominal(name string) bool {
	if strings.HasPrefix(name, "::") {
		return true
	}
	if name == "" {
		return false
	}
	r := name[0]
	return r >= 'A' && r <= 'Z'
}

// Application is the binary application `f a`. N-ary applications are
// left-associative chains built by repeated Application nodes; Arrow is
// the two-step application of the Id("->") constructor.
type Application struct {
	Func Type
	Arg  Type
}

func (a *Application) typeNode() {}

func (a *Application) Repr() string {
	if param, result, ok := IsArrow(a); ok {
		return "(" + param.Repr() + " -> " + result.Repr() + ")"
	}
	return "(" + a.Func.Repr() + " " + a.Arg.Repr() + ")"
}

func (a *Application) Rebind(sub Subst) Type {
	return &Application{Func: a.Func.Rebind(sub), Arg: a.Arg.Rebind(sub)}
}

func (a *Application) RemapVars(remap map[string]string) Type {
	return &Application{Func: a.Func.RemapVars(remap), Arg: a.Arg.RemapVars(remap)}
}

func (a *Application) FTVs() map[string]bool {
	out := a.Func.FTVs()
	for k := range a.Arg.FTVs() {
		out[k] = true
	}
	return out
}

func (a *Application) String() string {
	return emitApplication(a, 0)
}

// Tuple is an ordered sequence of component types; the empty tuple is unit.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) typeNode() {}

func (t *Tuple) Repr() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.Repr()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) Rebind(sub Subst) Type {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Rebind(sub)
	}
	return &Tuple{Elems: elems}
}

func (t *Tuple) RemapVars(remap map[string]string) Type {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.RemapVars(remap)
	}
	return &Tuple{Elems: elems}
}

func (t *Tuple) FTVs() map[string]bool {
	out := map[string]bool{}
	for _, e := range t.Elems {
		for k := range e.FTVs() {
			out[k] = true
		}
	}
	return out
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TypeLambda is type-level abstraction Λx. body, used for parameterized
// data type definitions. Applying it (see Apply) substitutes the bound
// name in body; Rebind removes the bound name from the incoming
// substitution before recursing so the binder is never captured.
type TypeLambda struct {
	Binding string
	Body    Type
}

func (l *TypeLambda) typeNode() {}

func (l *TypeLambda) Repr() string {
	return "(Λ" + l.Binding + ". " + l.Body.Repr() + ")"
}

func (l *TypeLambda) Rebind(sub Subst) Type {
	if _, shadowed := sub[l.Binding]; !shadowed {
		return &TypeLambda{Binding: l.Binding, Body: l.Body.Rebind(sub)}
	}
	inner := make(Subst, len(sub)-1)
	for k, v := range sub {
		if k != l.Binding {
			inner[k] = v
		}
	}
	return &TypeLambda{Binding: l.Binding, Body: l.Body.Rebind(inner)}
}

func (l *TypeLambda) RemapVars(remap map[string]string) Type {
	inner := remap
	if _, shadowed := remap[l.Binding]; shadowed {
		inner = make(map[string]string, len(remap)-1)
		for k, v := range remap {
			if k != l.Binding {
				inner[k] = v
			}
		}
	}
	return &TypeLambda{Binding: l.Binding, Body: l.Body.RemapVars(inner)}
}

func (l *TypeLambda) FTVs() map[string]bool {
	out := l.Body.FTVs()
	delete(out, l.Binding)
	return out
}

func (l *TypeLambda) String() string {
	return "Λ" + l.Binding + ". " + l.Body.String()
}

// Apply performs a single beta-reduction step: for a TypeLambda, substitute
// the bound name with arg; for every other kind, yield a fresh Application
// node (applying a non-lambda type just builds the application spine).
func Apply(t Type, arg Type) Type {
	if lam, ok := t.(*TypeLambda); ok {
		return lam.Body.Rebind(Subst{lam.Binding: arg})
	}
	return &Application{Func: t, Arg: arg}
}

// Literal is an integer or string literal type, used where the type
// language indexes by value (e.g. fixed-size vector lengths).
type Literal struct {
	Token string // textual form, e.g. "3" or `"tag"`
}

func (lit *Literal) typeNode() {}

func (lit *Literal) Repr() string { return lit.Token }

func (lit *Literal) String() string { return lit.Token }

func (lit *Literal) Rebind(Subst) Type { return lit }

func (lit *Literal) RemapVars(map[string]string) Type { return lit }

func (lit *Literal) FTVs() map[string]bool { return map[string]bool{} }

// Subst (Bindings) maps variable name to Type. Composition is defined by
// Compose below and is not commutative.
type Subst map[string]Type

// Compose returns a∘b: a is applied to the range of b, then entries of a
// whose key is not already in b are added. This is the exact direction the
// solver's running substitution accumulates in (sigma composed onto the
// accumulated substitution, not the reverse).
func Compose(a, b Subst) Subst {
	out := make(Subst, len(a)+len(b))
	for k, v := range b {
		out[k] = v.Rebind(a)
	}
	for k, v := range a {
		if _, inB := b[k]; !inB {
			out[k] = v
		}
	}
	return out
}

// Smart builders

func Var(name string, preds map[string]bool, loc ident.Location) *Variable {
	if preds == nil {
		preds = map[string]bool{}
	}
	return &Variable{Name: name, Preds: preds, Loc: loc}
}

func IdOf(name string) *Id { return &Id{Name: name} }

func Op(f, x Type) *Application { return &Application{Func: f, Arg: x} }

// Arrow builds the function type a -> b as the two-step application
// ((-> a) b).
func Arrow(a, b Type) *Application {
	return Op(Op(IdOf(ArrowName), a), b)
}

// Arrows folds a right-associative chain a1 -> a2 -> ... -> r from a
// parameter list plus final result type. Arrows([]Type{}, r) == r.
func Arrows(params []Type, result Type) Type {
	if len(params) == 0 {
		return result
	}
	return Arrow(params[0], Arrows(params[1:], result))
}

func TupleOf(elems ...Type) *Tuple { return &Tuple{Elems: elems} }

// Unit is the empty tuple.
func Unit() *Tuple { return &Tuple{Elems: nil} }

// Builtin nominal types seeded into every session's resolver.
var (
	Int    = IdOf("Int")
	Float  = IdOf("Float")
	Bool   = IdOf("Bool")
	String = IdOf("String")
	Char   = IdOf("Char")
)

// IsArrow reports whether t is an Arrow application and, if so, returns its
// parameter and result types.
func IsArrow(t Type) (param, result Type, ok bool) {
	app, isApp := t.(*Application)
	if !isApp {
		return nil, nil, false
	}
	inner, isApp2 := app.Func.(*Application)
	if !isApp2 {
		return nil, nil, false
	}
	id, isID := inner.Func.(*Id)
	if !isID || id.Name != ArrowName {
		return nil, nil, false
	}
	return inner.Arg, app.Arg, true
}

// UnfoldOpsLassoc collects the spine of a left-associative application
// chain: f a b c unfolds to [f, a, b, c].
func UnfoldOpsLassoc(t Type) []Type {
	app, ok := t.(*Application)
	if !ok {
		return []Type{t}
	}
	return append(UnfoldOpsLassoc(app.Func), app.Arg)
}

// UnfoldOpsRassoc collects the spine of a right-associative operator chain,
// used to flatten curried arrow types: a -> b -> c unfolds to [a, b, c].
func UnfoldOpsRassoc(t Type) []Type {
	if param, result, ok := IsArrow(t); ok {
		return append([]Type{param}, UnfoldOpsRassoc(result)...)
	}
	return []Type{t}
}

// Fresh-variable generation

// Counter is a monotonic gensym counter. Each Counter value counts on its
// own; Session (internal/session) holds one as a per-session field, and it
// is not safe for concurrent use.
type Counter struct {
	n int
}

// Next returns the next alphabetized name and advances the counter.
func (c *Counter) Next() string {
	n := c.n
	c.n++
	return Alphabetize(n)
}

// Fresh returns a brand-new, predicate-free type variable at loc.
func (c *Counter) Fresh(loc ident.Location) *Variable {
	return Var(c.Next(), nil, loc)
}

// Alphabetize maps 0, 1, 2, ... to a, b, ..., z, aa, ab, ..., matching the
// original compiler's gensym naming scheme exactly: alphabetize(0) == "a",
// alphabetize(25) == "z", alphabetize(26) == "aa", alphabetize(27) == "ab".
func Alphabetize(i int) string {
	var letters []byte
	for {
		letters = append([]byte{byte('a' + (i % 26))}, letters...)
		if i < 26 {
			break
		}
		i = i/26 - 1
	}
	return string(letters)
}

// emitApplication renders an application with precedence-aware
// parenthesization: arrows are right-associative at precedence 5,
// ordinary applications are left-associative at precedence 7.
func emitApplication(t Type, parentPrec int) string {
	if param, result, ok := IsArrow(t); ok {
		const prec = 5
		s := paren(param, prec+1) + " -> " + paren(result, prec)
		if parentPrec > prec {
			return "(" + s + ")"
		}
		return s
	}
	app := t.(*Application)
	const prec = 7
	s := paren(app.Func, prec) + " " + paren(app.Arg, prec+1)
	if parentPrec > prec {
		return "(" + s + ")"
	}
	return s
}

func paren(t Type, minPrec int) string {
	switch t.(type) {
	case *Application:
		return emitApplication(t, minPrec)
	default:
		return t.String()
	}
}

// SortedNames returns the keys of a name set in sorted order, used
// whenever a deterministic iteration order is needed over an FTV set.
func SortedNames(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ReprPreds renders a variable's predicate set deterministically as a
// leading qualifier, e.g. "(Num, Ord) => ", used by Variable.String to
// display a predicate-carrying variable before it has been bound.
func ReprPreds(preds map[string]bool) string {
	if len(preds) == 0 {
		return ""
	}
	names := SortedNames(preds)
	return "(" + strings.Join(names, ", ") + ") => "
}
