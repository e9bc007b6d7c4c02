package solve

import (
	"fmt"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/types"
)

// Result is the outcome of a single unification: the substitution needed
// to make the two types equal, plus any instance requirements introduced
// by binding a predicate-carrying variable to a concrete type.
type Result struct {
	Subst        types.Subst
	Requirements []scheme.Predicate
}

func success(sub types.Subst, reqs ...scheme.Predicate) Result {
	if sub == nil {
		sub = types.Subst{}
	}
	return Result{Subst: sub, Requirements: reqs}
}

// Unify implements Robinson unification per the component design: two
// equal types succeed trivially; a variable on either side binds (with an
// occurs check and predicate handling); applications and tuples recurse
// structurally; ids match by name; anything else is a type mismatch.
// Every error is located at ctx.Loc, the constraint's own location; the
// locations carried by the two types are not consulted.
func Unify(a, b types.Type, ctx Context, maxDepth int) (Result, error) {
	return unify(a, b, ctx, maxDepth, 0)
}

func unify(a, b types.Type, ctx Context, maxDepth, depth int) (Result, error) {
	if depth > maxDepth {
		return Result{}, &MaximumRecursionError{Loc: ctx.Loc}
	}
	if a.Repr() == b.Repr() {
		return success(nil), nil
	}

	if va, ok := a.(*types.Variable); ok {
		return bindVariable(va, b, ctx, maxDepth, depth)
	}
	if vb, ok := b.(*types.Variable); ok {
		return bindVariable(vb, a, ctx, maxDepth, depth)
	}

	switch na := a.(type) {
	case *types.Application:
		nb, ok := b.(*types.Application)
		if !ok {
			return Result{}, mismatch(a, b, ctx)
		}
		return unifyMany([]types.Type{na.Func, na.Arg}, []types.Type{nb.Func, nb.Arg}, ctx, maxDepth, depth+1)
	case *types.Tuple:
		nb, ok := b.(*types.Tuple)
		if !ok {
			return Result{}, mismatch(a, b, ctx)
		}
		if len(na.Elems) != len(nb.Elems) {
			return Result{}, &ArityMismatchError{Loc: ctx.Loc, Expected: len(na.Elems), Actual: len(nb.Elems)}
		}
		return unifyMany(na.Elems, nb.Elems, ctx, maxDepth, depth+1)
	case *types.Id:
		nb, ok := b.(*types.Id)
		if !ok || nb.Name != na.Name {
			return Result{}, mismatch(a, b, ctx)
		}
		return success(nil), nil
	case *types.Literal:
		nb, ok := b.(*types.Literal)
		if !ok || nb.Token != na.Token {
			return Result{}, mismatch(a, b, ctx)
		}
		return success(nil), nil
	default:
		return Result{}, mismatch(a, b, ctx)
	}
}

// bindVariable implements steps 2-3 of the component design: occurs
// check, variable-variable union of predicates, or a concrete binding
// that discharges v's predicates as instance requirements on b.
func bindVariable(v *types.Variable, b types.Type, ctx Context, maxDepth, depth int) (Result, error) {
	if b.FTVs()[v.Name] {
		return Result{}, &InfiniteTypeError{Loc: ctx.Loc, Var: v.Name, Type: b.Repr()}
	}
	if vb, ok := b.(*types.Variable); ok {
		union := make(map[string]bool, len(v.Preds)+len(vb.Preds))
		for k := range v.Preds {
			union[k] = true
		}
		for k := range vb.Preds {
			union[k] = true
		}
		fresh := types.Var(v.Name+"'", union, ctx.Loc)
		sub := types.Subst{v.Name: fresh, vb.Name: fresh}
		return success(sub), nil
	}
	reqs := make([]scheme.Predicate, 0, len(v.Preds))
	for class := range v.Preds {
		reqs = append(reqs, scheme.Predicate{Class: class, Type: b})
	}
	return success(types.Subst{v.Name: b}, reqs...), nil
}

// unifyMany unifies as with bs pairwise, threading each successful
// substitution into the remaining pairs before unifying them
// (rebindTail), and composing the substitutions and requirement lists in
// left-to-right order.
func unifyMany(as, bs []types.Type, ctx Context, maxDepth, depth int) (Result, error) {
	if len(as) != len(bs) {
		return Result{}, &ArityMismatchError{Loc: ctx.Loc, Expected: len(as), Actual: len(bs)}
	}
	acc := types.Subst{}
	var reqs []scheme.Predicate
	for i := range as {
		a := as[i].Rebind(acc)
		b := bs[i].Rebind(acc)
		r, err := unify(a, b, ctx, maxDepth, depth+1)
		if err != nil {
			return Result{}, err
		}
		acc = types.Compose(r.Subst, acc)
		reqs = append(reqs, r.Requirements...)
	}
	return success(acc, reqs...), nil
}

func mismatch(a, b types.Type, ctx Context) error {
	loc := ctx.Loc
	return &TypeMismatchError{Loc: loc, Expected: a.String(), Actual: b.String()}
}

// Errors

type TypeMismatchError struct {
	Loc      ident.Location
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: type mismatch: expected %s, got %s", e.Loc, e.Expected, e.Actual)
}

type InfiniteTypeError struct {
	Loc  ident.Location
	Var  string
	Type string
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("%s: infinite type: %s occurs in %s", e.Loc, e.Var, e.Type)
}

type ArityMismatchError struct {
	Loc      ident.Location
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s: arity mismatch: expected %d components, got %d", e.Loc, e.Expected, e.Actual)
}

type MaximumRecursionError struct {
	Loc ident.Location
}

func (e *MaximumRecursionError) Error() string {
	return fmt.Sprintf("%s: maximum recursion depth exceeded", e.Loc)
}
