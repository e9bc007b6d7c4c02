package solve

import (
	"testing"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctx() Context { return Ctx(ident.Internal, "test") }

func TestUnifySoundness(t *testing.T) {
	a := types.Arrow(types.Var("a", nil, ident.Internal), types.Int)
	b := types.Arrow(types.Int, types.Var("b", nil, ident.Internal))

	r, err := Unify(a, b, ctx(), types.DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, a.Rebind(r.Subst).Repr(), b.Rebind(r.Subst).Repr())
}

func TestUnifyIdsMatchByName(t *testing.T) {
	r, err := Unify(types.Int, types.Int, ctx(), types.DefaultMaxDepth)
	require.NoError(t, err)
	assert.Empty(t, r.Subst)
}

func TestUnifyIdMismatch(t *testing.T) {
	_, err := Unify(types.Int, types.Bool, ctx(), types.DefaultMaxDepth)
	require.Error(t, err)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestOccursCheckFailsOnInfiniteType(t *testing.T) {
	// unify(alpha, alpha -> alpha) must fail with InfiniteType.
	a := types.Var("alpha", nil, ident.Internal)
	selfArrow := types.Arrow(a, a)
	_, err := Unify(a, selfArrow, ctx(), types.DefaultMaxDepth)
	require.Error(t, err)
	var inf *InfiniteTypeError
	require.ErrorAs(t, err, &inf)
}

func TestUnifyVariableBindingProducesInstanceRequirement(t *testing.T) {
	v := types.Var("a", map[string]bool{"Num": true}, ident.Internal)
	r, err := Unify(v, types.Int, ctx(), types.DefaultMaxDepth)
	require.NoError(t, err)
	require.Len(t, r.Requirements, 1)
	assert.Equal(t, "Num", r.Requirements[0].Class)
	assert.Equal(t, "Int", r.Requirements[0].Type.Repr())
}

func TestUnifyArityMismatchOnTuples(t *testing.T) {
	a := types.TupleOf(types.Int, types.Bool)
	b := types.TupleOf(types.Int)
	_, err := Unify(a, b, ctx(), types.DefaultMaxDepth)
	require.Error(t, err)
	var arity *ArityMismatchError
	require.ErrorAs(t, err, &arity)
}

func TestSolveComposesSubstitutionsInOrder(t *testing.T) {
	var counter types.Counter
	resolver := scheme.New(&counter)
	tracked := NewTrackedTypes()
	var reqs []scheme.Predicate

	a := types.Var("a", nil, ident.Internal)
	b := types.Var("b", nil, ident.Internal)
	cs := []Constraint{
		{A: a, B: types.Int, Ctx: ctx()},
		{A: b, B: a, Ctx: ctx()},
	}
	sub, err := Solve(cs, tracked, resolver, &reqs, types.DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, "Int", sub["a"].Repr())
	assert.Equal(t, "Int", sub["b"].Rebind(sub).Repr())
}

func TestSolveFailureCarriesContext(t *testing.T) {
	var counter types.Counter
	resolver := scheme.New(&counter)
	tracked := NewTrackedTypes()
	var reqs []scheme.Predicate

	cs := []Constraint{
		{A: types.Int, B: types.Bool, Ctx: Ctx(ident.Internal, "applying f to x")},
	}
	_, err := Solve(cs, tracked, resolver, &reqs, types.DefaultMaxDepth)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying f to x")
}

func TestSolveRebindsTrackedTypes(t *testing.T) {
	var counter types.Counter
	resolver := scheme.New(&counter)
	tracked := NewTrackedTypes()
	var reqs []scheme.Predicate

	a := types.Var("a", nil, ident.Internal)
	tracked.Insert(1, a)
	cs := []Constraint{{A: a, B: types.Bool, Ctx: ctx()}}
	_, err := Solve(cs, tracked, resolver, &reqs, types.DefaultMaxDepth)
	require.NoError(t, err)

	got, ok := tracked.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Bool", got.Repr())
}
