package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlang/corvid/internal/config"
	"github.com/corvidlang/corvid/internal/coreir"
	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/types"
)

// idgen hands out strictly increasing NodeIDs, matching the elaborator's
// contract that every node's identity is unique.
type idgen struct{ n coreir.NodeID }

func (g *idgen) next() coreir.NodeID {
	g.n++
	return g.n
}

var loc = ident.Internal

func TestInferIdentityLambdaGeneralizes(t *testing.T) {
	g := &idgen{}
	// lambda x. x
	body := coreir.NewVar(g.next(), loc, "x")
	lam := coreir.NewLambda(g.next(), loc, "x", body)

	s := New(testSettings())
	results, reports := s.Infer([]coreir.Decl{{Name: "main", Expr: lam}})
	require.Empty(t, reports)
	require.Len(t, results, 1)

	got := results[0].Scheme.Normalize()
	want := (&scheme.Scheme{Vars: []string{"a"}, Type: types.Arrow(types.Var("a", nil, loc), types.Var("a", nil, loc))}).Normalize()
	assert.Equal(t, want.Repr(), got.Repr())
}

func TestInferTwiceAppliedFunction(t *testing.T) {
	g := &idgen{}
	// lambda f. lambda x. f(f(x))
	fx := coreir.NewApplication(g.next(), loc, coreir.NewVar(g.next(), loc, "f"), coreir.NewVar(g.next(), loc, "x"))
	ffx := coreir.NewApplication(g.next(), loc, coreir.NewVar(g.next(), loc, "f"), fx)
	innerLam := coreir.NewLambda(g.next(), loc, "x", ffx)
	outerLam := coreir.NewLambda(g.next(), loc, "f", innerLam)

	s := New(testSettings())
	results, reports := s.Infer([]coreir.Decl{{Name: "main", Expr: outerLam}})
	require.Empty(t, reports)
	require.Len(t, results, 1)

	a := types.Var("a", nil, loc)
	want := (&scheme.Scheme{
		Vars: []string{"a"},
		Type: types.Arrow(types.Arrow(a, a), types.Arrow(a, a)),
	}).Normalize()
	got := results[0].Scheme.Normalize()
	assert.Equal(t, want.Repr(), got.Repr())
}

func TestInferLetGeneralizesBeforeReuse(t *testing.T) {
	g := &idgen{}
	// let id = lambda x. x in id id
	idLam := coreir.NewLambda(g.next(), loc, "x", coreir.NewVar(g.next(), loc, "x"))
	idIdBody := coreir.NewApplication(g.next(), loc, coreir.NewVar(g.next(), loc, "id"), coreir.NewVar(g.next(), loc, "id"))
	letExpr := coreir.NewLet(g.next(), loc, "id", idLam, idIdBody)

	s := New(testSettings())
	results, reports := s.Infer([]coreir.Decl{{Name: "main", Expr: letExpr}})
	require.Empty(t, reports)
	require.Len(t, results, 1)

	a := types.Var("a", nil, loc)
	want := (&scheme.Scheme{Vars: []string{"a"}, Type: types.Arrow(a, a)}).Normalize()
	got := results[0].Scheme.Normalize()
	assert.Equal(t, want.Repr(), got.Repr())
}

func TestInferArithmeticBodyAgainstSeededPlus(t *testing.T) {
	g := &idgen{}
	// lambda x. let y = x in (+) y 1, with (+) : Int -> Int -> Int seeded
	one := coreir.NewLiteral(g.next(), loc, coreir.IntLit, "1")
	plusY := coreir.NewApplication(g.next(), loc, coreir.NewVar(g.next(), loc, "+"), coreir.NewVar(g.next(), loc, "y"))
	plusYOne := coreir.NewApplication(g.next(), loc, plusY, one)
	letExpr := coreir.NewLet(g.next(), loc, "y", coreir.NewVar(g.next(), loc, "x"), plusYOne)
	lam := coreir.NewLambda(g.next(), loc, "x", letExpr)

	s := New(testSettings())
	require.NoError(t, s.Resolver.Extend("+", scheme.Mono(types.Arrows([]types.Type{types.Int, types.Int}, types.Int)), ident.Internal))

	results, reports := s.Infer([]coreir.Decl{{Name: "main", Expr: lam}})
	require.Empty(t, reports)
	require.Len(t, results, 1)

	want := scheme.Mono(types.Arrow(types.Int, types.Int)).Normalize()
	got := results[0].Scheme.Normalize()
	assert.Equal(t, want.Repr(), got.Repr())
}

func TestInferConditionalOverLiterals(t *testing.T) {
	g := &idgen{}
	// lambda c. if c then 1 else 2
	cond := coreir.NewVar(g.next(), loc, "c")
	thenE := coreir.NewLiteral(g.next(), loc, coreir.IntLit, "1")
	elseE := coreir.NewLiteral(g.next(), loc, coreir.IntLit, "2")
	ifExpr := coreir.NewConditional(g.next(), loc, cond, thenE, elseE)
	lam := coreir.NewLambda(g.next(), loc, "c", ifExpr)

	s := New(testSettings())
	results, reports := s.Infer([]coreir.Decl{{Name: "main", Expr: lam}})
	require.Empty(t, reports)
	require.Len(t, results, 1)

	want := scheme.Mono(types.Arrow(types.Bool, types.Int)).Normalize()
	got := results[0].Scheme.Normalize()
	assert.Equal(t, want.Repr(), got.Repr())
}

func TestInferLambdaBuildingTuple(t *testing.T) {
	g := &idgen{}
	// lambda x. (x, x)
	tup := coreir.NewTuple(g.next(), loc, []coreir.Expr{
		coreir.NewVar(g.next(), loc, "x"),
		coreir.NewVar(g.next(), loc, "x"),
	})
	lam := coreir.NewLambda(g.next(), loc, "x", tup)

	s := New(testSettings())
	results, reports := s.Infer([]coreir.Decl{{Name: "main", Expr: lam}})
	require.Empty(t, reports)
	require.Len(t, results, 1)

	a := types.Var("a", nil, loc)
	want := (&scheme.Scheme{Vars: []string{"a"}, Type: types.Arrow(a, types.TupleOf(a, a))}).Normalize()
	got := results[0].Scheme.Normalize()
	assert.Equal(t, want.Repr(), got.Repr())
}

// TestInferMutuallyRecursiveSCC exercises the SCC-driven scheduling path:
// isEven and isOdd reference each other, so they must land in one
// component and be solved together against shared placeholders.
func TestInferMutuallyRecursiveSCC(t *testing.T) {
	g := &idgen{}

	// isEven = lambda n. isOdd(n) and isOdd = lambda n. isEven(n): the two
	// bodies only need to reference each other. Neither body contains a
	// literal, so nothing fixes n's type or the result type.
	isEvenBody := coreir.NewApplication(g.next(), loc, coreir.NewVar(g.next(), loc, "isOdd"), coreir.NewVar(g.next(), loc, "n"))
	isEvenLam := coreir.NewLambda(g.next(), loc, "n", isEvenBody)

	isOddBody := coreir.NewApplication(g.next(), loc, coreir.NewVar(g.next(), loc, "isEven"), coreir.NewVar(g.next(), loc, "n"))
	isOddLam := coreir.NewLambda(g.next(), loc, "n", isOddBody)

	s := New(testSettings())
	decls := []coreir.Decl{
		{Name: "isEven", Expr: isEvenLam},
		{Name: "isOdd", Expr: isOddLam},
	}
	results, reports := s.Infer(decls)
	require.Empty(t, reports)
	require.Len(t, results, 2)

	byName := map[string]*scheme.Scheme{}
	for _, r := range results {
		byName[r.Name] = r.Scheme
	}
	// Both must generalize to the same shape: forall a b. a -> b, since
	// nothing ties n's type or the result type to anything concrete.
	for _, name := range []string{"isEven", "isOdd"} {
		sc, ok := byName[name]
		require.True(t, ok, "missing result for %s", name)
		assert.Equal(t, 2, len(sc.Vars), "%s should quantify over both its argument and result", name)
	}
}

func testSettings() config.Settings {
	return config.Default()
}
