package constraints

import (
	"fmt"

	"github.com/corvidlang/corvid/internal/coreir"
	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/solve"
	"github.com/corvidlang/corvid/internal/types"
)

// UnreachableStatementError is raised when a Block contains a statement
// after a Return, per the edge case named in the component design.
type UnreachableStatementError struct {
	Loc ident.Location
}

func (e *UnreachableStatementError) Error() string {
	return fmt.Sprintf("%s: unreachable statement after return", e.Loc)
}

// Generator walks a core expression tree producing equality constraints
// with source-location context. It shares a Resolver, fresh-variable
// Counter, TrackedTypes map, and instance-requirement accumulator with
// whatever is driving it (the SCC scheduler, for top-level bindings; a
// nested Generator instance, for a Let's locally-solved value).
type Generator struct {
	Resolver     *scheme.Resolver
	Counter      *types.Counter
	Tracked      *solve.TrackedTypes
	Constraints  []solve.Constraint
	Requirements *[]scheme.Predicate
	MaxDepth     int

	returnStack []types.Type
}

func New(resolver *scheme.Resolver, counter *types.Counter, tracked *solve.TrackedTypes, requirements *[]scheme.Predicate) *Generator {
	maxDepth := types.DefaultMaxDepth
	return &Generator{Resolver: resolver, Counter: counter, Tracked: tracked, Requirements: requirements, MaxDepth: maxDepth}
}

func (g *Generator) emit(a, b types.Type, ctx solve.Context) {
	g.Constraints = append(g.Constraints, solve.Constraint{A: a, B: b, Ctx: ctx})
}

func (g *Generator) track(id coreir.NodeID, t types.Type) {
	g.Tracked.Insert(id, t)
}

func (g *Generator) addRequirements(preds []scheme.Predicate) {
	*g.Requirements = append(*g.Requirements, preds...)
}

// Infer walks expr, emitting constraints into g.Constraints and inserting
// every visited node into g.Tracked, and returns the expression's
// generated (possibly still-variable) type.
func (g *Generator) Infer(expr coreir.Expr) (types.Type, error) {
	switch e := expr.(type) {

	case *coreir.Var:
		t, preds, err := g.Resolver.Resolve(e.Name, e.Loc())
		if err != nil {
			return nil, err
		}
		g.addRequirements(preds)
		g.track(e.ID(), t)
		return t, nil

	case *coreir.Literal:
		t := literalType(e.Kind)
		g.track(e.ID(), t)
		return t, nil

	case *coreir.Lambda:
		alpha := g.Counter.Fresh(e.Loc())
		restore := g.Resolver.PushLocal(e.Param, scheme.Mono(alpha))

		returnType := e.ReturnAnn
		if returnType == nil {
			returnType = g.Counter.Fresh(e.Loc())
		}
		g.PushReturn(returnType)
		beta, err := g.Infer(e.Body)
		g.PopReturn()
		restore()
		if err != nil {
			return nil, err
		}
		g.emit(returnType, beta, solve.Ctx(e.Loc(), "declared return type of lambda must match its body"))
		t := types.Arrow(alpha, beta)
		g.track(e.ID(), t)
		return t, nil

	case *coreir.Application:
		tf, err := g.Infer(e.Func)
		if err != nil {
			return nil, err
		}
		tx, err := g.Infer(e.Arg)
		if err != nil {
			return nil, err
		}
		gamma := g.Counter.Fresh(e.Loc())
		g.emit(tf, types.Arrow(tx, gamma), solve.Ctx(e.Loc(), "applying %s to %s", e.Func, e.Arg))
		g.track(e.ID(), gamma)
		return gamma, nil

	case *coreir.Let:
		t1, err := g.inferLocally(e.Value)
		if err != nil {
			return nil, err
		}
		generalized := scheme.Generalize(g.Resolver.EnvFTVs(), t1, *g.Requirements)
		if err := g.Resolver.Extend(e.Name, generalized, e.Loc()); err != nil {
			return nil, err
		}
		t2, err := g.Infer(e.Body)
		if err != nil {
			return nil, err
		}
		g.track(e.ID(), t2)
		return t2, nil

	case *coreir.Fix:
		tf, err := g.Infer(e.Func)
		if err != nil {
			return nil, err
		}
		alpha := g.Counter.Fresh(e.Loc())
		g.emit(types.Arrow(alpha, alpha), tf, solve.Ctx(e.Loc(), "fixpoint of %s", e.Func))
		g.track(e.ID(), alpha)
		return alpha, nil

	case *coreir.Conditional:
		tc, err := g.Infer(e.Cond)
		if err != nil {
			return nil, err
		}
		g.emit(tc, types.Bool, solve.Ctx(e.Cond.Loc(), "condition of if-expression must be Bool"))
		tt, err := g.Infer(e.Then)
		if err != nil {
			return nil, err
		}
		te, err := g.Infer(e.Else)
		if err != nil {
			return nil, err
		}
		g.emit(tt, te, solve.Ctx(e.Loc(), "both branches of conditional must match"))
		g.track(e.ID(), tt)
		return tt, nil

	case *coreir.Block:
		var result types.Type = types.Unit()
		terminated := false
		for i, stmt := range e.Statements {
			if terminated {
				return nil, &UnreachableStatementError{Loc: stmt.Loc()}
			}
			t, err := g.Infer(stmt)
			if err != nil {
				return nil, err
			}
			if _, isReturn := stmt.(*coreir.Return); isReturn {
				terminated = true
			}
			if i == len(e.Statements)-1 {
				result = t
			}
		}
		g.track(e.ID(), result)
		return result, nil

	case *coreir.Return:
		tv, err := g.Infer(e.Value)
		if err != nil {
			return nil, err
		}
		if len(g.returnStack) > 0 {
			enclosing := g.returnStack[len(g.returnStack)-1]
			g.emit(tv, enclosing, solve.Ctx(e.Loc(), "returned value must match enclosing function's return type"))
		}
		bottom := g.Counter.Fresh(e.Loc())
		g.track(e.ID(), bottom)
		return bottom, nil

	case *coreir.Tuple:
		elems := make([]types.Type, len(e.Elems))
		for i, el := range e.Elems {
			t, err := g.Infer(el)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		t := types.TupleOf(elems...)
		g.track(e.ID(), t)
		return t, nil

	case *coreir.As:
		tv, err := g.Infer(e.Value)
		if err != nil {
			return nil, err
		}
		if !e.Unchecked {
			g.emit(tv, e.Type, solve.Ctx(e.Loc(), "ascribed type must match expression"))
		}
		g.track(e.ID(), e.Type)
		return e.Type, nil

	default:
		return nil, fmt.Errorf("%s: constraint generator: unhandled core expression %T", expr.Loc(), expr)
	}
}

// inferLocally infers value in a nested Generator scope, solves its
// constraints immediately, and returns the solved type with tracked
// entries folded back into the parent — the "infers e1 : tau1 with a
// local constraint set, solves it locally" step of Let.
func (g *Generator) inferLocally(value coreir.Expr) (types.Type, error) {
	local := &Generator{
		Resolver:     g.Resolver,
		Counter:      g.Counter,
		Tracked:      g.Tracked,
		Requirements: g.Requirements,
		MaxDepth:     g.MaxDepth,
		returnStack:  g.returnStack,
	}
	t, err := local.Infer(value)
	if err != nil {
		return nil, err
	}
	sub, err := solve.Solve(local.Constraints, g.Tracked, g.Resolver, g.Requirements, g.MaxDepth)
	if err != nil {
		return nil, err
	}
	return t.Rebind(sub), nil
}

// PushReturn / PopReturn bracket the body of a function literal whose
// return type is being threaded to nested Return nodes; the Lambda case
// of Infer calls these around Infer(body) for every lambda, with the
// declared return annotation or a fresh placeholder.
func (g *Generator) PushReturn(t types.Type) { g.returnStack = append(g.returnStack, t) }
func (g *Generator) PopReturn() {
	g.returnStack = g.returnStack[:len(g.returnStack)-1]
}

func literalType(kind coreir.LitKind) types.Type {
	switch kind {
	case coreir.IntLit:
		return types.Int
	case coreir.FloatLit:
		return types.Float
	case coreir.StringLit:
		return types.String
	case coreir.CharLit:
		return types.Char
	default:
		return types.Int
	}
}
