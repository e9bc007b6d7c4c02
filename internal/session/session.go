// Package session is the driver-facing orchestration API: given a flat
// list of top-level declarations and a seeded resolver, it groups them
// into SCCs, runs the constraint generator and solver over each, and
// publishes generalized schemes — the control flow named in the external
// interfaces and system-overview sections.
package session

import (
	"github.com/google/uuid"

	"github.com/corvidlang/corvid/internal/config"
	"github.com/corvidlang/corvid/internal/constraints"
	"github.com/corvidlang/corvid/internal/coreir"
	"github.com/corvidlang/corvid/internal/datactor"
	"github.com/corvidlang/corvid/internal/diag"
	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/solve"
	"github.com/corvidlang/corvid/internal/types"
)

// Session owns every per-compilation mutable structure named by the
// concurrency and resource model: the fresh-variable counter, the
// resolver, TrackedTypes, and the instance-requirement accumulator. None
// of it is shared across sessions, and nothing here requires locking
// since a session is driven by a single producer/consumer thread.
type Session struct {
	ID           uuid.UUID
	Counter      types.Counter
	Resolver     *scheme.Resolver
	Tracked      *solve.TrackedTypes
	Requirements []scheme.Predicate
	DataCtors    *datactor.Table
	Settings     config.Settings
}

// New creates a session with an empty resolver. Callers extend the
// resolver with their builtins (such as operators) and data-constructor
// schemes before calling Infer.
func New(settings config.Settings) *Session {
	s := &Session{
		ID:        uuid.New(),
		DataCtors: datactor.New(),
		Settings:  settings,
	}
	s.Resolver = scheme.New(&s.Counter)
	s.Tracked = solve.NewTrackedTypes()
	return s
}

// DeclResult is a declaration's generalized scheme, the per-declaration
// output the code generator consumes.
type DeclResult struct {
	Name   string
	Scheme *scheme.Scheme
}

// Infer runs the full control flow over decls: build the reference graph,
// compute SCCs, and for each SCC in reverse topological order seed fresh
// variables, generate and solve constraints, generalize, and publish.
// It returns the generalized scheme for every declaration that reached a
// result, and the reports for every SCC that failed (processing continues
// to subsequent independent SCCs after a failure, since an error in one
// mutually-recursive group does not make the rest of the program
// unanalyzable).
func (s *Session) Infer(decls []coreir.Decl) ([]DeclResult, []*diag.Report) {
	byName := make(map[string]coreir.Decl, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}

	graph := buildCallGraph(decls)
	sccs := graph.SCCs()

	var results []DeclResult
	var reports []*diag.Report

	for _, scc := range sccs {
		if err := s.inferSCC(scc, byName, &results); err != nil {
			reports = append(reports, diag.FromError(err))
		}
	}

	return results, reports
}

// inferSCC implements the five-step SCC protocol from the component
// design: seed, infer each RHS into a shared constraint set, solve,
// generalize, publish.
func (s *Session) inferSCC(names []string, byName map[string]coreir.Decl, results *[]DeclResult) error {
	placeholders := make(map[string]*types.Variable, len(names))
	for _, name := range names {
		placeholders[name] = s.Resolver.Seed(name, ident.Internal)
	}

	envFTVsBefore := s.Resolver.EnvFTVs()

	gen := constraints.New(s.Resolver, &s.Counter, s.Tracked, &s.Requirements)
	gen.MaxDepth = s.Settings.MaxRecursion
	if gen.MaxDepth == 0 {
		gen.MaxDepth = types.DefaultMaxDepth
	}

	inferred := make(map[string]types.Type, len(names))
	for _, name := range names {
		decl, ok := byName[name]
		if !ok {
			continue
		}
		t, err := gen.Infer(decl.Expr)
		if err != nil {
			return err
		}
		inferred[name] = t
		gen.Constraints = append(gen.Constraints, solve.Constraint{
			A:   placeholders[name],
			B:   t,
			Ctx: solve.Ctx(decl.Expr.Loc(), "binding %s to its inferred type", name),
		})
	}

	sub, err := solve.Solve(gen.Constraints, s.Tracked, s.Resolver, &s.Requirements, gen.MaxDepth)
	if err != nil {
		return err
	}

	for _, name := range names {
		t, ok := inferred[name]
		if !ok {
			continue
		}
		final := t.Rebind(sub)
		generalized := scheme.Generalize(envFTVsBefore, final, s.Requirements)
		if err := s.Resolver.Extend(name, generalized, ident.Internal); err != nil {
			return err
		}
		*results = append(*results, DeclResult{Name: name, Scheme: generalized})
	}
	return nil
}
