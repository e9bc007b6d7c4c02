package solve

import (
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/types"
)

// Solve processes constraints first-in-first-out. On each successful
// unification it rebinds tracked types, the scheme resolver, and the
// instance-requirement accumulator through the new substitution, then
// rebinds the remaining constraint queue and composes the substitution
// (sigma composed onto the running accumulator, matching types.Compose's
// a∘b direction). Any failure aborts immediately: the returned error
// carries the constraint's Context chained on as secondary info.
//
// requirements is read and written in place so callers (the SCC scheduler,
// threading one accumulator across an entire compilation) see every
// instance requirement discharged during this solve.
func Solve(
	cs []Constraint,
	tracked *TrackedTypes,
	resolver *scheme.Resolver,
	requirements *[]scheme.Predicate,
	maxDepth int,
) (types.Subst, error) {
	accumulated := types.Subst{}
	remaining := cs

	for len(remaining) > 0 {
		c := remaining[0]
		remaining = remaining[1:]

		r, err := Unify(c.A, c.B, c.Ctx, maxDepth)
		if err != nil {
			return nil, withContext(err, c.Ctx)
		}

		tracked.Rebind(r.Subst)
		resolver.Rebind(r.Subst)

		reboundReqs := make([]scheme.Predicate, len(*requirements))
		for i, p := range *requirements {
			reboundReqs[i] = p.Rebind(r.Subst)
		}
		*requirements = append(reboundReqs, r.Requirements...)

		remaining = RebindTail(remaining, r.Subst)
		accumulated = types.Compose(r.Subst, accumulated)
	}

	return accumulated, nil
}

// withContext attaches the constraint's Context to the failing error as
// secondary "while checking ..." info, matching the original solver's
// error.add_info(iter->context.location, "while checking that %s", ...).
func withContext(err error, ctx Context) error {
	// Errors returned by Unify are plain *xxxError values, not yet
	// diag.Report; wrap them so the caller (constraint generator /
	// session) can render the chained context uniformly.
	return &ContextualError{Cause: err, Ctx: ctx}
}

// ContextualError pairs an underlying unification failure with the
// constraint context active when the solver hit it — the secondary
// "while checking ..." info the diagnostic surface renders.
type ContextualError struct {
	Cause error
	Ctx   Context
}

func (e *ContextualError) Error() string {
	return e.Cause.Error() + "\n  while checking: " + e.Ctx.Loc.String() + ": " + e.Ctx.Message
}

func (e *ContextualError) Unwrap() error { return e.Cause }
