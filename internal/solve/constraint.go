// Package solve implements Robinson unification and the iterative
// constraint solver, together with the Constraint/Context/TrackedTypes
// data model those two operate over.
package solve

import (
	"fmt"

	"github.com/corvidlang/corvid/internal/coreir"
	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/types"
)

// Context is the diagnostic rationale attached to a constraint: a source
// location plus a human-readable explanation, e.g. "applying f to x at
// line N" or "both branches of conditional must match".
type Context struct {
	Loc     ident.Location
	Message string
}

func Ctx(loc ident.Location, format string, args ...interface{}) Context {
	return Context{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Constraint is (a ≡ b, context): an equality obligation the solver must
// discharge.
type Constraint struct {
	A, B types.Type
	Ctx  Context
}

// Rebind applies sub to both sides, used to keep the remaining constraint
// queue consistent with the accumulating substitution.
func (c Constraint) Rebind(sub types.Subst) Constraint {
	return Constraint{A: c.A.Rebind(sub), B: c.B.Rebind(sub), Ctx: c.Ctx}
}

// RebindTail returns a new slice holding every constraint of cs with sub
// applied to both sides, matching the solver's "remaining constraints <-
// rebind their sides" step; cs itself is left unchanged.
func RebindTail(cs []Constraint, sub types.Subst) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = c.Rebind(sub)
	}
	return out
}

// TrackedTypes maps expression-node identity to its inferred type. It is
// created at constraint generation (every node gets an entry, possibly
// still a bare variable) and mutated in place only through substitution
// composition by the solver.
type TrackedTypes struct {
	byNode map[coreir.NodeID]types.Type
}

func NewTrackedTypes() *TrackedTypes {
	return &TrackedTypes{byNode: map[coreir.NodeID]types.Type{}}
}

func (t *TrackedTypes) Insert(id coreir.NodeID, ty types.Type) {
	t.byNode[id] = ty
}

func (t *TrackedTypes) Get(id coreir.NodeID) (types.Type, bool) {
	ty, ok := t.byNode[id]
	return ty, ok
}

// Rebind applies sub to every tracked entry, called by the solver after
// each successful unification step so that every expression eventually
// carries its final, concrete-as-possible type.
func (t *TrackedTypes) Rebind(sub types.Subst) {
	for id, ty := range t.byNode {
		t.byNode[id] = ty.Rebind(sub)
	}
}

// Len reports how many nodes are tracked, used by tests asserting full
// coverage of an inferred expression tree.
func (t *TrackedTypes) Len() int { return len(t.byNode) }
