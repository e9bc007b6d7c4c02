package scheme

import (
	"fmt"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/types"
)

// UnboundVariableError is returned when resolve is called on a name with
// no scheme and no in-progress placeholder.
type UnboundVariableError struct {
	Name string
	Loc  ident.Location
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("%s: unbound variable %q", e.Loc, e.Name)
}

// DuplicateBindingError is returned by Extend when name is already bound
// in a scope that disallows subscoping.
type DuplicateBindingError struct {
	Name string
	Loc  ident.Location
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%s: %q is already defined in this scope", e.Loc, e.Name)
}

// resolving marks a name whose scheme is currently being inferred: a
// re-entrant resolve on the same name (mutual recursion within one SCC)
// returns the placeholder fresh variable seeded for it, instead of
// failing or recursing forever.
type resolving struct {
	placeholder *types.Variable
}

// Resolver is the mutable Name -> Scheme map the constraint generator
// consults to look up identifiers' polymorphic types. It is the sole
// owner of its map; schemes themselves are shared immutable values.
type Resolver struct {
	schemes   map[string]*Scheme
	inFlight  map[string]resolving
	counter   *types.Counter
}

func New(counter *types.Counter) *Resolver {
	return &Resolver{
		schemes:  map[string]*Scheme{},
		inFlight: map[string]resolving{},
		counter:  counter,
	}
}

// Extend inserts a new binding. Duplicate non-subscoped bindings (a name
// already present and not currently mid-inference) are rejected with
// DuplicateBindingError.
func (r *Resolver) Extend(name string, s *Scheme, loc ident.Location) error {
	if _, exists := r.schemes[name]; exists {
		if _, resolving := r.inFlight[name]; !resolving {
			return &DuplicateBindingError{Name: name, Loc: loc}
		}
	}
	r.schemes[name] = s
	delete(r.inFlight, name)
	return nil
}

// Seed registers name as "currently being inferred", publishing a fresh
// placeholder variable that a re-entrant Resolve call will return. Used by
// the SCC scheduler before inferring each binding of an SCC.
func (r *Resolver) Seed(name string, loc ident.Location) *types.Variable {
	v := r.counter.Fresh(loc)
	r.inFlight[name] = resolving{placeholder: v}
	return v
}

// Resolve returns a freshly instantiated type for name, along with any
// predicates attached to its scheme. A name currently mid-inference
// (seeded via Seed and not yet Extended) returns its placeholder
// unchanged, with no predicates: this is what permits mutual recursion.
// An unknown name fails with UnboundVariableError.
func (r *Resolver) Resolve(name string, loc ident.Location) (types.Type, []Predicate, error) {
	if s, ok := r.schemes[name]; ok {
		t, preds := s.Instantiate(r.counter, loc)
		return t, preds, nil
	}
	if in, ok := r.inFlight[name]; ok {
		return in.placeholder, nil, nil
	}
	return nil, nil, &UnboundVariableError{Name: name, Loc: loc}
}

// Rebind applies sub to every stored scheme's body and predicates. The
// solver calls this after each successful unification step so that the
// resolver's published schemes stay consistent with the accumulating
// substitution.
//
// Each scheme is freshened first: sub's domain is drawn from the same
// global counter that minted every scheme's quantified variables, so
// without renaming, a stored scheme whose bound variable happens to
// collide with a name sub now substitutes could be corrupted — rebinding
// would reach inside the quantifier and replace what should be a bound
// occurrence. Freshening guarantees the scheme's bound names are new
// enough to be disjoint from sub's domain before the substitution is
// applied, keeping two call sites of a recursive binding from ending up
// sharing a type variable identity across SCCs.
func (r *Resolver) Rebind(sub types.Subst) {
	for name, s := range r.schemes {
		fresh := s.Freshen(r.counter)
		preds := make([]Predicate, len(fresh.Predicates))
		for i, p := range fresh.Predicates {
			preds[i] = p.Rebind(sub)
		}
		r.schemes[name] = &Scheme{Vars: fresh.Vars, Predicates: preds, Type: fresh.Type.Rebind(sub)}
	}
}

// PushLocal binds name to s for the extent of a lexical scope (a lambda
// parameter or a let-body), bypassing Extend's duplicate-binding check —
// shadowing an outer binding of the same name is exactly what a nested
// scope is for. The returned restore func puts back whatever was bound
// before (or removes the binding entirely if name was previously free),
// and must be called once the scope ends.
func (r *Resolver) PushLocal(name string, s *Scheme) func() {
	prev, had := r.schemes[name]
	r.schemes[name] = s
	return func() {
		if had {
			r.schemes[name] = prev
		} else {
			delete(r.schemes, name)
		}
	}
}

// Lookup returns the raw stored scheme for name without instantiating it,
// used by diagnostics and by the session driver when publishing final
// per-declaration schemes.
func (r *Resolver) Lookup(name string) (*Scheme, bool) {
	s, ok := r.schemes[name]
	return s, ok
}

// EnvFTVs computes the free type variables of every scheme currently
// bound, used as the "env" side of Generalize(env, τ).
func (r *Resolver) EnvFTVs() map[string]bool {
	out := map[string]bool{}
	for _, s := range r.schemes {
		for k := range s.Ftvs() {
			out[k] = true
		}
	}
	return out
}
