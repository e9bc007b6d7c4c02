package scheme

import (
	"sort"
	"strings"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/types"
)

// Scheme is ∀ vs. predicates ⇒ τ: vs is the quantified variable list,
// predicates is the set of class obligations on those variables (or on
// subterms reachable from them), and Type is the body.
type Scheme struct {
	Vars       []string
	Predicates []Predicate
	Type       types.Type
}

// Mono wraps a non-generalized type as a scheme with no quantified
// variables, used for monomorphic bindings (e.g. lambda parameters).
func Mono(t types.Type) *Scheme {
	return &Scheme{Type: t}
}

// Btvs returns the bound-type-variable count: len(Vars).
func (s *Scheme) Btvs() int { return len(s.Vars) }

// Ftvs returns the scheme's free type variables: the body's FTVs minus the
// quantified set, union the FTVs of any predicate whose type is not fully
// quantified away.
func (s *Scheme) Ftvs() map[string]bool {
	bound := make(map[string]bool, len(s.Vars))
	for _, v := range s.Vars {
		bound[v] = true
	}
	out := map[string]bool{}
	for k := range s.Type.FTVs() {
		if !bound[k] {
			out[k] = true
		}
	}
	for _, p := range s.Predicates {
		for k := range p.FTVs() {
			if !bound[k] {
				out[k] = true
			}
		}
	}
	return out
}

// Instantiate replaces each quantified variable with a fresh one,
// rewriting predicates accordingly, and returns the instantiated type
// together with the (now concrete-variable) predicates to fold into the
// caller's instance-requirement accumulator.
func (s *Scheme) Instantiate(counter *types.Counter, loc ident.Location) (types.Type, []Predicate) {
	sub := make(types.Subst, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = counter.Fresh(loc)
	}
	preds := make([]Predicate, len(s.Predicates))
	for i, p := range s.Predicates {
		preds[i] = p.Rebind(sub)
	}
	return s.Type.Rebind(sub), preds
}

// Freshen renames the quantified names to fresh ones, leaving the
// scheme's structure (arity, predicate shape) intact. Unlike Instantiate
// it returns a Scheme, still quantified, not a concrete instantiation —
// used by SchemeResolver.Rebind to keep two call sites of a recursive
// binding from sharing a type variable identity across SCCs.
func (s *Scheme) Freshen(counter *types.Counter) *Scheme {
	remap := make(map[string]string, len(s.Vars))
	newVars := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		fresh := counter.Next()
		remap[v] = fresh
		newVars[i] = fresh
	}
	preds := make([]Predicate, len(s.Predicates))
	for i, p := range s.Predicates {
		preds[i] = p.RemapVars(remap)
	}
	return &Scheme{Vars: newVars, Predicates: preds, Type: s.Type.RemapVars(remap)}
}

// Normalize alpha-renames the quantified variables into the canonical
// alphabetic sequence a, b, ..., z, aa, ... in the order they are first
// encountered in the body's FTV set, for equality checking and display.
func (s *Scheme) Normalize() *Scheme {
	order := freeVarOrder(s.Type, s.Vars)
	remap := make(map[string]string, len(order))
	for i, v := range order {
		remap[v] = types.Alphabetize(i)
	}
	newVars := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		if n, ok := remap[v]; ok {
			newVars[i] = n
		} else {
			newVars[i] = v
		}
	}
	preds := make([]Predicate, len(s.Predicates))
	for i, p := range s.Predicates {
		preds[i] = p.RemapVars(remap)
	}
	return &Scheme{Vars: sortedAlphabetized(newVars), Predicates: preds, Type: s.Type.RemapVars(remap)}
}

// freeVarOrder walks t depth-first, left-to-right, recording each
// quantified name the first time it is seen, giving a deterministic
// left-to-right occurrence order to normalize against.
func freeVarOrder(t types.Type, quantified []string) []string {
	inQ := make(map[string]bool, len(quantified))
	for _, v := range quantified {
		inQ[v] = true
	}
	seen := map[string]bool{}
	var order []string
	var walk func(t types.Type)
	walk = func(t types.Type) {
		switch n := t.(type) {
		case *types.Variable:
			if inQ[n.Name] && !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n.Name)
			}
		case *types.Application:
			walk(n.Func)
			walk(n.Arg)
		case *types.Tuple:
			for _, e := range n.Elems {
				walk(e)
			}
		case *types.TypeLambda:
			walk(n.Body)
		}
	}
	walk(t)
	// any quantified variable never mentioned in the body (possible if
	// it only appears in a predicate) is appended in original order.
	for _, v := range quantified {
		if !seen[v] {
			seen[v] = true
			order = append(order, v)
		}
	}
	return order
}

// sortedAlphabetized orders a set of Alphabetize-produced names into the
// canonical a, b, ..., z, aa, ab, ... sequence. Normalize's newVars carries
// over the original Vars slice's ordering, not the order the names were
// assigned in, so two alpha-equivalent schemes whose Vars list the same
// quantified variables in a different order would otherwise normalize to
// different Repr strings. Ordering by (length, then lexically) matches
// Alphabetize's index order exactly, since the sequence only grows longer
// as it wraps past z, aa, ..., zz, aaa, ...
func sortedAlphabetized(vars []string) []string {
	out := append([]string(nil), vars...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Equal defines scheme equality as alpha-equivalence: normalize both sides
// and compare their canonical representation.
func Equal(a, b *Scheme) bool {
	return a.Normalize().Repr() == b.Normalize().Repr()
}

// Repr is the deterministic canonical string for the scheme, used by
// Equal and by diagnostics.
func (s *Scheme) Repr() string {
	var sb strings.Builder
	if len(s.Vars) > 0 {
		sb.WriteString("forall ")
		sb.WriteString(strings.Join(s.Vars, " "))
		sb.WriteString(". ")
	}
	if len(s.Predicates) > 0 {
		preds := SortPredicates(s.Predicates)
		parts := make([]string, len(preds))
		for i, p := range preds {
			parts[i] = p.String()
		}
		sb.WriteString("(")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(") => ")
	}
	sb.WriteString(s.Type.Repr())
	return sb.String()
}

func (s *Scheme) String() string {
	var sb strings.Builder
	if len(s.Vars) > 0 {
		sb.WriteString("∀")
		sb.WriteString(strings.Join(s.Vars, " "))
		sb.WriteString(". ")
	}
	if len(s.Predicates) > 0 {
		preds := SortPredicates(s.Predicates)
		parts := make([]string, len(preds))
		for i, p := range preds {
			parts[i] = p.String()
		}
		sb.WriteString("(")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(") => ")
	}
	sb.WriteString(s.Type.String())
	return sb.String()
}

// Generalize quantifies over FTV(t) \ FTV(env), attaching whichever
// accumulated predicates mention a variable being quantified. Predicates
// mentioning only environment-bound variables are left for the caller to
// keep as ambient instance requirements rather than generalized away.
func Generalize(envFTVs map[string]bool, t types.Type, accumulated []Predicate) *Scheme {
	var vars []string
	for _, v := range types.SortedNames(t.FTVs()) {
		if !envFTVs[v] {
			vars = append(vars, v)
		}
	}
	quantSet := make(map[string]bool, len(vars))
	for _, v := range vars {
		quantSet[v] = true
	}
	var kept []Predicate
	for _, p := range accumulated {
		for k := range p.FTVs() {
			if quantSet[k] {
				kept = append(kept, p)
				break
			}
		}
	}
	return &Scheme{Vars: vars, Predicates: DedupPredicates(kept), Type: t}
}
