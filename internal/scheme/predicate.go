// Package scheme implements polymorphic type schemes (universally
// quantified types carrying class predicates), the SchemeResolver used to
// look up identifiers' polymorphic types during constraint generation, and
// the Predicate value type threaded through both.
package scheme

import (
	"sort"

	"github.com/corvidlang/corvid/internal/types"
)

// Predicate is (ClassName, Type): the type must be an instance of the
// named class. Predicates are carried inside schemes and accumulated as
// instance requirements during solving.
type Predicate struct {
	Class string
	Type  types.Type
}

// Rebind substitutes inside the predicate's type.
func (p Predicate) Rebind(sub types.Subst) Predicate {
	return Predicate{Class: p.Class, Type: p.Type.Rebind(sub)}
}

// RemapVars performs the pure renaming used by scheme normalization.
func (p Predicate) RemapVars(remap map[string]string) Predicate {
	return Predicate{Class: p.Class, Type: p.Type.RemapVars(remap)}
}

// FTVs returns the free variables of the predicate's type component.
func (p Predicate) FTVs() map[string]bool { return p.Type.FTVs() }

// Key gives a deterministic string good for set membership and sorted
// display, since predicates need to be hashed/ordered for placement in
// sets (per the data model).
func (p Predicate) Key() string { return p.Class + "#" + p.Type.Repr() }

func (p Predicate) String() string { return p.Class + " " + p.Type.String() }

// Less orders two predicates for deterministic display: by class name
// then by type representation.
func Less(a, b Predicate) bool {
	if a.Class != b.Class {
		return a.Class < b.Class
	}
	return a.Type.Repr() < b.Type.Repr()
}

// SortPredicates returns a sorted copy, used whenever predicates are
// rendered or compared for scheme equality.
func SortPredicates(preds []Predicate) []Predicate {
	out := make([]Predicate, len(preds))
	copy(out, preds)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// DedupPredicates removes duplicate (class, type-repr) pairs, preserving
// the first occurrence's ordering position after a stable sort.
func DedupPredicates(preds []Predicate) []Predicate {
	sorted := SortPredicates(preds)
	out := make([]Predicate, 0, len(sorted))
	var last string
	for i, p := range sorted {
		k := p.Key()
		if i == 0 || k != last {
			out = append(out, p)
		}
		last = k
	}
	return out
}
