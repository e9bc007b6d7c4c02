// Package datactor implements the data-constructor table: for each ADT
// T a b ..., a map from constructor name to its (possibly Λ-prefixed)
// constructor scheme, plus a dense integer tag per constructor assigned
// in declaration order for runtime discrimination.
package datactor

import (
	"fmt"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/types"
)

// Table maps each data type name to its constructors, and each
// constructor name to a dense tag unique across the whole table.
type Table struct {
	byType  map[string]map[string]*scheme.Scheme
	tagOf   map[string]int
	nextTag int
}

func New() *Table {
	return &Table{byType: map[string]map[string]*scheme.Scheme{}, tagOf: map[string]int{}}
}

// NotFoundError is raised by CtorType, FreshCtorType, Tag and
// ConstructorsOf when a type or constructor name is unknown to the table.
type NotFoundError struct {
	What string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s %q in data-constructor table", e.What, e.Name)
}

// Declare registers ctorName as one of typeName's constructors with the
// given constructor scheme, assigning it the next dense tag. Tags come
// from one counter shared by the whole table, so only the first declared
// type's constructors start at 0; a later type's constructors continue
// from where the previous declarations left off.
func (t *Table) Declare(typeName, ctorName string, s *scheme.Scheme) {
	if _, ok := t.byType[typeName]; !ok {
		t.byType[typeName] = map[string]*scheme.Scheme{}
	}
	t.byType[typeName][ctorName] = s
	if _, ok := t.tagOf[ctorName]; !ok {
		t.tagOf[ctorName] = t.nextTag
		t.nextTag++
	}
}

// CtorType resolves ctorName's scheme within typeName, applying fullType's
// type-argument spine (unfolded left-associatively) to the constructor's
// possibly Λ-prefixed scheme body, mirroring get_data_ctor_type's
// unfold-then-apply-each-argument loop.
func (t *Table) CtorType(typeName, ctorName string, fullType types.Type) (types.Type, error) {
	ctors, ok := t.byType[typeName]
	if !ok {
		return nil, &NotFoundError{What: "data type", Name: typeName}
	}
	s, ok := ctors[ctorName]
	if !ok {
		return nil, &NotFoundError{What: "data constructor", Name: ctorName}
	}
	spine := types.UnfoldOpsLassoc(fullType)
	result := s.Type
	for _, arg := range spine[1:] {
		result = types.Apply(result, arg)
	}
	return result, nil
}

// FreshCtorType returns ctorName's constructor type instantiated with
// fresh type variables for every Λ binder, without requiring the caller
// to know the full applied type — used when a constructor appears bare
// in a pattern or expression before its type arguments are known.
func (t *Table) FreshCtorType(ctorName string, counter *types.Counter, loc ident.Location) (types.Type, error) {
	for _, ctors := range t.byType {
		if s, ok := ctors[ctorName]; ok {
			result := s.Type
			for {
				lam, isLambda := result.(*types.TypeLambda)
				if !isLambda {
					return result, nil
				}
				result = types.Apply(lam, counter.Fresh(loc))
			}
		}
	}
	return nil, &NotFoundError{What: "data constructor", Name: ctorName}
}

// Tag returns ctorName's dense integer tag.
func (t *Table) Tag(ctorName string) (int, error) {
	tag, ok := t.tagOf[ctorName]
	if !ok {
		return 0, &NotFoundError{What: "data constructor", Name: ctorName}
	}
	return tag, nil
}

// ConstructorsOf returns the constructor names declared for typeName, used
// by exhaustiveness checking in the (external) elaborator.
func (t *Table) ConstructorsOf(typeName string) ([]string, error) {
	ctors, ok := t.byType[typeName]
	if !ok {
		return nil, &NotFoundError{What: "data type", Name: typeName}
	}
	out := make([]string, 0, len(ctors))
	for name := range ctors {
		out = append(out, name)
	}
	return out, nil
}
