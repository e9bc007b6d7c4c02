// Package ident provides the core's notion of a source location and a
// named identifier tied to one. Locations exist only for diagnostics and
// for seeding deterministic fresh-name generation; they carry no semantic
// weight in comparisons.
package ident

import "fmt"

// Location is a (filename, line, column) triple. The zero value is the
// "internal" location used for synthetic nodes the core manufactures
// itself (fresh type variables with no surface-syntax origin).
type Location struct {
	File   string
	Line   int
	Column int
}

// Internal is the location attached to types and identifiers the core
// invents rather than reads from source, e.g. the builtin Arrow id.
var Internal = Location{File: "<builtin>"}

func (l Location) String() string {
	if l.File == "" {
		return "<builtin>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsInternal reports whether l carries no real source position.
func (l Location) IsInternal() bool {
	return l.File == "" || l.File == "<builtin>"
}

// Ident is a name paired with the location it was written (or, for
// compiler-generated names, seeded) at. Idents compare equal by Name
// alone — Location never participates in equality or hashing.
type Ident struct {
	Name string
	Loc  Location
}

func New(name string, loc Location) Ident {
	return Ident{Name: name, Loc: loc}
}

func (id Ident) String() string { return id.Name }

// Equal compares two idents by name only, per the data model's rule that
// identifiers are compared by name and never by the location they carry.
func (id Ident) Equal(other Ident) bool { return id.Name == other.Name }
