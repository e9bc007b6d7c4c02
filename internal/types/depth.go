package types

// DefaultMaxDepth is the default recursion-depth guard passed to the
// unifier, protecting against pathological (self-referential-by-
// construction, deeply-nested) types during unification — the only place
// a type term actually grows, since the constraint generator only ever
// builds types of depth bounded by the core expression tree it walks.
const DefaultMaxDepth = 64
