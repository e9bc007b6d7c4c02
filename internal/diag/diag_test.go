package diag

import (
	"bytes"
	"testing"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/solve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIncludesPrimaryAndSecondaryNotes(t *testing.T) {
	r := New(TypeMismatch, ident.Location{File: "foo.cv", Line: 3, Column: 5}, "type mismatch: expected Int, got Bool")
	r.AddInfo(ident.Location{File: "foo.cv", Line: 2, Column: 1}, "while checking that f returns Int")

	var buf bytes.Buffer
	r.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "foo.cv:3:5:")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "while checking:")
}

func TestFromErrorChainsContextualNotes(t *testing.T) {
	inner := &solve.TypeMismatchError{Loc: ident.Location{File: "x.cv", Line: 1, Column: 1}, Expected: "Int", Actual: "Bool"}
	wrapped := &solve.ContextualError{
		Cause: inner,
		Ctx:   solve.Ctx(ident.Location{File: "x.cv", Line: 1, Column: 1}, "applying f to 1"),
	}

	r := FromError(wrapped)
	require.Equal(t, TypeMismatch, r.Kind)
	require.Len(t, r.Notes, 1)
	assert.Contains(t, r.Notes[0].Info, "applying f to 1")
}
