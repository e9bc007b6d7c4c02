package diag

import (
	"errors"

	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/scheme"
	"github.com/corvidlang/corvid/internal/solve"
)

// FromError converts one of the core's typed error values into a
// rendering-ready Report, chaining any solve.ContextualError wrapping
// into secondary "while checking ..." notes. Unrecognized errors fall
// back to a generic report so the driver always has something to render.
func FromError(err error) *Report {
	var notes []Note
	cause := err
	for {
		var ce *solve.ContextualError
		if errors.As(cause, &ce) {
			notes = append(notes, Note{Loc: ce.Ctx.Loc, Info: ce.Ctx.Message})
			cause = ce.Cause
			continue
		}
		break
	}

	r := reportForCause(cause)
	r.Notes = append(r.Notes, notes...)
	return r
}

func reportForCause(err error) *Report {
	var mismatch *solve.TypeMismatchError
	if errors.As(err, &mismatch) {
		return New(TypeMismatch, mismatch.Loc, err.Error())
	}
	var inf *solve.InfiniteTypeError
	if errors.As(err, &inf) {
		return New(InfiniteType, inf.Loc, err.Error())
	}
	var arity *solve.ArityMismatchError
	if errors.As(err, &arity) {
		return New(ArityMismatch, arity.Loc, err.Error())
	}
	var maxRec *solve.MaximumRecursionError
	if errors.As(err, &maxRec) {
		return New(MaximumRecursion, maxRec.Loc, err.Error())
	}
	var unbound *scheme.UnboundVariableError
	if errors.As(err, &unbound) {
		return New(UnboundVariable, unbound.Loc, err.Error())
	}
	var dup *scheme.DuplicateBindingError
	if errors.As(err, &dup) {
		return New(DuplicateBinding, dup.Loc, err.Error())
	}
	return New(Kind("Internal"), ident.Internal, err.Error())
}
