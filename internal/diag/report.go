// Package diag implements the core's structured diagnostic surface:
// errors carry a primary location and message plus an ordered list of
// secondary (location, info) notes chained by the constraint context that
// introduced them. Rendering follows path:line:col: error: msg, followed
// by indented "while checking ..." lines, colorized when writing to a
// terminal.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/corvidlang/corvid/internal/ident"
)

// Kind enumerates the error kinds named in the error-handling design.
type Kind string

const (
	UnboundVariable   Kind = "UnboundVariable"
	TypeMismatch      Kind = "TypeMismatch"
	InfiniteType      Kind = "InfiniteType"
	ArityMismatch     Kind = "ArityMismatch"
	DuplicateBinding  Kind = "DuplicateBinding"
	MaximumRecursion  Kind = "MaximumRecursion"
	UnresolvedInstance Kind = "UnresolvedInstance"
)

// Note is a secondary (location, info) pair, rendered as a "while
// checking ..." line beneath the primary diagnostic.
type Note struct {
	Loc  ident.Location
	Info string
}

// Report is the rendering-ready error value handed to the driver. The
// solver, resolver and generator return their own typed errors, which
// FromError converts into a Report. It implements error so it can be
// returned and wrapped through the ordinary Go error-value path.
type Report struct {
	Kind    Kind
	Loc     ident.Location
	Message string
	Notes   []Note
}

func (r *Report) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: error: %s", r.Loc, r.Message))
	for _, n := range r.Notes {
		sb.WriteString(fmt.Sprintf("\n  while checking: %s: %s", n.Loc, n.Info))
	}
	return sb.String()
}

// AddInfo appends a secondary note, chaining further "while checking ..."
// context as the error propagates up through nested solver/generator
// frames (mirrors the original's add_info chaining).
func (r *Report) AddInfo(loc ident.Location, format string, args ...interface{}) *Report {
	r.Notes = append(r.Notes, Note{Loc: loc, Info: fmt.Sprintf(format, args...)})
	return r
}

func New(kind Kind, loc ident.Location, message string) *Report {
	return &Report{Kind: kind, Loc: loc, Message: message}
}

// Render writes the diagnostic to w using the path:line:col: error: msg
// format followed by indented "while checking ..." notes. Color is
// applied through fatih/color, whose color.NoColor is set from whether
// os.Stdout is a terminal; w itself is not inspected, so color is
// stripped when stdout is not a TTY regardless of where w writes.
func (r *Report) Render(w io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(w, "%s %s %s\n", bold(r.Loc.String()+":"), red("error:"), r.Message)
	for _, n := range r.Notes {
		fmt.Fprintf(w, "  %s %s: %s\n", cyan("while checking:"), n.Loc, n.Info)
	}
}

// RenderAll writes a batch of reports in order, used by the driver after
// a session run that accumulated more than one fatal error (SCC
// abandonment per-component still allows subsequent SCCs, if the driver
// chooses, to keep collecting diagnostics instead of stopping at the
// first).
func RenderAll(w io.Writer, reports []*Report) {
	for _, r := range reports {
		r.Render(w)
	}
}
