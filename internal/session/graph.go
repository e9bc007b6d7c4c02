package session

import (
	"github.com/corvidlang/corvid/internal/coreir"
	"github.com/corvidlang/corvid/internal/scheduler"
)

// findReferences walks expr collecting every Var name it mentions,
// matching ailang's elaborate.findReferences switch shape but over the
// core IR's smaller variant set.
func findReferences(expr coreir.Expr) []string {
	var out []string
	var walk func(e coreir.Expr)
	walk = func(e coreir.Expr) {
		switch n := e.(type) {
		case *coreir.Var:
			out = append(out, n.Name)
		case *coreir.Literal:
		case *coreir.Lambda:
			walk(n.Body)
		case *coreir.Application:
			walk(n.Func)
			walk(n.Arg)
		case *coreir.Let:
			walk(n.Value)
			walk(n.Body)
		case *coreir.Fix:
			walk(n.Func)
		case *coreir.Conditional:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		case *coreir.Block:
			for _, s := range n.Statements {
				walk(s)
			}
		case *coreir.Return:
			walk(n.Value)
		case *coreir.Tuple:
			for _, el := range n.Elems {
				walk(el)
			}
		case *coreir.As:
			walk(n.Value)
		}
	}
	walk(expr)
	return out
}

// buildCallGraph registers every declaration as a node and an edge for
// each reference that resolves to another declaration in the same batch,
// following ailang's BuildCallGraph rule of only linking local, non-
// imported names: a reference to something already bound in an outer
// resolver (a builtin, or a previously-scheduled SCC) is simply not a
// node in this graph and so contributes no edge.
func buildCallGraph(decls []coreir.Decl) *scheduler.Graph {
	g := scheduler.NewGraph()
	names := make(map[string]bool, len(decls))
	for _, d := range decls {
		names[d.Name] = true
		g.AddNode(d.Name)
	}
	for _, d := range decls {
		for _, ref := range findReferences(d.Expr) {
			if ref != d.Name && names[ref] {
				g.AddEdge(d.Name, ref)
			}
		}
	}
	return g
}
