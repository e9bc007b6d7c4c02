package scheduler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildReferenceGraph builds the graph used by the original compiler's
// own Tarjan regression test. Note: spec prose describes this graph with
// a c->f edge; the ground-truth test graph (original_source/testing.cpp)
// has f->c instead, which is the only way the claimed SCCs {c,d} and
// {f,g,h} can come out as two components rather than merging into one
// via the c<->d and f<->g<->h<->c<->d reachability spec prose would
// otherwise imply. We follow the ground truth.
func buildReferenceGraph() *Graph {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("a", "f")
	g.AddEdge("b", "c")
	g.AddEdge("g", "c")
	g.AddEdge("g", "f")
	g.AddEdge("d", "c")
	g.AddEdge("c", "d")
	g.AddEdge("h", "g")
	g.AddEdge("f", "h")
	g.AddEdge("f", "c")
	return g
}

func TestSCCsOfReferenceGraph(t *testing.T) {
	sccs := buildReferenceGraph().SCCs()

	var asSets [][]string
	for _, scc := range sccs {
		asSets = append(asSets, scc)
	}

	wantMembership := [][]string{{"c", "d"}, {"f", "g", "h"}, {"b"}, {"a"}}
	for _, want := range wantMembership {
		found := false
		for _, got := range asSets {
			if cmp.Equal(got, want) {
				found = true
				break
			}
		}
		assert.True(t, found, "expected SCC %v to appear in %v", want, asSets)
	}
	assert.Len(t, asSets, 4)
}

func TestSCCsRespectDependencyOrder(t *testing.T) {
	// Independent sibling components ({b} and {f,g,h}, both depending
	// only on {c,d}) may appear in either relative order, but every
	// component must appear strictly after every component it depends on.
	sccs := buildReferenceGraph().SCCs()
	pos := map[string]int{}
	for i, scc := range sccs {
		for _, name := range scc {
			pos[name] = i
		}
	}

	require.Less(t, pos["c"], pos["b"])
	require.Less(t, pos["c"], pos["f"])
	require.Less(t, pos["f"], pos["a"])
	require.Less(t, pos["b"], pos["a"])
}

func TestSCCsOfEmptyGraph(t *testing.T) {
	g := NewGraph()
	assert.Empty(t, g.SCCs())
}

func TestSCCsOfAcyclicChain(t *testing.T) {
	g := NewGraph()
	g.AddEdge("x", "y")
	g.AddEdge("y", "z")
	sccs := g.SCCs()
	require.Len(t, sccs, 3)
	for _, scc := range sccs {
		assert.Len(t, scc, 1)
	}
}

func TestSCCsSingleSelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddEdge("x", "x")
	sccs := g.SCCs()
	require.Len(t, sccs, 1)
	assert.Equal(t, []string{"x"}, sccs[0])
}
