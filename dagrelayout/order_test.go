package dagrelayout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/dagre/lib/go2"
)

// rankedGraph builds a graph with explicit ranks and weight-1 edges, the
// state order() expects after ranking and normalization.
func rankedGraph(ranks map[string]int, edges [][2]string) *Graph {
	g := NewGraph()
	for _, vs := range edges {
		for _, v := range vs {
			if !g.HasNode(v) {
				g.SetNode(v, &NodeLabel{Rank: go2.Pointer(ranks[v])})
			}
		}
	}
	for v, r := range ranks {
		if !g.HasNode(v) {
			g.SetNode(v, &NodeLabel{Rank: go2.Pointer(r)})
		}
	}
	for _, vs := range edges {
		g.SetEdge(vs[0], vs[1], &EdgeLabel{Weight: 1})
	}
	return g
}

func TestOrderBowtie(t *testing.T) {
	// a->d and b->c cross in insertion order; ordering must untangle them
	g := rankedGraph(
		map[string]int{"a": 0, "b": 0, "c": 1, "d": 1},
		[][2]string{{"a", "d"}, {"b", "c"}},
	)
	order(g)
	assert.Equal(t, 0.0, crossCount(g, buildLayerMatrix(g)))
}

func TestOrderIsPermutationPerRank(t *testing.T) {
	ranks := map[string]int{
		"a": 0, "b": 0, "c": 0,
		"d": 1, "e": 1,
		"f": 2, "g": 2, "h": 2,
	}
	g := rankedGraph(ranks, [][2]string{
		{"a", "e"}, {"b", "d"}, {"c", "d"}, {"c", "e"},
		{"d", "h"}, {"e", "f"}, {"e", "g"}, {"d", "f"},
	})
	order(g)

	layering := buildLayerMatrix(g)
	assert.Len(t, layering, 3)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, layering[0])
	assert.ElementsMatch(t, []string{"d", "e"}, layering[1])
	assert.ElementsMatch(t, []string{"f", "g", "h"}, layering[2])

	for _, layer := range layering {
		for i, v := range layer {
			assert.Equal(t, i, g.Node(v).Order, v)
		}
	}
}

func TestOrderDoesNotIncreaseCrossings(t *testing.T) {
	ranks := map[string]int{
		"a": 0, "b": 0, "c": 0, "d": 0,
		"e": 1, "f": 1, "g": 1,
		"h": 2, "i": 2,
	}
	edges := [][2]string{
		{"a", "g"}, {"b", "f"}, {"c", "e"}, {"d", "e"},
		{"e", "i"}, {"f", "h"}, {"g", "h"}, {"a", "e"},
	}

	g := rankedGraph(ranks, edges)
	assignOrder(g, initOrder(g))
	initial := crossCount(g, buildLayerMatrix(g))

	g2 := rankedGraph(ranks, edges)
	order(g2)
	final := crossCount(g2, buildLayerMatrix(g2))
	assert.LessOrEqual(t, final, initial)
}

func TestOrderDeterministic(t *testing.T) {
	ranks := map[string]int{
		"a": 0, "b": 0, "c": 0,
		"d": 1, "e": 1, "f": 1,
		"g": 2, "h": 2,
	}
	edges := [][2]string{
		{"a", "f"}, {"b", "e"}, {"c", "d"}, {"a", "d"},
		{"d", "h"}, {"e", "g"}, {"f", "g"},
	}
	g1 := rankedGraph(ranks, edges)
	g2 := rankedGraph(ranks, edges)
	order(g1)
	order(g2)
	assert.Equal(t, buildLayerMatrix(g1), buildLayerMatrix(g2))
}

func TestOrderCompleteBipartite(t *testing.T) {
	// K2,2 cannot do better than exactly one crossing
	g := rankedGraph(
		map[string]int{"a": 0, "b": 0, "c": 1, "d": 1},
		[][2]string{{"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}},
	)
	order(g)

	layering := buildLayerMatrix(g)
	assert.ElementsMatch(t, []string{"a", "b"}, layering[0])
	assert.ElementsMatch(t, []string{"c", "d"}, layering[1])
	assert.Equal(t, 1.0, crossCount(g, layering))
}

func TestOrderIdempotent(t *testing.T) {
	g := rankedGraph(
		map[string]int{
			"a": 0, "b": 0, "c": 0,
			"d": 1, "e": 1,
			"f": 2, "g": 2,
		},
		[][2]string{
			{"a", "e"}, {"b", "d"}, {"c", "d"},
			{"d", "g"}, {"e", "f"},
		},
	)
	order(g)
	first := buildLayerMatrix(g)
	order(g)
	assert.Equal(t, first, buildLayerMatrix(g))
}

func TestCrossCount(t *testing.T) {
	g := rankedGraph(
		map[string]int{"a": 0, "b": 0, "c": 1, "d": 1},
		[][2]string{{"a", "d"}, {"b", "c"}},
	)
	// a b / c d: a->d and b->c cross once
	assignOrder(g, [][]string{{"a", "b"}, {"c", "d"}})
	assert.Equal(t, 1.0, crossCount(g, [][]string{{"a", "b"}, {"c", "d"}}))

	// weighted edges multiply the crossing
	g.Edge("a", "d").Weight = 2
	g.Edge("b", "c").Weight = 3
	assert.Equal(t, 6.0, crossCount(g, [][]string{{"a", "b"}, {"c", "d"}}))

	// swapping one layer removes the crossing
	assert.Equal(t, 0.0, crossCount(g, [][]string{{"b", "a"}, {"c", "d"}}))
}

func TestResolveConflictsMergesAgainstConstraint(t *testing.T) {
	// b is constrained before a but has the larger barycenter, so the two
	// collapse into one entry with a weighted average
	cg := newConstraintGraph()
	cg.SetEdge("b", "a", struct{}{})
	entries := []*barycenterEntry{
		{v: "a", hasBarycenter: true, barycenter: 1, weight: 1},
		{v: "b", hasBarycenter: true, barycenter: 3, weight: 2},
	}
	resolved := resolveConflicts(entries, cg)
	assert.Len(t, resolved, 1)
	assert.Equal(t, []string{"b", "a"}, resolved[0].vs)
	assert.InDelta(t, (1*1+3*2)/3.0, resolved[0].barycenter, 1e-9)
	assert.Equal(t, 3.0, resolved[0].weight)
	assert.Equal(t, 0, resolved[0].i)
}

func TestResolveConflictsKeepsSatisfiedConstraint(t *testing.T) {
	cg := newConstraintGraph()
	cg.SetEdge("a", "b", struct{}{})
	entries := []*barycenterEntry{
		{v: "a", hasBarycenter: true, barycenter: 1, weight: 1},
		{v: "b", hasBarycenter: true, barycenter: 3, weight: 2},
	}
	resolved := resolveConflicts(entries, cg)
	assert.Len(t, resolved, 2)
	assert.Equal(t, []string{"a"}, resolved[0].vs)
	assert.Equal(t, []string{"b"}, resolved[1].vs)
}

func TestSortEntriesBias(t *testing.T) {
	entries := func() []*conflictEntry {
		return []*conflictEntry{
			{vs: []string{"a"}, i: 0, hasBarycenter: true, barycenter: 2, weight: 1},
			{vs: []string{"b"}, i: 1, hasBarycenter: true, barycenter: 1, weight: 1},
			{vs: []string{"c"}, i: 2, hasBarycenter: true, barycenter: 2, weight: 1},
		}
	}

	left := sortEntries(entries(), false)
	assert.Equal(t, []string{"b", "a", "c"}, left.vs)

	right := sortEntries(entries(), true)
	assert.Equal(t, []string{"b", "c", "a"}, right.vs)
}

func TestSortEntriesFixedPositions(t *testing.T) {
	// an entry without a barycenter stays at its original index
	entries := []*conflictEntry{
		{vs: []string{"a"}, i: 0, hasBarycenter: true, barycenter: 5, weight: 1},
		{vs: []string{"fixed"}, i: 1},
		{vs: []string{"b"}, i: 2, hasBarycenter: true, barycenter: 1, weight: 1},
	}
	result := sortEntries(entries, false)
	assert.Equal(t, []string{"b", "fixed", "a"}, result.vs)
	assert.True(t, result.hasBarycenter)
	assert.Equal(t, 3.0, result.barycenter)
}
