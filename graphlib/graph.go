// Package graphlib is a port of the graphlib container that dagre.js builds
// on: a multigraph with string node ids, arbitrary node/edge/graph labels,
// and an optional parent/child relation for compound (nested) graphs.
//
// Layout output must be reproducible bit-for-bit, so unlike the JS original
// this implementation never exposes map iteration order: nodes, edges, and
// children are kept in insertion order and every accessor returns them that
// way.
package graphlib

import (
	"fmt"
)

type Options struct {
	Directed   bool
	Multigraph bool
	Compound   bool
}

// EdgeKey identifies an edge. Name disambiguates parallel edges in a
// multigraph and is empty otherwise.
type EdgeKey struct {
	V    string
	W    string
	Name string
}

func (e EdgeKey) String() string {
	if e.Name == "" {
		return fmt.Sprintf("%s->%s", e.V, e.W)
	}
	return fmt.Sprintf("%s->%s(%s)", e.V, e.W, e.Name)
}

type nodeInfo[N any] struct {
	label N
	in    []EdgeKey
	out   []EdgeKey
}

// Graph is a labeled graph generic over the node label N, edge label E, and
// graph label G. The zero value is not usable; construct with New.
type Graph[N, E, G any] struct {
	opts  Options
	label G

	defaultNode func(v string) N

	nodes     map[string]*nodeInfo[N]
	nodeOrder []string

	edges     map[EdgeKey]E
	edgeOrder []EdgeKey

	// compound relation; children[""] holds the top-level nodes
	parent   map[string]string
	children map[string][]string
}

func New[N, E, G any](opts Options) *Graph[N, E, G] {
	return &Graph[N, E, G]{
		opts:     opts,
		nodes:    make(map[string]*nodeInfo[N]),
		edges:    make(map[EdgeKey]E),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

func (g *Graph[N, E, G]) IsDirected() bool   { return g.opts.Directed }
func (g *Graph[N, E, G]) IsMultigraph() bool { return g.opts.Multigraph }
func (g *Graph[N, E, G]) IsCompound() bool   { return g.opts.Compound }

func (g *Graph[N, E, G]) SetLabel(label G) { g.label = label }
func (g *Graph[N, E, G]) Label() G         { return g.label }

// SetDefaultNodeLabel sets the label constructor used when a node is created
// implicitly, by EnsureNode, SetEdge on a missing endpoint, or SetParent on a
// missing parent.
func (g *Graph[N, E, G]) SetDefaultNodeLabel(fn func(v string) N) { g.defaultNode = fn }

func (g *Graph[N, E, G]) NodeCount() int { return len(g.nodes) }
func (g *Graph[N, E, G]) EdgeCount() int { return len(g.edges) }

// Nodes returns all node ids in insertion order.
func (g *Graph[N, E, G]) Nodes() []string {
	out := make([]string, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

func (g *Graph[N, E, G]) HasNode(v string) bool {
	_, ok := g.nodes[v]
	return ok
}

// Node returns v's label, or the zero label if v does not exist.
func (g *Graph[N, E, G]) Node(v string) N {
	if info, ok := g.nodes[v]; ok {
		return info.label
	}
	var zero N
	return zero
}

func (g *Graph[N, E, G]) LookupNode(v string) (N, bool) {
	if info, ok := g.nodes[v]; ok {
		return info.label, true
	}
	var zero N
	return zero, false
}

// SetNode adds v with the given label, or replaces v's label if it already
// exists (its position, edges, and parent are unchanged).
func (g *Graph[N, E, G]) SetNode(v string, label N) {
	if info, ok := g.nodes[v]; ok {
		info.label = label
		return
	}
	g.nodes[v] = &nodeInfo[N]{label: label}
	g.nodeOrder = append(g.nodeOrder, v)
	if g.opts.Compound {
		g.children[""] = append(g.children[""], v)
	}
}

// EnsureNode adds v with the default label if it does not exist yet.
func (g *Graph[N, E, G]) EnsureNode(v string) {
	if g.HasNode(v) {
		return
	}
	var label N
	if g.defaultNode != nil {
		label = g.defaultNode(v)
	}
	g.SetNode(v, label)
}

// RemoveNode removes v, all its incident edges, and its parent link. Children
// of v become top-level nodes.
func (g *Graph[N, E, G]) RemoveNode(v string) {
	info, ok := g.nodes[v]
	if !ok {
		return
	}
	for _, e := range append(append([]EdgeKey{}, info.in...), info.out...) {
		g.RemoveEdgeKey(e)
	}
	if g.opts.Compound {
		for _, child := range append([]string{}, g.children[v]...) {
			g.setParentRaw(child, "")
		}
		delete(g.children, v)
		g.setParentRaw(v, "")
		g.removeChild("", v)
	}
	delete(g.nodes, v)
	g.nodeOrder = removeString(g.nodeOrder, v)
}

// SetParent makes parent the parent of v. An empty parent makes v top-level.
// It reports an error when the graph is not compound, when v is missing, or
// when the assignment would create a cycle in the nesting tree.
func (g *Graph[N, E, G]) SetParent(v, parent string) error {
	if !g.opts.Compound {
		return fmt.Errorf("graphlib: cannot set parent in a non-compound graph")
	}
	if !g.HasNode(v) {
		return fmt.Errorf("graphlib: cannot set parent of missing node %q", v)
	}
	for ancestor := parent; ancestor != ""; ancestor = g.parent[ancestor] {
		if ancestor == v {
			return fmt.Errorf("graphlib: setting parent of %q to %q would create a cycle", v, parent)
		}
	}
	if parent != "" {
		g.EnsureNode(parent)
	}
	g.setParentRaw(v, parent)
	return nil
}

// setParentRaw mirrors the JS container: the child is removed from its old
// parent's list and appended to the new one, even when old == new.
func (g *Graph[N, E, G]) setParentRaw(v, parent string) {
	g.removeChild(g.parent[v], v)
	if parent == "" {
		delete(g.parent, v)
	} else {
		g.parent[v] = parent
	}
	g.children[parent] = append(g.children[parent], v)
}

func (g *Graph[N, E, G]) removeChild(parent, v string) {
	g.children[parent] = removeString(g.children[parent], v)
}

// Parent returns v's parent id, or "" when v is top-level or absent.
func (g *Graph[N, E, G]) Parent(v string) string {
	return g.parent[v]
}

// Children returns v's children in insertion order. Children("") returns the
// top-level nodes.
func (g *Graph[N, E, G]) Children(v string) []string {
	if !g.opts.Compound {
		if v == "" {
			return g.Nodes()
		}
		return nil
	}
	out := make([]string, len(g.children[v]))
	copy(out, g.children[v])
	return out
}

func (g *Graph[N, E, G]) edgeKey(v, w, name string) EdgeKey {
	if !g.opts.Directed && v > w {
		v, w = w, v
	}
	// names distinguish parallel edges, which only multigraphs have
	if !g.opts.Multigraph {
		name = ""
	}
	return EdgeKey{V: v, W: w, Name: name}
}

// SetEdge adds or updates the unnamed edge (v, w). Missing endpoints are
// created with the default node label.
func (g *Graph[N, E, G]) SetEdge(v, w string, label E) EdgeKey {
	return g.SetNamedEdge(v, w, "", label)
}

func (g *Graph[N, E, G]) SetNamedEdge(v, w, name string, label E) EdgeKey {
	e := g.edgeKey(v, w, name)
	g.SetEdgeKey(e, label)
	return e
}

func (g *Graph[N, E, G]) SetEdgeKey(e EdgeKey, label E) {
	e = g.edgeKey(e.V, e.W, e.Name)
	if _, ok := g.edges[e]; ok {
		g.edges[e] = label
		return
	}
	g.EnsureNode(e.V)
	g.EnsureNode(e.W)
	g.edges[e] = label
	g.edgeOrder = append(g.edgeOrder, e)
	g.nodes[e.V].out = append(g.nodes[e.V].out, e)
	g.nodes[e.W].in = append(g.nodes[e.W].in, e)
}

// Edge returns the label of the unnamed edge (v, w), or the zero label.
func (g *Graph[N, E, G]) Edge(v, w string) E {
	return g.EdgeKeyLabel(g.edgeKey(v, w, ""))
}

func (g *Graph[N, E, G]) EdgeKeyLabel(e EdgeKey) E {
	if label, ok := g.edges[g.edgeKey(e.V, e.W, e.Name)]; ok {
		return label
	}
	var zero E
	return zero
}

func (g *Graph[N, E, G]) LookupEdge(e EdgeKey) (E, bool) {
	label, ok := g.edges[g.edgeKey(e.V, e.W, e.Name)]
	return label, ok
}

func (g *Graph[N, E, G]) HasEdge(v, w string) bool {
	_, ok := g.edges[g.edgeKey(v, w, "")]
	return ok
}

func (g *Graph[N, E, G]) HasEdgeKey(e EdgeKey) bool {
	_, ok := g.edges[g.edgeKey(e.V, e.W, e.Name)]
	return ok
}

func (g *Graph[N, E, G]) RemoveEdge(v, w string) {
	g.RemoveEdgeKey(g.edgeKey(v, w, ""))
}

func (g *Graph[N, E, G]) RemoveEdgeKey(e EdgeKey) {
	e = g.edgeKey(e.V, e.W, e.Name)
	if _, ok := g.edges[e]; !ok {
		return
	}
	delete(g.edges, e)
	g.edgeOrder = removeEdge(g.edgeOrder, e)
	if info, ok := g.nodes[e.V]; ok {
		info.out = removeEdge(info.out, e)
	}
	if info, ok := g.nodes[e.W]; ok {
		info.in = removeEdge(info.in, e)
	}
}

// Edges returns all edge keys in insertion order.
func (g *Graph[N, E, G]) Edges() []EdgeKey {
	out := make([]EdgeKey, len(g.edgeOrder))
	copy(out, g.edgeOrder)
	return out
}

func (g *Graph[N, E, G]) InEdges(v string) []EdgeKey {
	if info, ok := g.nodes[v]; ok {
		out := make([]EdgeKey, len(info.in))
		copy(out, info.in)
		return out
	}
	return nil
}

func (g *Graph[N, E, G]) OutEdges(v string) []EdgeKey {
	if info, ok := g.nodes[v]; ok {
		out := make([]EdgeKey, len(info.out))
		copy(out, info.out)
		return out
	}
	return nil
}

// OutEdgesTo returns the edges from v to w, including parallel edges, in
// insertion order.
func (g *Graph[N, E, G]) OutEdgesTo(v, w string) []EdgeKey {
	var out []EdgeKey
	if info, ok := g.nodes[v]; ok {
		for _, e := range info.out {
			if e.W == w {
				out = append(out, e)
			}
		}
	}
	return out
}

// NodeEdges returns all edges incident on v: in-edges then out-edges, each in
// insertion order.
func (g *Graph[N, E, G]) NodeEdges(v string) []EdgeKey {
	info, ok := g.nodes[v]
	if !ok {
		return nil
	}
	out := make([]EdgeKey, 0, len(info.in)+len(info.out))
	out = append(out, info.in...)
	out = append(out, info.out...)
	return out
}

// Predecessors returns the distinct sources of v's in-edges, in first-seen
// order.
func (g *Graph[N, E, G]) Predecessors(v string) []string {
	info, ok := g.nodes[v]
	if !ok {
		return nil
	}
	return distinctEnds(info.in, true)
}

func (g *Graph[N, E, G]) Successors(v string) []string {
	info, ok := g.nodes[v]
	if !ok {
		return nil
	}
	return distinctEnds(info.out, false)
}

// Neighbors returns predecessors then successors, deduplicated in first-seen
// order.
func (g *Graph[N, E, G]) Neighbors(v string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, u := range append(g.Predecessors(v), g.Successors(v)...) {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// Sources returns the nodes with no in-edges, in insertion order.
func (g *Graph[N, E, G]) Sources() []string {
	var out []string
	for _, v := range g.nodeOrder {
		if len(g.nodes[v].in) == 0 {
			out = append(out, v)
		}
	}
	return out
}

func (g *Graph[N, E, G]) Sinks() []string {
	var out []string
	for _, v := range g.nodeOrder {
		if len(g.nodes[v].out) == 0 {
			out = append(out, v)
		}
	}
	return out
}

func distinctEnds(edges []EdgeKey, takeV bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range edges {
		end := e.W
		if takeV {
			end = e.V
		}
		if !seen[end] {
			seen[end] = true
			out = append(out, end)
		}
	}
	return out
}

func removeString(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeEdge(s []EdgeKey, e EdgeKey) []EdgeKey {
	for i, x := range s {
		if x == e {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
