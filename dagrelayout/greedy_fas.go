package dagrelayout

import (
	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/go2"
)

// greedyFAS finds an approximate minimum weighted feedback arc set using the
// Eades, Lin, and Smyth heuristic: repeatedly peel sinks and sources, then
// remove the node with the largest out-in weight difference, collecting the
// in-edges of the removed node as feedback candidates.
func greedyFAS(g *Graph, weightFn func(graphlib.EdgeKey) float64) []graphlib.EdgeKey {
	if g.NodeCount() <= 1 {
		return nil
	}
	state := buildFASState(g, weightFn)
	results := doGreedyFAS(state.graph, state.buckets, state.zeroIdx)

	var fas []graphlib.EdgeKey
	for _, pair := range results {
		fas = append(fas, g.OutEdgesTo(pair.v, pair.w)...)
	}
	return fas
}

type fasEntry struct {
	v   string
	in  float64
	out float64

	prev, next *fasEntry
}

type fasPair struct {
	v, w string
}

type fasState struct {
	graph   *graphlib.Graph[*fasEntry, float64, struct{}]
	buckets []*fasList
	zeroIdx int
}

func doGreedyFAS(g *graphlib.Graph[*fasEntry, float64, struct{}], buckets []*fasList, zeroIdx int) []fasPair {
	var results []fasPair
	sources := buckets[len(buckets)-1]
	sinks := buckets[0]

	for g.NodeCount() > 0 {
		for entry := sinks.dequeue(); entry != nil; entry = sinks.dequeue() {
			removeFASNode(g, buckets, zeroIdx, entry, false)
		}
		for entry := sources.dequeue(); entry != nil; entry = sources.dequeue() {
			removeFASNode(g, buckets, zeroIdx, entry, false)
		}
		if g.NodeCount() > 0 {
			for i := len(buckets) - 2; i > 0; i-- {
				if entry := buckets[i].dequeue(); entry != nil {
					results = append(results, removeFASNode(g, buckets, zeroIdx, entry, true)...)
					break
				}
			}
		}
	}
	return results
}

func removeFASNode(g *graphlib.Graph[*fasEntry, float64, struct{}], buckets []*fasList, zeroIdx int, entry *fasEntry, collectPredecessors bool) []fasPair {
	var results []fasPair
	for _, e := range g.InEdges(entry.v) {
		weight := g.EdgeKeyLabel(e)
		uEntry := g.Node(e.V)
		if collectPredecessors {
			results = append(results, fasPair{v: e.V, w: e.W})
		}
		uEntry.out -= weight
		assignBucket(buckets, zeroIdx, uEntry)
	}
	for _, e := range g.OutEdges(entry.v) {
		weight := g.EdgeKeyLabel(e)
		wEntry := g.Node(e.W)
		wEntry.in -= weight
		assignBucket(buckets, zeroIdx, wEntry)
	}
	entry.unlink()
	g.RemoveNode(entry.v)
	return results
}

func buildFASState(g *Graph, weightFn func(graphlib.EdgeKey) float64) fasState {
	fasGraph := graphlib.New[*fasEntry, float64, struct{}](graphlib.Options{Directed: true})
	maxIn, maxOut := 0.0, 0.0

	for _, v := range g.Nodes() {
		fasGraph.SetNode(v, &fasEntry{v: v})
	}
	for _, e := range g.Edges() {
		if e.V == e.W {
			// self-loops can never be in a useful feedback set
			continue
		}
		prevWeight := fasGraph.Edge(e.V, e.W)
		weight := weightFn(e)
		fasGraph.SetEdge(e.V, e.W, prevWeight+weight)

		vEntry, wEntry := fasGraph.Node(e.V), fasGraph.Node(e.W)
		vEntry.out += weight
		wEntry.in += weight
		maxOut = go2.Max(maxOut, vEntry.out)
		maxIn = go2.Max(maxIn, wEntry.in)
	}

	buckets := make([]*fasList, int(maxOut+maxIn)+3)
	for i := range buckets {
		buckets[i] = newFASList()
	}
	zeroIdx := int(maxIn) + 1
	for _, v := range fasGraph.Nodes() {
		assignBucket(buckets, zeroIdx, fasGraph.Node(v))
	}
	return fasState{graph: fasGraph, buckets: buckets, zeroIdx: zeroIdx}
}

func assignBucket(buckets []*fasList, zeroIdx int, entry *fasEntry) {
	if entry.out == 0 {
		buckets[0].enqueue(entry)
	} else if entry.in == 0 {
		buckets[len(buckets)-1].enqueue(entry)
	} else {
		buckets[int(entry.out-entry.in)+zeroIdx].enqueue(entry)
	}
}

// fasList is a doubly linked list with a sentinel. Enqueueing an entry that
// is already linked moves it, which is how entries migrate between buckets.
type fasList struct {
	sentinel *fasEntry
}

func newFASList() *fasList {
	s := &fasEntry{}
	s.prev = s
	s.next = s
	return &fasList{sentinel: s}
}

func (l *fasList) dequeue() *fasEntry {
	entry := l.sentinel.prev
	if entry == l.sentinel {
		return nil
	}
	entry.unlink()
	return entry
}

func (l *fasList) enqueue(entry *fasEntry) {
	entry.unlink()
	entry.next = l.sentinel.next
	l.sentinel.next.prev = entry
	l.sentinel.next = entry
	entry.prev = l.sentinel
}

func (e *fasEntry) unlink() {
	if e.prev == nil || e.next == nil {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}
