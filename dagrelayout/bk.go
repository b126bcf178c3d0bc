package dagrelayout

import (
	"math"
	"sort"
	"strings"

	"oss.terrastruct.com/dagre/graphlib"
)

// This is an implementation of the Brandes-Köpf horizontal coordinate
// assignment: nodes are grouped into vertically aligned blocks for each of
// the four up/down x left/right extreme alignments, blocks are compacted,
// the narrowest alignment anchors the other three, and each node takes the
// average of its two median candidate coordinates.
//
// Compaction deviates from the paper: instead of the original cut-value
// style shifts it builds a block graph whose edge labels are minimum
// separations and solves it with a longest-path pass followed by a pull-right
// pass that removes slack.

type conflicts map[string]map[string]bool

func addConflict(cs conflicts, v, w string) {
	if v > w {
		v, w = w, v
	}
	if cs[v] == nil {
		cs[v] = make(map[string]bool)
	}
	cs[v][w] = true
}

func hasConflict(cs conflicts, v, w string) bool {
	if v > w {
		v, w = w, v
	}
	return cs[v][w]
}

// findType1Conflicts marks crossings between an inner segment (dummy to
// dummy) and a non-inner segment. The inner segments scan each layer pair
// left to right; edges that leave the corridor between consecutive inner
// segments conflict unless both of their endpoints are dummies.
func findType1Conflicts(g *Graph, layering [][]string) conflicts {
	cs := make(conflicts)

	visitLayer := func(prevLayer, layer []string) {
		k0 := 0
		scanPos := 0
		prevLayerLength := len(prevLayer)
		lastNode := layer[len(layer)-1]

		for i, v := range layer {
			w := findOtherInnerSegmentNode(g, v)
			k1 := prevLayerLength
			if w != "" {
				k1 = g.Node(w).Order
			}

			if w != "" || v == lastNode {
				for _, scanNode := range layer[scanPos : i+1] {
					for _, u := range g.Predecessors(scanNode) {
						uLabel := g.Node(u)
						uPos := uLabel.Order
						if (uPos < k0 || k1 < uPos) &&
							!(uLabel.Dummy != "" && g.Node(scanNode).Dummy != "") {
							addConflict(cs, u, scanNode)
						}
					}
				}
				scanPos = i + 1
				k0 = k1
			}
		}
	}

	for i := 1; i < len(layering); i++ {
		visitLayer(layering[i-1], layering[i])
	}
	return cs
}

// findType2Conflicts marks crossings between two inner segments, which can
// only occur around border nodes of nested subgraphs.
func findType2Conflicts(g *Graph, layering [][]string) conflicts {
	cs := make(conflicts)

	scan := func(south []string, southPos, southEnd, prevNorthBorder, nextNorthBorder int) {
		for i := southPos; i < southEnd; i++ {
			v := south[i]
			if g.Node(v).Dummy == "" {
				continue
			}
			for _, u := range g.Predecessors(v) {
				uNode := g.Node(u)
				if uNode.Dummy != "" &&
					(uNode.Order < prevNorthBorder || uNode.Order > nextNorthBorder) {
					addConflict(cs, u, v)
				}
			}
		}
	}

	visitLayer := func(north, south []string) {
		prevNorthPos := -1
		southPos := 0

		for southLookahead, v := range south {
			if g.Node(v).Dummy == dummyBorder {
				if preds := g.Predecessors(v); len(preds) > 0 {
					nextNorthPos := g.Node(preds[0]).Order
					scan(south, southPos, southLookahead, prevNorthPos, nextNorthPos)
					southPos = southLookahead
					prevNorthPos = nextNorthPos
				}
			}
			scan(south, southPos, len(south), prevNorthPos, len(north))
		}
	}

	for i := 1; i < len(layering); i++ {
		visitLayer(layering[i-1], layering[i])
	}
	return cs
}

func findOtherInnerSegmentNode(g *Graph, v string) string {
	if g.Node(v).Dummy == "" {
		return ""
	}
	for _, u := range g.Predecessors(v) {
		if g.Node(u).Dummy != "" {
			return u
		}
	}
	return ""
}

type alignment struct {
	root  map[string]string
	align map[string]string
}

// verticalAlignment chains each node to the median of its eligible neighbors
// in the given sweep direction, producing the block forest root/align maps.
// Positions come from the passed layering, not the graph, because the
// layering is flipped to generate the four extreme alignments.
func verticalAlignment(g *Graph, layering [][]string, cs conflicts, neighborFn func(string) []string) alignment {
	root := make(map[string]string)
	align := make(map[string]string)
	pos := make(map[string]int)

	for _, layer := range layering {
		for order, v := range layer {
			root[v] = v
			align[v] = v
			pos[v] = order
		}
	}

	for _, layer := range layering {
		prevIdx := -1
		for _, v := range layer {
			ws := neighborFn(v)
			if len(ws) == 0 {
				continue
			}
			sort.SliceStable(ws, func(i, j int) bool { return pos[ws[i]] < pos[ws[j]] })
			mp := float64(len(ws)-1) / 2
			for i, il := int(math.Floor(mp)), int(math.Ceil(mp)); i <= il; i++ {
				w := ws[i]
				if align[v] == v && prevIdx < pos[w] && !hasConflict(cs, v, w) {
					align[w] = v
					root[v] = root[w]
					align[v] = root[w]
					prevIdx = pos[w]
				}
			}
		}
	}

	return alignment{root: root, align: align}
}

type blockGraph = graphlib.Graph[struct{}, float64, struct{}]

func horizontalCompaction(g *Graph, layering [][]string, root, align map[string]string, reverseSep bool) map[string]float64 {
	xs := make(map[string]float64)
	blockG := buildBlockGraph(g, layering, root, reverseSep)
	borderType := "borderRight"
	if reverseSep {
		borderType = "borderLeft"
	}

	iterate := func(setXs func(string), nextNodes func(string) []string) {
		stack := blockG.Nodes()
		visited := make(map[string]bool)
		for len(stack) > 0 {
			elem := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[elem] {
				setXs(elem)
			} else {
				visited[elem] = true
				stack = append(stack, elem)
				stack = append(stack, nextNodes(elem)...)
			}
		}
	}

	// first pass, assign the smallest coordinates
	pass1 := func(elem string) {
		acc := 0.0
		for _, e := range blockG.InEdges(elem) {
			acc = math.Max(acc, xs[e.V]+blockG.EdgeKeyLabel(e))
		}
		xs[elem] = acc
	}

	// second pass, pull blocks right as far as separation allows
	pass2 := func(elem string) {
		min := math.Inf(1)
		for _, e := range blockG.OutEdges(elem) {
			min = math.Min(min, xs[e.W]-blockG.EdgeKeyLabel(e))
		}
		node := g.Node(elem)
		if !math.IsInf(min, 1) && node.BorderType != borderType {
			xs[elem] = math.Max(xs[elem], min)
		}
	}

	iterate(pass1, blockG.Predecessors)
	iterate(pass2, blockG.Successors)

	for v := range align {
		xs[v] = xs[root[v]]
	}
	return xs
}

func buildBlockGraph(g *Graph, layering [][]string, root map[string]string, reverseSep bool) *blockGraph {
	blockG := graphlib.New[struct{}, float64, struct{}](graphlib.Options{Directed: true})
	label := g.Label()
	sepFn := sep(label.NodeSep, label.EdgeSep, reverseSep)

	for _, layer := range layering {
		u := ""
		for _, v := range layer {
			vRoot := root[v]
			blockG.EnsureNode(vRoot)
			if u != "" {
				uRoot := root[u]
				prevMax := blockG.Edge(uRoot, vRoot)
				blockG.SetEdge(uRoot, vRoot, math.Max(sepFn(g, v, u), prevMax))
			}
			u = v
		}
	}
	return blockG
}

// findSmallestWidthAlignment returns the key of the alignment with the
// smallest horizontal span, measured over node extents.
func findSmallestWidthAlignment(g *Graph, xss map[string]map[string]float64) string {
	bestKey := ""
	bestWidth := math.Inf(1)
	for _, key := range alignmentKeys {
		xs := xss[key]
		max := math.Inf(-1)
		min := math.Inf(1)
		for v, x := range xs {
			halfWidth := g.Node(v).Width / 2
			max = math.Max(x+halfWidth, max)
			min = math.Min(x-halfWidth, min)
		}
		if w := max - min; w < bestWidth {
			bestWidth = w
			bestKey = key
		}
	}
	return bestKey
}

var alignmentKeys = []string{"ul", "ur", "dl", "dr"}

// alignCoordinates shifts the other three alignments so that left-biased
// ones share the anchor's minimum coordinate and right-biased ones its
// maximum.
func alignCoordinates(xss map[string]map[string]float64, alignToKey string) {
	alignTo := xss[alignToKey]
	alignToMin, alignToMax := minMaxValues(alignTo)

	for _, key := range alignmentKeys {
		if key == alignToKey {
			continue
		}
		xs := xss[key]
		xsMin, xsMax := minMaxValues(xs)
		delta := alignToMin - xsMin
		if key[1] == 'r' {
			delta = alignToMax - xsMax
		}
		if delta != 0 {
			shifted := make(map[string]float64, len(xs))
			for v, x := range xs {
				shifted[v] = x + delta
			}
			xss[key] = shifted
		}
	}
}

func minMaxValues(xs map[string]float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		min = math.Min(min, x)
		max = math.Max(max, x)
	}
	return min, max
}

// balance averages the two median candidates for each node, or copies a
// single alignment when one was requested on the graph.
func balance(xss map[string]map[string]float64, align string) map[string]float64 {
	out := make(map[string]float64, len(xss["ul"]))
	if align != "" {
		if xs, ok := xss[strings.ToLower(align)]; ok {
			for v := range xss["ul"] {
				out[v] = xs[v]
			}
			return out
		}
	}
	for v := range xss["ul"] {
		vals := make([]float64, 0, len(alignmentKeys))
		for _, key := range alignmentKeys {
			vals = append(vals, xss[key][v])
		}
		sort.Float64s(vals)
		out[v] = (vals[1] + vals[2]) / 2
	}
	return out
}

func positionX(g *Graph) map[string]float64 {
	layering := buildLayerMatrix(g)
	cs := findType1Conflicts(g, layering)
	for v, ws := range findType2Conflicts(g, layering) {
		for w := range ws {
			addConflict(cs, v, w)
		}
	}

	xss := make(map[string]map[string]float64, 4)
	for _, vert := range []string{"u", "d"} {
		adjustedLayering := layering
		if vert == "d" {
			adjustedLayering = reverseOuter(layering)
		}
		for _, horiz := range []string{"l", "r"} {
			if horiz == "r" {
				adjustedLayering = reverseInner(adjustedLayering)
			}

			neighborFn := g.Predecessors
			if vert == "d" {
				neighborFn = g.Successors
			}
			a := verticalAlignment(g, adjustedLayering, cs, neighborFn)
			xs := horizontalCompaction(g, adjustedLayering, a.root, a.align, horiz == "r")
			if horiz == "r" {
				for v, x := range xs {
					xs[v] = -x
				}
			}
			xss[vert+horiz] = xs
		}
	}

	smallestWidth := findSmallestWidthAlignment(g, xss)
	alignCoordinates(xss, smallestWidth)
	return balance(xss, g.Label().Align)
}

func reverseOuter(layering [][]string) [][]string {
	out := make([][]string, len(layering))
	for i, layer := range layering {
		out[len(layering)-1-i] = layer
	}
	return out
}

func reverseInner(layering [][]string) [][]string {
	out := make([][]string, len(layering))
	for i, layer := range layering {
		rev := make([]string, len(layer))
		for j, v := range layer {
			rev[len(layer)-1-j] = v
		}
		out[i] = rev
	}
	return out
}

// sep returns the minimum separation between the centers of adjacent nodes v
// and w, accounting for node vs dummy spacing and for edge labels whose
// dummy keeps the label mass on one side.
func sep(nodeSep, edgeSep float64, reverseSep bool) func(g *Graph, v, w string) float64 {
	return func(g *Graph, v, w string) float64 {
		vLabel := g.Node(v)
		wLabel := g.Node(w)
		sum := 0.0
		delta := 0.0

		sum += vLabel.Width / 2
		switch strings.ToLower(vLabel.LabelPos) {
		case "l":
			delta = -vLabel.Width / 2
		case "r":
			delta = vLabel.Width / 2
		}
		if delta != 0 {
			if reverseSep {
				sum += delta
			} else {
				sum -= delta
			}
		}
		delta = 0

		half := nodeSep
		if vLabel.Dummy != "" {
			half = edgeSep
		}
		sum += half / 2
		half = nodeSep
		if wLabel.Dummy != "" {
			half = edgeSep
		}
		sum += half / 2

		sum += wLabel.Width / 2
		switch strings.ToLower(wLabel.LabelPos) {
		case "l":
			delta = wLabel.Width / 2
		case "r":
			delta = -wLabel.Width / 2
		}
		if delta != 0 {
			if reverseSep {
				sum += delta
			} else {
				sum -= delta
			}
		}

		return sum
	}
}
