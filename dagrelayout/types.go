package dagrelayout

import (
	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/geo"
)

// Graph is the labeled graph the engine operates on. Consumers populate node
// sizes and edge attributes, call Layout or LayoutDagre, and read back
// positions and routing points.
type Graph = graphlib.Graph[*NodeLabel, *EdgeLabel, *GraphLabel]

// NewGraph returns an empty directed compound multigraph with default layout
// options, ready for SetNode/SetEdge/SetParent calls.
func NewGraph() *Graph {
	g := graphlib.New[*NodeLabel, *EdgeLabel, *GraphLabel](graphlib.Options{
		Directed:   true,
		Multigraph: true,
		Compound:   true,
	})
	g.SetLabel(&GraphLabel{})
	return g
}

// Dummy node kinds. Every synthetic node the pipeline inserts carries one so
// scaffolding can be recognized and stripped before output.
const (
	dummyEdge      = "edge"       // one segment of a normalized long edge
	dummyEdgeLabel = "edge-label" // chain segment that carries the edge label
	dummyEdgeProxy = "edge-proxy" // pre-normalization label rank reservation
	dummyBorder    = "border"     // compound subgraph boundary
	dummySelfEdge  = "selfedge"   // placeholder reserving room for a self-loop
	dummyRoot      = "root"       // nesting root tying components together
)

// SelfEdge remembers a removed self-loop so it can be materialized after
// coordinates are assigned.
type SelfEdge struct {
	Key   graphlib.EdgeKey
	Label *EdgeLabel
}

// NodeLabel annotates a node. Width and Height are consumer input; the engine
// fills Rank, Order, X, and Y. The remaining fields are pipeline bookkeeping
// on synthetic or compound nodes.
type NodeLabel struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// center coordinates, written by the coordinate assigner
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Rank  *int
	Order int

	// rank span of a compound node, derived from its border nodes
	MinRank *int
	MaxRank *int

	Dummy     string
	LabelPos  string
	EdgeKey   *graphlib.EdgeKey
	EdgeLabel *EdgeLabel
	SelfEdges []SelfEdge

	BorderType   string
	BorderTop    string
	BorderBottom string
	BorderLeft   map[int]string
	BorderRight  map[int]string

	// layer graphs represent a compound node by a single-rank slice; these
	// hold the slice's border node ids
	BorderLeftID  string
	BorderRightID string
}

// EdgeLabel annotates an edge. Weight and Minlen steer ranking and crossing
// minimization; Width/Height/LabelPos/LabelOffset describe the edge label's
// geometry; Points is the engine's output.
type EdgeLabel struct {
	Weight float64 `json:"weight"`
	Minlen int     `json:"minlen"`

	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	LabelPos    string  `json:"labelpos"`
	LabelOffset float64 `json:"labeloffset"`

	Points geo.Points `json:"points"`

	// center of the edge label, set only for labeled edges
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`

	LabelRank *int

	// cycle breaker bookkeeping, restored by its undo pass
	Reversed    bool
	ForwardName string

	NestingEdge bool
}

// GraphLabel carries the layout options recognized on the graph plus the
// engine's cross-stage bookkeeping.
type GraphLabel struct {
	RankDir   string  `json:"rankdir"`
	Align     string  `json:"align"`
	NodeSep   float64 `json:"nodesep"`
	EdgeSep   float64 `json:"edgesep"`
	RankSep   float64 `json:"ranksep"`
	MarginX   float64 `json:"marginx"`
	MarginY   float64 `json:"marginy"`
	Acyclicer string  `json:"acyclicer"`
	Ranker    string  `json:"ranker"`

	// dimensions of the laid out drawing, set on completion
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	NestingRoot    string
	NodeRankFactor int
	DummyChains    []string
	Root           string
	MaxRank        int

	nameCounter int
}

const (
	defaultNodeSep     = 50
	defaultEdgeSep     = 20
	defaultRankSep     = 50
	defaultMinlen      = 1
	defaultWeight      = 1
	defaultLabelOffset = 10
	defaultLabelPos    = "r"
	defaultRankDir     = "tb"
)
