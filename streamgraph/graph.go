package streamgraph

import "sort"

// IterationPair names an iteration's head (source) and tail (sink) node
// ids. Co-location binds the two so their parallel subtasks always land in
// the same slot.
type IterationPair struct {
	SourceID int
	SinkID   int
}

// CachedFile is a user artifact the environment wants shipped alongside
// the job graph.
type CachedFile struct {
	Name      string
	LocalPath string
}

// Graph is the read-only stream graph the compiler consumes. It owns every
// Node and Edge and exposes the handful of queries the core needs.
type Graph struct {
	JobName string

	nodes map[int]*Node
	order []int // insertion order, ascending by id once freeze has run

	ChainingEnabled bool

	TimeCharacteristic TimeCharacteristic

	CheckpointConfig CheckpointConfig
	ExecutionConfig  ExecutionConfig
	StateBackend     StateBackend
	CachedFiles      []CachedFile

	IterationPairs []IterationPair

	frozen bool
}

// NewGraph returns an empty, mutable stream graph. Chaining is enabled by
// default, matching the upstream authoring API's default.
func NewGraph(jobName string) *Graph {
	return &Graph{
		JobName:         jobName,
		nodes:           make(map[int]*Node),
		ChainingEnabled: true,
	}
}

// AddNode registers a node. Node ids must be unique; re-adding an id
// replaces the prior node without affecting edge bookkeeping already
// performed against it (callers should add all nodes before any edges).
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.nodes[n.ID]; !exists {
		g.order = append(g.order, n.ID)
	}
	g.nodes[n.ID] = n
	g.frozen = false
}

// AddEdge appends an edge from source to target, recording it on both
// endpoints' adjacency lists in insertion order.
func (g *Graph) AddEdge(e *Edge) {
	src := g.nodes[e.SourceID]
	dst := g.nodes[e.TargetID]
	e.Position = len(src.outEdges)
	src.outEdges = append(src.outEdges, e)
	dst.inEdges = append(dst.inEdges, e)
}

// Node looks up a node by id. Returns nil if absent.
func (g *Graph) Node(id int) *Node { return g.nodes[id] }

// NodeIDs returns every node id, ascending.
func (g *Graph) NodeIDs() []int {
	g.freeze()
	out := make([]int, len(g.order))
	copy(out, g.order)
	return out
}

// SourceIDs returns the ids of nodes with no incoming edges, ascending —
// the entry points the chain builder walks from.
func (g *Graph) SourceIDs() []int {
	g.freeze()
	var out []int
	for _, id := range g.order {
		if len(g.nodes[id].inEdges) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// freeze sorts the insertion-order slice ascending by id exactly once,
// since ascending-by-id traversal is a hard requirement of hashing and
// chain-building but nodes may be added out of order by a builder.
func (g *Graph) freeze() {
	if g.frozen {
		return
	}
	sort.Ints(g.order)
	g.frozen = true
}
