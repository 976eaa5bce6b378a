package jobgraph

import "github.com/planc/streamplan/streamgraph"

// ScheduleMode is fixed to EAGER by the core.
const ScheduleMode = "EAGER"

// Graph is the compiled execution plan: the output of compose.Compile.
type Graph struct {
	JobID   [16]byte
	JobName string

	ScheduleMode string

	// Vertices is ordered the way chains were first materialized:
	// depth-first from sources ascending by id, chainable out-edges
	// before non-chainable ones.
	Vertices []*Vertex

	Edges []*Edge

	ExecutionConfigBlob []byte
	UserArtifacts       []streamgraph.CachedFile

	CheckpointingSettings *CheckpointingSettings
}

// AddVertex appends v to the graph's vertex list.
func (g *Graph) AddVertex(v *Vertex) { g.Vertices = append(g.Vertices, v) }

// AddEdge appends e to the graph's edge list.
func (g *Graph) AddEdge(e *Edge) { g.Edges = append(g.Edges, e) }
