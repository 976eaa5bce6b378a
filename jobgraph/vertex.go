// Package jobgraph holds the output data model the compiler produces: the
// execution graph a distributed runtime would schedule and run. Like
// streamgraph, this package is data-only — the compile logic lives in
// compose.
package jobgraph

import "github.com/planc/streamplan/streamgraph"

// OperatorID is a 16-byte content-derived identity assigned to a chained
// operator. Equal stream graphs MUST yield byte-equal OperatorIDs.
type OperatorID [16]byte

// VertexID is a 16-byte content-derived identity assigned to a job vertex.
// It always equals the primary hash of the vertex's chain head.
type VertexID [16]byte

// Vertex is one node in the job graph: a maximal chain of stream-graph
// operators that run in one thread.
type Vertex struct {
	ID        VertexID
	LegacyIDs []VertexID

	Name string

	MinResources       streamgraph.ResourceSpec
	PreferredResources streamgraph.ResourceSpec

	InvokableClass streamgraph.VertexClass
	Parallelism    int
	MaxParallelism int

	// NumberOfInputs counts incoming job edges; incremented once per
	// Edge connected to this vertex.
	NumberOfInputs int

	// ChainedOperatorIDs lists every member's primary operator id in
	// depth-first post-order: each member follows the members chained
	// below it, so the head comes last.
	ChainedOperatorIDs []OperatorID
	// UserDefinedChainedOperatorIDs mirrors ChainedOperatorIDs but carries
	// the legacy user-hash override per member; a nil entry means that
	// member had no override. Legacy maps are expected to be sparse.
	UserDefinedChainedOperatorIDs []*OperatorID

	// InputFormat is non-nil when this vertex was materialized from a
	// stream node that declared one, making it an input-format vertex
	// rather than a plain one.
	InputFormat streamgraph.InputFormat

	// Config is the head's stream configuration, embedding every tail
	// member's own configuration.
	Config *StreamConfig

	// SlotSharingGroup and CoLocationGroup are resolved by the placement
	// constraint resolver; nil means "no constraint".
	SlotSharingGroup *SlotSharingGroup
	CoLocationGroup  *CoLocationGroup
}

// IsInputVertex reports whether the vertex has no declared inputs, which
// is how the checkpoint assembler identifies trigger vertices.
func (v *Vertex) IsInputVertex() bool { return v.NumberOfInputs == 0 }
