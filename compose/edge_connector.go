package compose

import (
	"log"

	"github.com/planc/streamplan/jobgraph"
	"github.com/planc/streamplan/streamgraph"
)

// connect wires headOfChain's job vertex to edge's target job vertex. It
// appends edge to the builder's global physical-edge order (consumed
// later when physical edges are inverted per target) and increments the
// downstream vertex's declared input count.
func (b *chainBuilder) connect(headOfChain int, edge *streamgraph.Edge) {
	b.physicalEdges = append(b.physicalEdges, edge)

	head := b.jobVertices[headOfChain]
	down := b.jobVertices[edge.TargetID]

	down.NumberOfInputs++

	distribution := jobgraph.AllToAll
	if edge.Partitioner.Kind == streamgraph.PartitionerForward || edge.Partitioner.Kind == streamgraph.PartitionerRescale {
		distribution = jobgraph.Pointwise
	}

	jobEdge := &jobgraph.Edge{
		Source:              head,
		Target:              down,
		Distribution:        distribution,
		ResultPartitionType: jobgraph.PipelinedBounded,
		ShipStrategyName:    edge.Partitioner.String(),
	}
	b.jobGraph.AddEdge(jobEdge)

	log.Printf("compose: connected %s %d -> %d", edge.Partitioner, headOfChain, edge.TargetID)
}
