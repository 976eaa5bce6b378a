package compose

import "github.com/planc/streamplan/streamgraph"

// setPhysicalEdges inverts the global physical-edge list into per-target
// in-edge lists, preserving insertion order within each group, and writes
// each list onto that vertex's stream config. Must run after every chain
// is built and every connect() call has happened, so the ordering
// reflects build order.
func (b *chainBuilder) setPhysicalEdges() {
	inEdgesByTarget := make(map[int][]*streamgraph.Edge)
	for _, e := range b.physicalEdges {
		inEdgesByTarget[e.TargetID] = append(inEdgesByTarget[e.TargetID], e)
	}
	for target, edges := range inEdgesByTarget {
		b.vertexConfigs[target].InPhysicalEdges = edges
	}
}
