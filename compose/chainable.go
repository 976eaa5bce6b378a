package compose

import "github.com/planc/streamplan/streamgraph"

// isChainable is the chainability predicate: a pure function deciding
// whether edge may be fused into its source's chain. Any single failing
// condition yields a chain boundary.
func isChainable(edge *streamgraph.Edge, g *streamgraph.Graph) bool {
	source := g.Node(edge.SourceID)
	target := g.Node(edge.TargetID)

	return len(target.InEdges()) == 1 &&
		target.Operator != nil &&
		source.Operator != nil &&
		source.SlotSharingGroup == target.SlotSharingGroup &&
		target.ChainingStrategy == streamgraph.ChainingAlways &&
		(source.ChainingStrategy == streamgraph.ChainingHead || source.ChainingStrategy == streamgraph.ChainingAlways) &&
		edge.Partitioner.Kind == streamgraph.PartitionerForward &&
		source.Parallelism == target.Parallelism &&
		g.ChainingEnabled
}
