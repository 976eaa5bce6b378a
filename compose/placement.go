package compose

import "github.com/planc/streamplan/jobgraph"

type coLocationBinding struct {
	slotSharingGroup *jobgraph.SlotSharingGroup
	group            *jobgraph.CoLocationGroup
}

// setSlotSharingAndCoLocation resolves each job vertex's slot-sharing
// group (interning by name) and, where declared, its
// co-location group — failing if co-location is requested without slot
// sharing, or if two co-located vertices disagree on slot-sharing group.
// It then forces the co-location group shared by every iteration's head
// and tail, overriding whatever was resolved above.
func (b *chainBuilder) setSlotSharingAndCoLocation() error {
	slotGroups := make(map[string]*jobgraph.SlotSharingGroup)
	coGroups := make(map[string]*coLocationBinding)

	for nodeID, vertex := range b.jobVertices {
		node := b.graph.Node(nodeID)

		var sharingGroup *jobgraph.SlotSharingGroup
		if node.SlotSharingGroup != "" {
			sharingGroup = slotGroups[node.SlotSharingGroup]
			if sharingGroup == nil {
				sharingGroup = &jobgraph.SlotSharingGroup{Name: node.SlotSharingGroup}
				slotGroups[node.SlotSharingGroup] = sharingGroup
			}
			vertex.SlotSharingGroup = sharingGroup
		}

		if node.CoLocationGroup == "" {
			continue
		}
		if sharingGroup == nil {
			return newCompileError(ErrIllegalCoLocation, nodeID, "co-location group %q requires a slot-sharing group", node.CoLocationGroup)
		}

		binding, exists := coGroups[node.CoLocationGroup]
		if !exists {
			binding = &coLocationBinding{
				slotSharingGroup: sharingGroup,
				group:            &jobgraph.CoLocationGroup{Name: node.CoLocationGroup},
			}
			coGroups[node.CoLocationGroup] = binding
		}
		if binding.slotSharingGroup != sharingGroup {
			return newCompileError(ErrIllegalCoLocation, nodeID, "co-location group %q spans distinct slot-sharing groups", node.CoLocationGroup)
		}

		vertex.CoLocationGroup = binding.group
		binding.group.Vertices = append(binding.group.Vertices, vertex)
	}

	for _, pair := range b.graph.IterationPairs {
		group := &jobgraph.CoLocationGroup{Name: "iteration"}

		source := b.jobVertices[pair.SourceID]
		sink := b.jobVertices[pair.SinkID]

		group.Vertices = append(group.Vertices, source, sink)
		source.CoLocationGroup = group
		sink.CoLocationGroup = group
	}

	return nil
}
