package streamgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceIDsAreZeroInDegreeAscending(t *testing.T) {
	g := NewGraph("job")
	g.AddNode(&Node{ID: 3})
	g.AddNode(&Node{ID: 1})
	g.AddNode(&Node{ID: 2})
	g.AddEdge(&Edge{SourceID: 1, TargetID: 2, Partitioner: ForwardPartitioner()})

	assert.Equal(t, []int{1, 3}, g.SourceIDs())
}

func TestAddEdgeRecordsPositionAndAdjacency(t *testing.T) {
	g := NewGraph("job")
	g.AddNode(&Node{ID: 1})
	g.AddNode(&Node{ID: 2})
	g.AddNode(&Node{ID: 3})
	g.AddEdge(&Edge{SourceID: 1, TargetID: 2, Partitioner: ForwardPartitioner()})
	e := &Edge{SourceID: 1, TargetID: 3, Partitioner: ForwardPartitioner()}
	g.AddEdge(e)

	assert.Equal(t, 1, e.Position)
	assert.Len(t, g.Node(1).OutEdges(), 2)
	assert.Len(t, g.Node(3).InEdges(), 1)
}

func TestResourceSpecMergeSumsDimensions(t *testing.T) {
	a := ResourceSpec{CPUCores: 1, HeapMB: 512, ExtendedRes: map[string]float64{"gpu": 1}}
	b := ResourceSpec{CPUCores: 2, HeapMB: 256, ExtendedRes: map[string]float64{"gpu": 1}}

	merged := a.Merge(b)

	assert.Equal(t, 3.0, merged.CPUCores)
	assert.Equal(t, int64(768), merged.HeapMB)
	assert.Equal(t, 2.0, merged.ExtendedRes["gpu"])
}
