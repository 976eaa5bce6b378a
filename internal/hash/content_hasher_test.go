package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planc/streamplan/streamgraph"
)

type stubOperator string

func (s stubOperator) Name() string { return string(s) }

func buildLinearGraph() *streamgraph.Graph {
	g := streamgraph.NewGraph("test")
	g.AddNode(&streamgraph.Node{ID: 1, OperatorName: "source", Operator: stubOperator("source")})
	g.AddNode(&streamgraph.Node{ID: 2, OperatorName: "map", Operator: stubOperator("map")})
	g.AddNode(&streamgraph.Node{ID: 3, OperatorName: "sink", Operator: stubOperator("sink")})
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 2, TargetID: 3, Partitioner: streamgraph.ForwardPartitioner()})
	return g
}

func TestContentHasherDeterministic(t *testing.T) {
	h := NewContentHasher()

	first, err := h.Hash(buildLinearGraph())
	require.NoError(t, err)

	second, err := h.Hash(buildLinearGraph())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestContentHasherDistinguishesTopology(t *testing.T) {
	h := NewContentHasher()

	linear, err := h.Hash(buildLinearGraph())
	require.NoError(t, err)

	branching := streamgraph.NewGraph("test")
	branching.AddNode(&streamgraph.Node{ID: 1, OperatorName: "source", Operator: stubOperator("source")})
	branching.AddNode(&streamgraph.Node{ID: 2, OperatorName: "mapA", Operator: stubOperator("map")})
	branching.AddNode(&streamgraph.Node{ID: 3, OperatorName: "mapB", Operator: stubOperator("map")})
	branching.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
	branching.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 3, Partitioner: streamgraph.ForwardPartitioner()})

	branched, err := h.Hash(branching)
	require.NoError(t, err)

	assert.NotEqual(t, linear[3], branched[3])
}

func TestContentHasherExcludesIterationBackEdge(t *testing.T) {
	g := streamgraph.NewGraph("iter")
	g.AddNode(&streamgraph.Node{ID: 1, OperatorName: "head", Operator: stubOperator("head"), VertexClass: streamgraph.VertexClassIterationHead})
	g.AddNode(&streamgraph.Node{ID: 2, OperatorName: "body", Operator: stubOperator("body")})
	g.AddNode(&streamgraph.Node{ID: 3, OperatorName: "tail", Operator: stubOperator("tail"), VertexClass: streamgraph.VertexClassIterationTail})
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 2, TargetID: 3, Partitioner: streamgraph.ForwardPartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 3, TargetID: 1, Partitioner: streamgraph.ForwardPartitioner()})
	g.IterationPairs = []streamgraph.IterationPair{{SourceID: 1, SinkID: 3}}

	hashed, err := NewContentHasher().Hash(g)
	require.NoError(t, err)
	assert.Len(t, hashed, 3)
}

func TestContentHasherUnresolvedCycle(t *testing.T) {
	g := streamgraph.NewGraph("cycle")
	g.AddNode(&streamgraph.Node{ID: 1, OperatorName: "a", Operator: stubOperator("a")})
	g.AddNode(&streamgraph.Node{ID: 2, OperatorName: "b", Operator: stubOperator("b")})
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 2, TargetID: 1, Partitioner: streamgraph.ForwardPartitioner()})

	_, err := NewContentHasher().Hash(g)
	var unresolved *UnresolvedHashesError
	require.ErrorAs(t, err, &unresolved)
}

func TestUserHashLegacyHasherSparse(t *testing.T) {
	g := streamgraph.NewGraph("legacy")
	g.AddNode(&streamgraph.Node{ID: 1, OperatorName: "a", Operator: stubOperator("a"), UserHash: "pinned"})
	g.AddNode(&streamgraph.Node{ID: 2, OperatorName: "b", Operator: stubOperator("b")})

	hashed, err := NewUserHashLegacyHasher().Hash(g)
	require.NoError(t, err)

	_, hasFirst := hashed[1]
	_, hasSecond := hashed[2]
	assert.True(t, hasFirst)
	assert.False(t, hasSecond)
}
