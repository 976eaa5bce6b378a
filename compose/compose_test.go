package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planc/streamplan/jobgraph"
	"github.com/planc/streamplan/streamgraph"
)

type stubOperator string

func (s stubOperator) Name() string { return string(s) }

func newNode(id int, name string) *streamgraph.Node {
	return &streamgraph.Node{
		ID:           id,
		OperatorName: name,
		Operator:     stubOperator(name),
		Parallelism:  1,
	}
}

// TestLinearChainFusesIntoOneVertex covers the linear fusion scenario:
// three forward-connected, default-strategy, same-parallelism operators
// collapse into a single job vertex with no job edges.
func TestLinearChainFusesIntoOneVertex(t *testing.T) {
	g := streamgraph.NewGraph("linear")
	g.AddNode(newNode(1, "source"))
	g.AddNode(newNode(2, "map"))
	g.AddNode(newNode(3, "sink"))
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 2, TargetID: 3, Partitioner: streamgraph.ForwardPartitioner()})

	jobGraph, err := Compile(g)
	require.NoError(t, err)

	assert.Len(t, jobGraph.Vertices, 1)
	assert.Empty(t, jobGraph.Edges)
	assert.Equal(t, "source -> map -> sink", jobGraph.Vertices[0].Name)
}

// TestParallelismChangeBreaksChain covers the parallelism-break scenario.
func TestParallelismChangeBreaksChain(t *testing.T) {
	g := streamgraph.NewGraph("parallelism-break")
	src := newNode(1, "source")
	sink := newNode(2, "sink")
	sink.Parallelism = 4
	g.AddNode(src)
	g.AddNode(sink)
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})

	jobGraph, err := Compile(g)
	require.NoError(t, err)

	assert.Len(t, jobGraph.Vertices, 2)
	assert.Len(t, jobGraph.Edges, 1)
}

// TestChainingStrategyNeverBreaksChain covers the strategy-NEVER scenario.
func TestChainingStrategyNeverBreaksChain(t *testing.T) {
	g := streamgraph.NewGraph("never")
	src := newNode(1, "source")
	mid := newNode(2, "isolated")
	mid.ChainingStrategy = streamgraph.ChainingNever
	sink := newNode(3, "sink")
	g.AddNode(src)
	g.AddNode(mid)
	g.AddNode(sink)
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 2, TargetID: 3, Partitioner: streamgraph.ForwardPartitioner()})

	jobGraph, err := Compile(g)
	require.NoError(t, err)

	assert.Len(t, jobGraph.Vertices, 3)
}

// TestNonForwardPartitionerBreaksChain covers the partitioner-break
// scenario: a rebalance edge can never be fused, regardless of otherwise
// matching strategy and parallelism.
func TestNonForwardPartitionerBreaksChain(t *testing.T) {
	g := streamgraph.NewGraph("partitioner-break")
	g.AddNode(newNode(1, "source"))
	g.AddNode(newNode(2, "sink"))
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.RebalancePartitioner()})

	jobGraph, err := Compile(g)
	require.NoError(t, err)

	require.Len(t, jobGraph.Vertices, 2)
	require.Len(t, jobGraph.Edges, 1)
	assert.Equal(t, "REBALANCE", jobGraph.Edges[0].ShipStrategyName)
	assert.Equal(t, "ALL_TO_ALL", jobGraph.Edges[0].Distribution.String())
}

// TestIterationHeadAndTailShareCoLocationGroup covers the iteration
// co-location scenario: the head and tail of an iteration always end up
// in the same co-location group, even with no explicit group declared.
func TestIterationHeadAndTailShareCoLocationGroup(t *testing.T) {
	g := streamgraph.NewGraph("iteration")
	external := newNode(0, "external-source")
	head := newNode(1, "head")
	head.VertexClass = streamgraph.VertexClassIterationHead
	head.SlotSharingGroup = "default"
	body := newNode(2, "body")
	tail := newNode(3, "tail")
	tail.VertexClass = streamgraph.VertexClassIterationTail
	tail.SlotSharingGroup = "default"

	g.AddNode(external)
	g.AddNode(head)
	g.AddNode(body)
	g.AddNode(tail)
	g.AddEdge(&streamgraph.Edge{SourceID: 0, TargetID: 1, Partitioner: streamgraph.RebalancePartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.RebalancePartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 2, TargetID: 3, Partitioner: streamgraph.RebalancePartitioner()})
	g.AddEdge(&streamgraph.Edge{SourceID: 3, TargetID: 1, Partitioner: streamgraph.RebalancePartitioner()})
	g.IterationPairs = []streamgraph.IterationPair{{SourceID: 1, SinkID: 3}}

	jobGraph, err := Compile(g)
	require.NoError(t, err)

	var headGroup, tailGroup string
	for _, v := range jobGraph.Vertices {
		if v.InvokableClass == streamgraph.VertexClassIterationHead {
			require.NotNil(t, v.CoLocationGroup)
			headGroup = v.CoLocationGroup.Name
		}
		if v.InvokableClass == streamgraph.VertexClassIterationTail {
			require.NotNil(t, v.CoLocationGroup)
			tailGroup = v.CoLocationGroup.Name
		}
	}
	assert.NotEmpty(t, headGroup)
	assert.Equal(t, headGroup, tailGroup)
}

// TestCoLocationWithoutSlotSharingFails covers the rule that co-location
// requires slot-sharing.
func TestCoLocationWithoutSlotSharingFails(t *testing.T) {
	g := streamgraph.NewGraph("illegal-colocation")
	a := newNode(1, "a")
	a.CoLocationGroup = "x"
	g.AddNode(a)

	_, err := Compile(g)
	require.ErrorIs(t, err, ErrIllegalCoLocation)
}

// TestExternalizedCheckpointRetentionPolicy covers the externalized
// checkpoint retention scenario.
func TestExternalizedCheckpointRetentionPolicy(t *testing.T) {
	g := streamgraph.NewGraph("checkpoints")
	g.AddNode(newNode(1, "source"))
	g.CheckpointConfig = streamgraph.CheckpointConfig{
		Enabled:                        true,
		Mode:                           streamgraph.CheckpointingExactlyOnce,
		Interval:                       0,
		ExternalizedCheckpointsEnabled: true,
		ExternalizedCleanup:            streamgraph.CleanupRetainOnCancellation,
	}

	jobGraph, err := Compile(g)
	require.NoError(t, err)
	require.NotNil(t, jobGraph.CheckpointingSettings)
	assert.Equal(t, jobgraph.RetainOnCancellation, jobGraph.CheckpointingSettings.Coordinator.RetentionPolicy)
	assert.True(t, jobGraph.CheckpointingSettings.Coordinator.ExactlyOnce)
}

// TestExternalizedCheckpointMissingCleanupFails covers the failure branch
// of the retention policy table: externalized enabled but no cleanup mode
// configured is an error, not a silent default.
func TestExternalizedCheckpointMissingCleanupFails(t *testing.T) {
	g := streamgraph.NewGraph("missing-cleanup")
	g.AddNode(newNode(1, "source"))
	g.CheckpointConfig = streamgraph.CheckpointConfig{
		Enabled:                        true,
		ExternalizedCheckpointsEnabled: true,
	}

	_, err := Compile(g)
	require.ErrorIs(t, err, ErrInvalidExternalizedCleanup)
}

// TestIdentityStableAcrossResubmission covers the determinism property:
// compiling the same graph twice must assign the same job-vertex identity
// to the same chain head.
func TestIdentityStableAcrossResubmission(t *testing.T) {
	build := func() *streamgraph.Graph {
		g := streamgraph.NewGraph("resubmit")
		g.AddNode(newNode(1, "source"))
		g.AddNode(newNode(2, "sink"))
		g.AddEdge(&streamgraph.Edge{SourceID: 1, TargetID: 2, Partitioner: streamgraph.ForwardPartitioner()})
		return g
	}

	first, err := Compile(build())
	require.NoError(t, err)
	second, err := Compile(build())
	require.NoError(t, err)

	require.Len(t, first.Vertices, 1)
	require.Len(t, second.Vertices, 1)
	assert.Equal(t, first.Vertices[0].ID, second.Vertices[0].ID)
}
