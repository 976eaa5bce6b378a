package jobgraph

import (
	"time"

	"github.com/planc/streamplan/streamgraph"
)

// StreamConfig holds one chain member's per-operator configuration.
// For the chain head, ChainedTaskConfigs, OutEdgesInOrder, RawOutEdges, and
// InPhysicalEdges are populated; tail members leave those nil/empty and are
// instead reachable through the head's ChainedTaskConfigs map.
type StreamConfig struct {
	NodeID int

	OperatorName string
	OperatorID   OperatorID
	Operator     streamgraph.Operator

	ChainIndex int
	ChainStart bool
	ChainEnd   bool

	BufferTimeout time.Duration

	InputSerializer1 streamgraph.TypeSerializer
	InputSerializer2 streamgraph.TypeSerializer
	OutputSerializer streamgraph.TypeSerializer

	SideOutputSerializers map[streamgraph.OutputTag]streamgraph.TypeSerializer

	NumberOfOutputs   int
	NonChainedOutputs []*streamgraph.Edge
	ChainedOutputs    []*streamgraph.Edge

	TimeCharacteristic string

	StateBackend         streamgraph.StateBackend
	CheckpointingEnabled bool
	CheckpointMode       streamgraph.CheckpointingMode

	StatePartitioner1  streamgraph.StatePartitioner
	StatePartitioner2  streamgraph.StatePartitioner
	StateKeySerializer streamgraph.TypeSerializer

	IterationID string
	LoopTimeout time.Duration

	// RawOutEdges is the node's raw, un-filtered out-edge list. Head only.
	RawOutEdges []*streamgraph.Edge
	// OutEdgesInOrder is the chain's transitive out-edges — the edges that
	// actually leave the chain — in build order. Head only.
	OutEdgesInOrder []*streamgraph.Edge
	// InPhysicalEdges is populated after all chains are built.
	InPhysicalEdges []*streamgraph.Edge

	// ChainedTaskConfigs maps member node id -> that member's StreamConfig,
	// for every non-head member of the chain. Head only.
	ChainedTaskConfigs map[int]*StreamConfig
}
