package compose

import (
	"strings"

	"github.com/planc/streamplan/jobgraph"
	"github.com/planc/streamplan/streamgraph"
)

// defaultParallelism is the parallelism a freshly materialized job vertex
// carries when its stream node declares no explicit value.
const defaultParallelism = 1

// operatorHashPair is one (primary, legacy) identity pair recorded for a
// chain member. Legacy is nil when the legacy hasher produced no entry
// for the member — legacy hashes are expected to be sparse and are never
// backfilled with a synthetic value.
type operatorHashPair struct {
	Primary jobgraph.OperatorID
	Legacy  *jobgraph.OperatorID
}

// chainBuilder recursively walks the stream graph from its sources,
// materializing one job vertex per chain and embedding every tail
// member's configuration inside the chain head's.
type chainBuilder struct {
	graph *streamgraph.Graph

	hashes       map[int][16]byte
	legacyHashes []map[int][16]byte

	jobGraph    *jobgraph.Graph
	jobVertices map[int]*jobgraph.Vertex
	built       map[int]bool

	vertexConfigs  map[int]*jobgraph.StreamConfig
	chainedConfigs map[int]map[int]*jobgraph.StreamConfig

	chainedNames              map[int]string
	chainedMinResources       map[int]streamgraph.ResourceSpec
	chainedPreferredResources map[int]streamgraph.ResourceSpec

	chainedOperatorHashes map[int][]operatorHashPair

	physicalEdges []*streamgraph.Edge
}

func newChainBuilder(g *streamgraph.Graph, jg *jobgraph.Graph, hashes map[int][16]byte, legacyHashes []map[int][16]byte) *chainBuilder {
	return &chainBuilder{
		graph:                     g,
		hashes:                    hashes,
		legacyHashes:              legacyHashes,
		jobGraph:                  jg,
		jobVertices:               make(map[int]*jobgraph.Vertex),
		built:                     make(map[int]bool),
		vertexConfigs:             make(map[int]*jobgraph.StreamConfig),
		chainedConfigs:            make(map[int]map[int]*jobgraph.StreamConfig),
		chainedNames:              make(map[int]string),
		chainedMinResources:       make(map[int]streamgraph.ResourceSpec),
		chainedPreferredResources: make(map[int]streamgraph.ResourceSpec),
		chainedOperatorHashes:     make(map[int][]operatorHashPair),
	}
}

// setChaining is the entry point: for each source node id ascending, build
// a chain starting there.
func (b *chainBuilder) setChaining() error {
	for _, srcID := range b.graph.SourceIDs() {
		if _, err := b.build(srcID, srcID, 0); err != nil {
			return err
		}
	}
	return nil
}

// build implements the recursive chain-building procedure. startID is the
// chain head under construction; currentID is the node
// being visited (initially equal to startID). It returns the chain's
// transitive out-edges: the edges that leave this chain, in the order
// chainable-recursion-results ++ non-chainable-edges-in-order.
func (b *chainBuilder) build(startID, currentID, chainIndex int) ([]*streamgraph.Edge, error) {
	if b.built[startID] {
		return nil, nil
	}

	node := b.graph.Node(currentID)

	var chainableOutputs, nonChainableOutputs []*streamgraph.Edge
outEdges:
	for _, e := range node.OutEdges() {
		for _, pair := range b.graph.IterationPairs {
			if e.SourceID == pair.SinkID && e.TargetID == pair.SourceID {
				// An iteration's tail -> head feedback edge is neither chained
				// nor wired as a job edge; the pair is co-located instead.
				continue outEdges
			}
		}
		if isChainable(e, b.graph) {
			chainableOutputs = append(chainableOutputs, e)
		} else {
			nonChainableOutputs = append(nonChainableOutputs, e)
		}
	}

	var transitiveOut []*streamgraph.Edge
	for _, e := range chainableOutputs {
		sub, err := b.build(startID, e.TargetID, chainIndex+1)
		if err != nil {
			return nil, err
		}
		transitiveOut = append(transitiveOut, sub...)
	}
	for _, e := range nonChainableOutputs {
		transitiveOut = append(transitiveOut, e)
		if _, err := b.build(e.TargetID, e.TargetID, 0); err != nil {
			return nil, err
		}
	}

	b.recordOperatorHashes(startID, currentID)

	b.chainedNames[currentID] = b.chainedName(currentID, chainableOutputs)
	b.chainedMinResources[currentID] = b.chainedMinResource(currentID, chainableOutputs)
	b.chainedPreferredResources[currentID] = b.chainedPreferredResource(currentID, chainableOutputs)

	var config *jobgraph.StreamConfig
	if currentID == startID {
		var err error
		config, err = b.createJobVertex(startID)
		if err != nil {
			return nil, err
		}
	} else {
		config = &jobgraph.StreamConfig{}
	}

	b.setVertexConfig(currentID, config, chainableOutputs, nonChainableOutputs)

	if currentID == startID {
		config.ChainStart = true
		config.ChainIndex = 0
		config.OperatorName = node.OperatorName
		config.RawOutEdges = node.OutEdges()
		config.OutEdgesInOrder = transitiveOut

		for _, e := range transitiveOut {
			b.connect(startID, e)
		}

		config.ChainedTaskConfigs = b.chainedConfigs[startID]
	} else {
		if b.chainedConfigs[startID] == nil {
			b.chainedConfigs[startID] = make(map[int]*jobgraph.StreamConfig)
		}
		config.ChainIndex = chainIndex
		config.OperatorName = node.OperatorName
		b.chainedConfigs[startID][currentID] = config
	}

	primary, ok := b.hashes[currentID]
	if !ok {
		return nil, newCompileError(ErrMissingHash, currentID, "no hash computed before stream-config population")
	}
	config.OperatorID = jobgraph.OperatorID(primary)

	if len(chainableOutputs) == 0 {
		config.ChainEnd = true
	}

	b.vertexConfigs[currentID] = config

	return transitiveOut, nil
}

// recordOperatorHashes appends one (primary, legacy) pair per legacy
// hasher for currentID to startID's operator-hash list.
func (b *chainBuilder) recordOperatorHashes(startID, currentID int) {
	primary, ok := b.hashes[currentID]
	if !ok {
		return // surfaced as ErrMissingHash once the config population needs it
	}
	for _, legacyMap := range b.legacyHashes {
		var legacy *jobgraph.OperatorID
		if lh, ok := legacyMap[currentID]; ok {
			id := jobgraph.OperatorID(lh)
			legacy = &id
		}
		b.chainedOperatorHashes[startID] = append(b.chainedOperatorHashes[startID], operatorHashPair{
			Primary: jobgraph.OperatorID(primary),
			Legacy:  legacy,
		})
	}
}

// chainedName builds the "-> "-joined display name for id's chain suffix:
// "op" alone, "op -> child", or "op -> (child1, child2)".
func (b *chainBuilder) chainedName(id int, chainableOutputs []*streamgraph.Edge) string {
	name := b.graph.Node(id).OperatorName
	switch len(chainableOutputs) {
	case 0:
		return name
	case 1:
		return name + " -> " + b.chainedNames[chainableOutputs[0].TargetID]
	default:
		children := make([]string, len(chainableOutputs))
		for i, e := range chainableOutputs {
			children[i] = b.chainedNames[e.TargetID]
		}
		return name + " -> (" + strings.Join(children, ", ") + ")"
	}
}

func (b *chainBuilder) chainedMinResource(id int, chainableOutputs []*streamgraph.Edge) streamgraph.ResourceSpec {
	res := b.graph.Node(id).MinResources
	for _, e := range chainableOutputs {
		res = res.Merge(b.chainedMinResources[e.TargetID])
	}
	return res
}

func (b *chainBuilder) chainedPreferredResource(id int, chainableOutputs []*streamgraph.Edge) streamgraph.ResourceSpec {
	res := b.graph.Node(id).PreferredResources
	for _, e := range chainableOutputs {
		res = res.Merge(b.chainedPreferredResources[e.TargetID])
	}
	return res
}

// createJobVertex materializes the job vertex for a chain head.
func (b *chainBuilder) createJobVertex(streamNodeID int) (*jobgraph.StreamConfig, error) {
	node := b.graph.Node(streamNodeID)

	primary, ok := b.hashes[streamNodeID]
	if !ok {
		return nil, newCompileError(ErrMissingHash, streamNodeID, "no hash computed before job-vertex materialization")
	}

	var legacyIDs []jobgraph.VertexID
	for _, legacyMap := range b.legacyHashes {
		if lh, ok := legacyMap[streamNodeID]; ok {
			legacyIDs = append(legacyIDs, jobgraph.VertexID(lh))
		}
	}

	pairs := b.chainedOperatorHashes[streamNodeID]
	chainedOperatorIDs := make([]jobgraph.OperatorID, len(pairs))
	userDefinedIDs := make([]*jobgraph.OperatorID, len(pairs))
	for i, p := range pairs {
		chainedOperatorIDs[i] = p.Primary
		userDefinedIDs[i] = p.Legacy
	}

	vertex := &jobgraph.Vertex{
		ID:                            jobgraph.VertexID(primary),
		LegacyIDs:                     legacyIDs,
		Name:                          b.chainedNames[streamNodeID],
		MinResources:                  b.chainedMinResources[streamNodeID],
		PreferredResources:            b.chainedPreferredResources[streamNodeID],
		InvokableClass:                node.VertexClass,
		MaxParallelism:                node.MaxParallelism,
		ChainedOperatorIDs:            chainedOperatorIDs,
		UserDefinedChainedOperatorIDs: userDefinedIDs,
		InputFormat:                   node.InputFormat,
	}

	if node.Parallelism > 0 {
		vertex.Parallelism = node.Parallelism
	} else {
		vertex.Parallelism = defaultParallelism
	}

	config := &jobgraph.StreamConfig{NodeID: streamNodeID}
	vertex.Config = config

	b.jobVertices[streamNodeID] = vertex
	b.built[streamNodeID] = true
	b.jobGraph.AddVertex(vertex)

	return config, nil
}

// setVertexConfig populates config with currentID's per-operator settings.
func (b *chainBuilder) setVertexConfig(currentID int, config *jobgraph.StreamConfig, chainableOutputs, nonChainableOutputs []*streamgraph.Edge) {
	node := b.graph.Node(currentID)

	config.NodeID = currentID
	config.BufferTimeout = node.BufferTimeout

	config.InputSerializer1 = node.InputSerializer1
	config.InputSerializer2 = node.InputSerializer2
	config.OutputSerializer = node.OutputSerializer

	for _, e := range chainableOutputs {
		b.copySideOutputSerializer(node, config, e)
	}
	for _, e := range nonChainableOutputs {
		b.copySideOutputSerializer(node, config, e)
	}

	config.Operator = node.Operator
	config.NumberOfOutputs = len(nonChainableOutputs)
	config.NonChainedOutputs = nonChainableOutputs
	config.ChainedOutputs = chainableOutputs

	config.TimeCharacteristic = string(b.graph.TimeCharacteristic)

	cfg := b.graph.CheckpointConfig
	config.StateBackend = b.graph.StateBackend
	config.CheckpointingEnabled = cfg.Enabled
	if cfg.Enabled {
		config.CheckpointMode = cfg.Mode
	} else {
		// the at-least-once handler is slightly cheaper absent checkpoints.
		config.CheckpointMode = streamgraph.CheckpointingAtLeastOnce
	}

	config.StatePartitioner1 = node.StatePartitioner1
	config.StatePartitioner2 = node.StatePartitioner2
	config.StateKeySerializer = node.StateKeySerializer

	if node.VertexClass == streamgraph.VertexClassIterationHead || node.VertexClass == streamgraph.VertexClassIterationTail {
		config.IterationID = node.IterationID
		config.LoopTimeout = node.LoopTimeout
	}
}

func (b *chainBuilder) copySideOutputSerializer(node *streamgraph.Node, config *jobgraph.StreamConfig, e *streamgraph.Edge) {
	if e.OutputTag == nil {
		return
	}
	ser, ok := node.SideOutputSerializers[*e.OutputTag]
	if !ok {
		return
	}
	if config.SideOutputSerializers == nil {
		config.SideOutputSerializers = make(map[streamgraph.OutputTag]streamgraph.TypeSerializer)
	}
	config.SideOutputSerializers[*e.OutputTag] = ser
}
