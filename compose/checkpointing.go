package compose

import (
	"github.com/planc/streamplan/internal/serialize"
	"github.com/planc/streamplan/jobgraph"
	"github.com/planc/streamplan/streamgraph"
)

// maxCheckpointInterval is the sentinel "periodic checkpointing disabled"
// value: a configured interval <= 0 is normalized to this maximum rather
// than left negative or zero.
const maxCheckpointInterval = 1<<63 - 1

// configureCheckpointing reads the graph's checkpoint config, partitions
// job vertices into trigger/ack/commit sets, resolves the retention
// policy, collects master checkpoint hooks, and eagerly serializes the
// hook array and the state backend.
func (b *chainBuilder) configureCheckpointing() (*jobgraph.CheckpointingSettings, error) {
	cfg := b.graph.CheckpointConfig

	interval := cfg.Interval
	if interval > 0 {
		b.graph.ExecutionConfig.FailTaskOnCheckpointError = cfg.FailOnCheckpointingErrors
	} else {
		interval = maxCheckpointInterval
	}

	var triggerVertices, ackVertices, commitVertices []jobgraph.VertexID
	for _, vertex := range b.jobGraph.Vertices {
		if vertex.IsInputVertex() {
			triggerVertices = append(triggerVertices, vertex.ID)
		}
		ackVertices = append(ackVertices, vertex.ID)
		commitVertices = append(commitVertices, vertex.ID)
	}

	retention, err := retentionPolicy(cfg)
	if err != nil {
		return nil, err
	}

	exactlyOnce, err := isExactlyOnce(cfg.Mode, cfg.Enabled)
	if err != nil {
		return nil, err
	}

	hooks := b.collectMasterHooks()

	var serializedHooks []byte
	if len(hooks) > 0 {
		serializedHooks, err = serialize.Eager("master checkpoint hooks", hooks)
		if err != nil {
			return nil, newCompileError(ErrNonSerializableHook, -1, "%v", err)
		}
	}

	serializedBackend, err := serialize.Eager("state backend", b.graph.StateBackend)
	if err != nil {
		return nil, newCompileError(ErrNonSerializableStateBackend, -1, "%v", err)
	}

	return &jobgraph.CheckpointingSettings{
		TriggerVertices: triggerVertices,
		AckVertices:     ackVertices,
		CommitVertices:  commitVertices,
		Coordinator: jobgraph.CheckpointCoordinatorConfiguration{
			Interval:                   interval,
			Timeout:                    cfg.Timeout,
			MinPauseBetweenCheckpoints: cfg.MinPauseBetweenCheckpoints,
			MaxConcurrentCheckpoints:   cfg.MaxConcurrentCheckpoints,
			RetentionPolicy:            retention,
			ExactlyOnce:                exactlyOnce,
		},
		SerializedStateBackend: serializedBackend,
		SerializedHooks:        serializedHooks,
	}, nil
}

func retentionPolicy(cfg streamgraph.CheckpointConfig) (jobgraph.RetentionPolicy, error) {
	if !cfg.ExternalizedCheckpointsEnabled {
		return jobgraph.RetainNever, nil
	}
	switch cfg.ExternalizedCleanup {
	case streamgraph.CleanupDeleteOnCancellation:
		return jobgraph.RetainOnFailure, nil
	case streamgraph.CleanupRetainOnCancellation:
		return jobgraph.RetainOnCancellation, nil
	default:
		return 0, newCompileError(ErrInvalidExternalizedCleanup, -1, "externalized checkpoints enabled but cleanup mode is unset")
	}
}

func isExactlyOnce(mode streamgraph.CheckpointingMode, enabled bool) (bool, error) {
	switch mode {
	case streamgraph.CheckpointingExactlyOnce:
		return enabled, nil
	case streamgraph.CheckpointingAtLeastOnce:
		return false, nil
	default:
		return false, newCompileError(ErrInvalidCheckpointMode, -1, "checkpoint mode %v is neither exactly-once nor at-least-once", mode)
	}
}

// collectMasterHooks gathers every node's user function that declares the
// master checkpoint hook capability.
func (b *chainBuilder) collectMasterHooks() []streamgraph.MasterHookFunction {
	var hooks []streamgraph.MasterHookFunction
	for _, id := range b.graph.NodeIDs() {
		node := b.graph.Node(id)
		udf, ok := node.Operator.(*streamgraph.UDFOperator)
		if !ok {
			continue
		}
		hook, ok := udf.UserFunction.(streamgraph.MasterHookFunction)
		if !ok {
			continue
		}
		hooks = append(hooks, hook)
	}
	return hooks
}
