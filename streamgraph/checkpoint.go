package streamgraph

import "time"

// CheckpointingMode mirrors the two delivery guarantees a checkpoint can
// offer. Any other value is rejected by the checkpoint assembler with
// error kind InvalidCheckpointMode.
type CheckpointingMode int

const (
	CheckpointingExactlyOnce CheckpointingMode = iota
	CheckpointingAtLeastOnce
)

// ExternalizedCleanup says what happens to an externalized checkpoint when
// the job is cancelled. CleanupUnset is only legal when externalized
// checkpoints are disabled.
type ExternalizedCleanup int

const (
	CleanupUnset ExternalizedCleanup = iota
	CleanupDeleteOnCancellation
	CleanupRetainOnCancellation
)

// CheckpointConfig is the graph-wide checkpoint configuration consulted
// per-node and by the checkpoint descriptor assembler (graph-wide).
type CheckpointConfig struct {
	Enabled                    bool
	Mode                       CheckpointingMode
	Interval                   time.Duration // <=0 means "periodic checkpointing disabled"
	Timeout                    time.Duration
	MinPauseBetweenCheckpoints time.Duration
	MaxConcurrentCheckpoints   int

	ExternalizedCheckpointsEnabled bool
	ExternalizedCleanup            ExternalizedCleanup

	FailOnCheckpointingErrors bool
}

// StateBackend is the opaque state-backend handle threaded through to the
// checkpoint descriptor and, per node, into the stream config.
type StateBackend interface {
	BackendName() string
}

// ExecutionConfig is the graph-wide execution configuration. The compiler
// only ever touches FailTaskOnCheckpointError (to set it) and otherwise
// serializes the whole value, opaquely, into the job graph's
// execution-config blob.
type ExecutionConfig struct {
	FailTaskOnCheckpointError bool

	// Extra carries any additional execution-config fields the upstream
	// authoring API wants propagated into the job graph untouched.
	Extra map[string]any
}
