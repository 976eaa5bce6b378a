package jobgraph

import "time"

// RetentionPolicy says what happens to a checkpoint's externalized state
// once the job stops.
type RetentionPolicy int

const (
	RetainNever RetentionPolicy = iota
	RetainOnFailure
	RetainOnCancellation
)

// CheckpointCoordinatorConfiguration is the tuning knobs half of the
// checkpointing descriptor.
type CheckpointCoordinatorConfiguration struct {
	Interval                   time.Duration
	Timeout                    time.Duration
	MinPauseBetweenCheckpoints time.Duration
	MaxConcurrentCheckpoints   int
	RetentionPolicy            RetentionPolicy
	ExactlyOnce                bool
}

// CheckpointingSettings is the assembled checkpoint descriptor: the
// trigger/ack/commit vertex lists plus the eagerly-serialized hook
// factories and state backend.
type CheckpointingSettings struct {
	TriggerVertices []VertexID
	AckVertices     []VertexID
	CommitVertices  []VertexID

	Coordinator CheckpointCoordinatorConfiguration

	// SerializedStateBackend is nil when the graph declares no state
	// backend.
	SerializedStateBackend []byte
	// SerializedHooks is nil when no node contributed a master checkpoint
	// hook.
	SerializedHooks []byte
}
