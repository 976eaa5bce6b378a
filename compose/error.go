package compose

import "fmt"

// Sentinel error kinds. Every compile error wraps one of these so callers
// can classify failures with errors.Is.
var (
	// ErrMissingHash indicates a node was referenced before hashing
	// completed — a traversal bug, or an unexpected cycle the hasher
	// could not resolve.
	ErrMissingHash = fmt.Errorf("node referenced before its hash was computed")

	// ErrIllegalCoLocation indicates a co-location group was requested
	// without a slot-sharing group, or across two distinct slot-sharing
	// groups.
	ErrIllegalCoLocation = fmt.Errorf("illegal co-location constraint")

	// ErrInvalidCheckpointMode indicates the graph's checkpoint mode is
	// neither exactly-once nor at-least-once.
	ErrInvalidCheckpointMode = fmt.Errorf("invalid checkpoint mode")

	// ErrInvalidExternalizedCleanup indicates externalized checkpoints are
	// enabled but no cleanup mode was configured.
	ErrInvalidExternalizedCleanup = fmt.Errorf("externalized checkpoints enabled but no cleanup mode configured")

	// ErrNonSerializableExecutionConfig, ErrNonSerializableHook, and
	// ErrNonSerializableStateBackend indicate a user-supplied object
	// failed eager serialization.
	ErrNonSerializableExecutionConfig = fmt.Errorf("execution config is not serializable")
	ErrNonSerializableHook            = fmt.Errorf("master checkpoint hook is not serializable")
	ErrNonSerializableStateBackend    = fmt.Errorf("state backend is not serializable")
)

// CompileError wraps a sentinel error kind with the offending node id (or
// -1 if the error is not node-specific) and a human-readable message
// identifying the offending node or option.
type CompileError struct {
	Kind   error
	NodeID int
	Msg    string
}

func (e *CompileError) Error() string {
	if e.NodeID >= 0 {
		return fmt.Sprintf("compile: node %d: %s: %s", e.NodeID, e.Kind, e.Msg)
	}
	return fmt.Sprintf("compile: %s: %s", e.Kind, e.Msg)
}

func (e *CompileError) Unwrap() error { return e.Kind }

func newCompileError(kind error, nodeID int, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind, NodeID: nodeID, Msg: fmt.Sprintf(format, args...)}
}
