// Package streamgraph holds the input data model the compiler consumes:
// the stream graph produced by an upstream authoring API. Nothing in this
// package builds or mutates a plan — it only describes one.
package streamgraph

import "time"

// ChainingStrategy controls whether an operator may be fused with its
// neighbors into a single job vertex.
type ChainingStrategy int

const (
	// ChainingAlways lets the operator chain with both its predecessor and
	// its successor, provided every other chainability condition holds.
	ChainingAlways ChainingStrategy = iota
	// ChainingHead lets the operator start a chain (chain with its
	// successor) but never join one as a tail.
	ChainingHead
	// ChainingNever forbids the operator from chaining in either direction.
	ChainingNever
)

// ResourceSpec is a minimal resource request/limit pair. Two specs combine
// by summing each dimension, matching how a chain's merged resources are
// computed from its members.
type ResourceSpec struct {
	CPUCores    float64
	HeapMB      int64
	ManagedMB   int64
	ExtendedRes map[string]float64
}

// Merge returns the element-wise sum of r and other. A nil receiver or
// argument is treated as the zero ResourceSpec.
func (r ResourceSpec) Merge(other ResourceSpec) ResourceSpec {
	out := ResourceSpec{
		CPUCores:  r.CPUCores + other.CPUCores,
		HeapMB:    r.HeapMB + other.HeapMB,
		ManagedMB: r.ManagedMB + other.ManagedMB,
	}
	if len(r.ExtendedRes) == 0 && len(other.ExtendedRes) == 0 {
		return out
	}
	out.ExtendedRes = make(map[string]float64, len(r.ExtendedRes)+len(other.ExtendedRes))
	for k, v := range r.ExtendedRes {
		out.ExtendedRes[k] += v
	}
	for k, v := range other.ExtendedRes {
		out.ExtendedRes[k] += v
	}
	return out
}

// Operator is the opaque per-node user function. The compiler never
// inspects its behavior, only whether it is present and, for checkpoint
// hook collection, whether it implements MasterHookFunction.
type Operator interface {
	Name() string
}

// UDFOperator wraps a user-defined function so the checkpoint assembler can
// ask whether the function declares a master-side checkpoint hook.
type UDFOperator struct {
	OperatorName string
	UserFunction any
}

func (o *UDFOperator) Name() string { return o.OperatorName }

// MasterHookFunction is implemented by user functions that need to
// participate in checkpoint triggering/restoring from the job-manager side.
type MasterHookFunction interface {
	MasterHookID() string
}

// TypeSerializer is the opaque per-edge payload serializer. The compiler
// never invokes it; it only threads it through to the job vertex config.
type TypeSerializer interface {
	SerializerName() string
}

// InputFormat marks a node as a data-source vertex; its presence changes
// the kind of job vertex the chain builder materializes.
type InputFormat interface {
	FormatName() string
}

// StatePartitioner extracts a key from a record for keyed state access.
type StatePartitioner interface {
	PartitionerName() string
}

// VertexClass names the runtime invokable class a job vertex will run.
// It is opaque to the compiler beyond being carried through unchanged.
type VertexClass string

const (
	VertexClassStreamTask    VertexClass = "StreamTask"
	VertexClassSourceTask    VertexClass = "SourceStreamTask"
	VertexClassIterationHead VertexClass = "StreamIterationHead"
	VertexClassIterationTail VertexClass = "StreamIterationTail"
)

// OutputTag names a side output; two tags are the same side output iff
// their Name fields are equal.
type OutputTag struct {
	Name string
}

// Node is one operator in the stream graph.
type Node struct {
	ID int

	OperatorName string
	Operator     Operator
	InputFormat  InputFormat

	Parallelism    int // >=1, or -1 to inherit the default
	MaxParallelism int

	ChainingStrategy ChainingStrategy

	SlotSharingGroup string // empty means "no group"
	CoLocationGroup  string // empty means "no group"

	BufferTimeout time.Duration

	InputSerializer1      TypeSerializer
	InputSerializer2      TypeSerializer
	OutputSerializer      TypeSerializer
	SideOutputSerializers map[OutputTag]TypeSerializer

	StatePartitioner1  StatePartitioner
	StatePartitioner2  StatePartitioner
	StateKeySerializer TypeSerializer

	VertexClass VertexClass

	MinResources       ResourceSpec
	PreferredResources ResourceSpec

	// IterationID and LoopTimeout are only meaningful when VertexClass is
	// one of the iteration head/tail classes.
	IterationID string
	LoopTimeout time.Duration

	// UserHash is the legacy user-provided hash override consulted by the
	// legacy hasher.
	// Empty string means "no override".
	UserHash string

	outEdges []*Edge
	inEdges  []*Edge
}

// OutEdges returns the node's out-edges in the order they were added.
func (n *Node) OutEdges() []*Edge { return n.outEdges }

// InEdges returns the node's in-edges in the order they were added.
func (n *Node) InEdges() []*Edge { return n.inEdges }
