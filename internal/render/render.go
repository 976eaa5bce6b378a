// Package render turns a compiled jobgraph.Graph into a JSON-friendly
// view: hex-encoded identities, resolved group names, and everything a
// human or another tool would want from the CLI's "compile" output
// without reaching into the compiler's internal types.
package render

import (
	"encoding/hex"

	"github.com/planc/streamplan/jobgraph"
)

// Graph is the rendered view of a jobgraph.Graph.
type Graph struct {
	JobID         string         `json:"jobId"`
	JobName       string         `json:"jobName"`
	ScheduleMode  string         `json:"scheduleMode"`
	Vertices      []Vertex       `json:"vertices"`
	Edges         []Edge         `json:"edges"`
	Checkpointing *Checkpointing `json:"checkpointing,omitempty"`
}

// Vertex is the rendered view of a jobgraph.Vertex.
type Vertex struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	InvokableClass     string   `json:"invokableClass"`
	Parallelism        int      `json:"parallelism"`
	MaxParallelism     int      `json:"maxParallelism"`
	NumberOfInputs     int      `json:"numberOfInputs"`
	ChainedOperatorIDs []string `json:"chainedOperatorIds"`
	SlotSharingGroup   string   `json:"slotSharingGroup,omitempty"`
	CoLocationGroup    string   `json:"coLocationGroup,omitempty"`
}

// Edge is the rendered view of a jobgraph.Edge.
type Edge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Distribution string `json:"distribution"`
	ShipStrategy string `json:"shipStrategy"`
}

// Checkpointing is the rendered view of a jobgraph.CheckpointingSettings.
type Checkpointing struct {
	TriggerVertexCount int    `json:"triggerVertexCount"`
	AckVertexCount     int    `json:"ackVertexCount"`
	IntervalMillis     int64  `json:"intervalMillis"`
	RetentionPolicy    string `json:"retentionPolicy"`
	ExactlyOnce        bool   `json:"exactlyOnce"`
}

// Render converts g into its rendered view.
func Render(g *jobgraph.Graph) *Graph {
	out := &Graph{
		JobID:        hex.EncodeToString(g.JobID[:]),
		JobName:      g.JobName,
		ScheduleMode: g.ScheduleMode,
	}

	for _, v := range g.Vertices {
		out.Vertices = append(out.Vertices, renderVertex(v))
	}
	for _, e := range g.Edges {
		out.Edges = append(out.Edges, Edge{
			Source:       hex.EncodeToString(e.Source.ID[:]),
			Target:       hex.EncodeToString(e.Target.ID[:]),
			Distribution: e.Distribution.String(),
			ShipStrategy: e.ShipStrategyName,
		})
	}
	if g.CheckpointingSettings != nil {
		out.Checkpointing = renderCheckpointing(g.CheckpointingSettings)
	}

	return out
}

func renderVertex(v *jobgraph.Vertex) Vertex {
	rv := Vertex{
		ID:             hex.EncodeToString(v.ID[:]),
		Name:           v.Name,
		InvokableClass: string(v.InvokableClass),
		Parallelism:    v.Parallelism,
		MaxParallelism: v.MaxParallelism,
		NumberOfInputs: v.NumberOfInputs,
	}
	for _, id := range v.ChainedOperatorIDs {
		rv.ChainedOperatorIDs = append(rv.ChainedOperatorIDs, hex.EncodeToString(id[:]))
	}
	if v.SlotSharingGroup != nil {
		rv.SlotSharingGroup = v.SlotSharingGroup.Name
	}
	if v.CoLocationGroup != nil {
		rv.CoLocationGroup = v.CoLocationGroup.Name
	}
	return rv
}

func renderCheckpointing(s *jobgraph.CheckpointingSettings) *Checkpointing {
	policy := "NEVER_RETAIN"
	switch s.Coordinator.RetentionPolicy {
	case jobgraph.RetainOnFailure:
		policy = "RETAIN_ON_FAILURE"
	case jobgraph.RetainOnCancellation:
		policy = "RETAIN_ON_CANCELLATION"
	}
	return &Checkpointing{
		TriggerVertexCount: len(s.TriggerVertices),
		AckVertexCount:     len(s.AckVertices),
		IntervalMillis:     s.Coordinator.Interval.Milliseconds(),
		RetentionPolicy:    policy,
		ExactlyOnce:        s.Coordinator.ExactlyOnce,
	}
}
