// Package compose implements the logical plan compiler: it turns a
// streamgraph.Graph into a jobgraph.Graph by fusing chainable operators
// into job vertices, assigning content-derived identities, wiring the
// remaining cross-vertex edges, resolving placement constraints, and
// assembling the checkpoint coordination descriptor.
package compose

import (
	"github.com/google/uuid"

	"github.com/planc/streamplan/internal/hash"
	"github.com/planc/streamplan/internal/serialize"
	"github.com/planc/streamplan/jobgraph"
	"github.com/planc/streamplan/streamgraph"
)

// Compile converts streamGraph into a job graph, generating a random job
// id since the caller supplied none.
func Compile(streamGraph *streamgraph.Graph) (*jobgraph.Graph, error) {
	return CompileWithJobID(streamGraph, uuid.New())
}

// CompileWithJobID converts streamGraph into a job graph stamped with the
// given job id.
func CompileWithJobID(streamGraph *streamgraph.Graph, jobID uuid.UUID) (*jobgraph.Graph, error) {
	jobGraph := &jobgraph.Graph{
		JobID:        [16]byte(jobID),
		JobName:      streamGraph.JobName,
		ScheduleMode: jobgraph.ScheduleMode,
	}

	hashes, err := hash.NewContentHasher().Hash(streamGraph)
	if err != nil {
		return nil, err
	}

	legacyHashes := []map[int][16]byte{}
	lh, err := hash.NewUserHashLegacyHasher().Hash(streamGraph)
	if err != nil {
		return nil, err
	}
	legacyHashes = append(legacyHashes, lh)

	builder := newChainBuilder(streamGraph, jobGraph, hashes, legacyHashes)

	if err := builder.setChaining(); err != nil {
		return nil, err
	}

	builder.setPhysicalEdges()

	if err := builder.setSlotSharingAndCoLocation(); err != nil {
		return nil, err
	}

	settings, err := builder.configureCheckpointing()
	if err != nil {
		return nil, err
	}
	jobGraph.CheckpointingSettings = settings

	jobGraph.UserArtifacts = streamGraph.CachedFiles

	blob, err := serialize.Eager("execution config", streamGraph.ExecutionConfig)
	if err != nil {
		return nil, newCompileError(ErrNonSerializableExecutionConfig, -1, "%v", err)
	}
	jobGraph.ExecutionConfigBlob = blob

	return jobGraph, nil
}
