package graphfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planc/streamplan/streamgraph"
)

const sampleYAML = `
jobName: demo
timeCharacteristic: EventTime
nodes:
  - id: 1
    name: source
    source: true
  - id: 2
    name: sink
    parallelism: 2
edges:
  - from: 1
    to: 2
    partitioner: rebalance
checkpointing:
  enabled: true
  mode: exactlyOnce
  intervalMillis: 1000
  externalizedEnabled: true
  externalizedCleanup: retainOnCancellation
`

func TestLoadBuildsGraph(t *testing.T) {
	g, err := Load([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "demo", g.JobName)
	assert.Equal(t, streamgraph.EventTime, g.TimeCharacteristic)
	assert.Equal(t, []int{1}, g.SourceIDs())

	sink := g.Node(2)
	require.NotNil(t, sink)
	assert.Equal(t, 2, sink.Parallelism)
	assert.Len(t, sink.InEdges(), 1)
	assert.Equal(t, streamgraph.PartitionerRebalance, sink.InEdges()[0].Partitioner.Kind)

	assert.True(t, g.CheckpointConfig.Enabled)
	assert.True(t, g.CheckpointConfig.ExternalizedCheckpointsEnabled)
	assert.Equal(t, streamgraph.CleanupRetainOnCancellation, g.CheckpointConfig.ExternalizedCleanup)
}

func TestLoadRejectsUnknownPartitioner(t *testing.T) {
	_, err := Load([]byte(`
nodes:
  - {id: 1}
  - {id: 2}
edges:
  - {from: 1, to: 2, partitioner: teleport}
`))
	require.Error(t, err)
}

func TestLoadRequiresCustomNameForCustomPartitioner(t *testing.T) {
	_, err := Load([]byte(`
nodes:
  - {id: 1}
  - {id: 2}
edges:
  - {from: 1, to: 2, partitioner: custom}
`))
	require.Error(t, err)
}
