// Package graphfile loads a stream graph definition from YAML: the wire
// format the planc CLI accepts in place of the authoring API a real
// embedding application would call directly. Operators, serializers, and
// partitioners beyond the built-in kinds are necessarily named
// placeholders here, since YAML carries no Go function values.
package graphfile

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planc/streamplan/streamgraph"
)

// Document is the top-level YAML shape.
type Document struct {
	JobName            string      `yaml:"jobName"`
	ChainingEnabled    *bool       `yaml:"chainingEnabled"`
	TimeCharacteristic string      `yaml:"timeCharacteristic"`
	Checkpointing      *checkpoint `yaml:"checkpointing"`
	Nodes              []node      `yaml:"nodes"`
	Edges              []edge      `yaml:"edges"`
	IterationPairs     []iterPair  `yaml:"iterationPairs"`
}

type checkpoint struct {
	Enabled                    bool   `yaml:"enabled"`
	Mode                       string `yaml:"mode"`
	IntervalMillis             int64  `yaml:"intervalMillis"`
	TimeoutMillis              int64  `yaml:"timeoutMillis"`
	MinPauseMillis             int64  `yaml:"minPauseMillis"`
	MaxConcurrentCheckpoints   int    `yaml:"maxConcurrentCheckpoints"`
	ExternalizedEnabled        bool   `yaml:"externalizedEnabled"`
	ExternalizedCleanup        string `yaml:"externalizedCleanup"`
	FailOnCheckpointingErrors  bool   `yaml:"failOnCheckpointingErrors"`
}

type node struct {
	ID               int    `yaml:"id"`
	Name             string `yaml:"name"`
	Source           bool   `yaml:"source"`
	Parallelism      int    `yaml:"parallelism"`
	MaxParallelism   int    `yaml:"maxParallelism"`
	ChainingStrategy string `yaml:"chainingStrategy"`
	SlotSharingGroup string `yaml:"slotSharingGroup"`
	CoLocationGroup  string `yaml:"coLocationGroup"`
	VertexClass      string `yaml:"vertexClass"`
	UserHash         string `yaml:"userHash"`
}

type edge struct {
	From        int    `yaml:"from"`
	To          int    `yaml:"to"`
	Partitioner string `yaml:"partitioner"`
	CustomName  string `yaml:"customName"`
	SideOutput  string `yaml:"sideOutput"`
}

type iterPair struct {
	SourceID int `yaml:"sourceId"`
	SinkID   int `yaml:"sinkId"`
}

// namedOperator is the placeholder operator every node gets: its only
// behavior is reporting its own name, which is all the compiler needs.
type namedOperator string

func (n namedOperator) Name() string { return string(n) }

type namedInputFormat string

func (n namedInputFormat) FormatName() string { return string(n) }

// Load parses raw YAML bytes into a streamgraph.Graph ready for
// compose.Compile.
func Load(raw []byte) (*streamgraph.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("graphfile: parsing yaml: %w", err)
	}
	return doc.build()
}

func (doc *Document) build() (*streamgraph.Graph, error) {
	g := streamgraph.NewGraph(doc.JobName)
	if doc.ChainingEnabled != nil {
		g.ChainingEnabled = *doc.ChainingEnabled
	}
	if doc.TimeCharacteristic != "" {
		g.TimeCharacteristic = streamgraph.TimeCharacteristic(doc.TimeCharacteristic)
	}

	for _, n := range doc.Nodes {
		strategy, err := parseChainingStrategy(n.ChainingStrategy)
		if err != nil {
			return nil, fmt.Errorf("graphfile: node %d: %w", n.ID, err)
		}

		sn := &streamgraph.Node{
			ID:               n.ID,
			OperatorName:     n.Name,
			Operator:         namedOperator(n.Name),
			Parallelism:      n.Parallelism,
			MaxParallelism:   n.MaxParallelism,
			ChainingStrategy: strategy,
			SlotSharingGroup: n.SlotSharingGroup,
			CoLocationGroup:  n.CoLocationGroup,
			VertexClass:      streamgraph.VertexClass(n.VertexClass),
			UserHash:         n.UserHash,
		}
		if n.Source {
			sn.InputFormat = namedInputFormat(n.Name)
			if sn.VertexClass == "" {
				sn.VertexClass = streamgraph.VertexClassSourceTask
			}
		} else if sn.VertexClass == "" {
			sn.VertexClass = streamgraph.VertexClassStreamTask
		}
		g.AddNode(sn)
	}

	for i, e := range doc.Edges {
		part, err := parsePartitioner(e.Partitioner, e.CustomName)
		if err != nil {
			return nil, fmt.Errorf("graphfile: edge %d: %w", i, err)
		}
		ge := &streamgraph.Edge{SourceID: e.From, TargetID: e.To, Partitioner: part}
		if e.SideOutput != "" {
			tag := streamgraph.OutputTag{Name: e.SideOutput}
			ge.OutputTag = &tag
		}
		g.AddEdge(ge)
	}

	for _, p := range doc.IterationPairs {
		g.IterationPairs = append(g.IterationPairs, streamgraph.IterationPair{SourceID: p.SourceID, SinkID: p.SinkID})
	}

	if doc.Checkpointing != nil {
		cfg, err := doc.Checkpointing.build()
		if err != nil {
			return nil, err
		}
		g.CheckpointConfig = cfg
	}

	return g, nil
}

func (c *checkpoint) build() (streamgraph.CheckpointConfig, error) {
	mode, err := parseCheckpointingMode(c.Mode)
	if err != nil {
		return streamgraph.CheckpointConfig{}, fmt.Errorf("graphfile: checkpointing: %w", err)
	}
	cleanup, err := parseExternalizedCleanup(c.ExternalizedCleanup)
	if err != nil {
		return streamgraph.CheckpointConfig{}, fmt.Errorf("graphfile: checkpointing: %w", err)
	}
	return streamgraph.CheckpointConfig{
		Enabled:                        c.Enabled,
		Mode:                           mode,
		Interval:                       time.Duration(c.IntervalMillis) * time.Millisecond,
		Timeout:                        time.Duration(c.TimeoutMillis) * time.Millisecond,
		MinPauseBetweenCheckpoints:     time.Duration(c.MinPauseMillis) * time.Millisecond,
		MaxConcurrentCheckpoints:       c.MaxConcurrentCheckpoints,
		ExternalizedCheckpointsEnabled: c.ExternalizedEnabled,
		ExternalizedCleanup:            cleanup,
		FailOnCheckpointingErrors:      c.FailOnCheckpointingErrors,
	}, nil
}

func parseChainingStrategy(s string) (streamgraph.ChainingStrategy, error) {
	switch s {
	case "", "always":
		return streamgraph.ChainingAlways, nil
	case "head":
		return streamgraph.ChainingHead, nil
	case "never":
		return streamgraph.ChainingNever, nil
	default:
		return 0, fmt.Errorf("unknown chaining strategy %q", s)
	}
}

func parsePartitioner(kind, customName string) (streamgraph.Partitioner, error) {
	switch kind {
	case "", "forward":
		return streamgraph.ForwardPartitioner(), nil
	case "rescale":
		return streamgraph.RescalePartitioner(), nil
	case "broadcast":
		return streamgraph.BroadcastPartitioner(), nil
	case "rebalance":
		return streamgraph.RebalancePartitioner(), nil
	case "keyGroup":
		return streamgraph.KeyGroupPartitioner(), nil
	case "custom":
		if customName == "" {
			return streamgraph.Partitioner{}, fmt.Errorf("custom partitioner requires customName")
		}
		return streamgraph.CustomPartitioner(customName), nil
	default:
		return streamgraph.Partitioner{}, fmt.Errorf("unknown partitioner %q", kind)
	}
}

func parseCheckpointingMode(s string) (streamgraph.CheckpointingMode, error) {
	switch s {
	case "", "exactlyOnce":
		return streamgraph.CheckpointingExactlyOnce, nil
	case "atLeastOnce":
		return streamgraph.CheckpointingAtLeastOnce, nil
	default:
		return 0, fmt.Errorf("unknown checkpointing mode %q", s)
	}
}

func parseExternalizedCleanup(s string) (streamgraph.ExternalizedCleanup, error) {
	switch s {
	case "", "unset":
		return streamgraph.CleanupUnset, nil
	case "deleteOnCancellation":
		return streamgraph.CleanupDeleteOnCancellation, nil
	case "retainOnCancellation":
		return streamgraph.CleanupRetainOnCancellation, nil
	default:
		return 0, fmt.Errorf("unknown externalized cleanup %q", s)
	}
}
