// Package hash implements the stable node hasher: a deterministic,
// non-reversible 16-byte content hash per stream-graph node. Equal graphs
// submitted at different times must hash identically so the runtime can
// match recovered state back to the right operator.
package hash

import (
	"fmt"

	"github.com/planc/streamplan/streamgraph"
)

// NodeHasher assigns every node in g a 16-byte hash. Implementations must
// be deterministic across runs given the same graph and the same
// traversal order of out-edges.
type NodeHasher interface {
	Hash(g *streamgraph.Graph) (map[int][16]byte, error)
}

// UnresolvedHashesError is returned when a cycle (other than a recognized
// iteration back-edge) prevents some nodes from ever being hashed.
type UnresolvedHashesError struct {
	NodeIDs []int
}

func (e *UnresolvedHashesError) Error() string {
	return fmt.Sprintf("hash: could not resolve hashes for nodes %v (unexpected cycle, or a back-edge not declared as an iteration pair)", e.NodeIDs)
}

// backEdgeSet identifies, for a graph's declared iteration pairs, the
// specific feedback edges (tail -> head) that must be excluded when
// enumerating a node's hash predecessors.
type backEdgeSet map[[2]int]struct{}

func buildBackEdgeSet(g *streamgraph.Graph) backEdgeSet {
	set := make(backEdgeSet, len(g.IterationPairs))
	for _, pair := range g.IterationPairs {
		set[[2]int{pair.SinkID, pair.SourceID}] = struct{}{}
	}
	return set
}

// hashPredecessors returns node n's effective in-edges for hashing:
// its declared in-edges minus any iteration back-edge feeding it.
func hashPredecessors(n *streamgraph.Node, back backEdgeSet) []*streamgraph.Edge {
	in := n.InEdges()
	if len(back) == 0 {
		return in
	}
	out := make([]*streamgraph.Edge, 0, len(in))
	for _, e := range in {
		if _, excluded := back[[2]int{e.SourceID, e.TargetID}]; excluded {
			continue
		}
		out = append(out, e)
	}
	return out
}
