package hash

import (
	"crypto/md5"

	"github.com/planc/streamplan/streamgraph"
)

// UserHashLegacyHasher is a "legacy" hasher: it produces an identity only
// for nodes that carry an explicit UserHash override, and is silent (no
// map entry) for every other node. Retained so operators pinned with a
// user hash before this compiler existed keep their identity across a
// resubmission. Sparse legacy maps are expected and must not be
// backfilled with a synthetic entry.
type UserHashLegacyHasher struct{}

// NewUserHashLegacyHasher returns the legacy user-hash hasher.
func NewUserHashLegacyHasher() *UserHashLegacyHasher { return &UserHashLegacyHasher{} }

// Hash returns a sparse map: one entry per node with a non-empty UserHash.
func (h *UserHashLegacyHasher) Hash(g *streamgraph.Graph) (map[int][16]byte, error) {
	out := make(map[int][16]byte)
	for _, id := range g.NodeIDs() {
		node := g.Node(id)
		if node.UserHash == "" {
			continue
		}
		sum := md5.Sum([]byte(node.UserHash))
		out[id] = sum
	}
	return out, nil
}
