package snapshot

import (
	"time"

	"iremember/pkg/memgraph"
)

// Snapshot is one stored observation of the memory graph.
type Snapshot struct {
	ID        string            `json:"id"`
	Label     string            `json:"label"`
	CreatedAt time.Time         `json:"created_at"`
	NodeCount int               `json:"node_count"`
	EdgeCount int               `json:"edge_count"`
	Document  memgraph.Document `json:"document"`
}

// Summary is the listing view of a snapshot, without the graph payload.
type Summary struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
}

// Diff describes how the graph changed between two snapshots.
type Diff struct {
	FromID       string          `json:"from_id"`
	ToID         string          `json:"to_id"`
	AddedNodes   []string        `json:"added_nodes"`
	RemovedNodes []string        `json:"removed_nodes"`
	AddedEdges   []memgraph.Edge `json:"added_edges"`
	RemovedEdges []memgraph.Edge `json:"removed_edges"`
}

// Unchanged reports whether the diff is empty.
func (d Diff) Unchanged() bool {
	return len(d.AddedNodes) == 0 && len(d.RemovedNodes) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0
}
