// Package memgraph models the directed memory graph of an agent:
// nodes are memories identified by name, edges are typed relationships
// between them.
package memgraph

import "fmt"

// Record is the minimal view of a result row the graph builder needs.
// *db.Record from the Neo4j driver satisfies it, and tests can supply
// their own implementation.
type Record interface {
	Get(key string) (any, bool)
}

// Column names produced by the overview query.
const (
	ColumnSource       = "source_name"
	ColumnRelationship = "relationship_type"
	ColumnTarget       = "target_name"
)

// Node is a single memory node identified by its name.
type Node struct {
	Name string `json:"name"`
}

// Edge is a directed, typed relationship between two memory nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Graph is a directed memory graph. Nodes and edges keep insertion
// order and are deduplicated on insert.
type Graph struct {
	nodes     []Node
	nodeIndex map[string]int
	edges     []Edge
	edgeIndex map[Edge]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[Edge]struct{}),
	}
}

// AddNode inserts a node if it is not already present.
func (g *Graph) AddNode(name string) {
	if name == "" {
		return
	}
	if _, ok := g.nodeIndex[name]; ok {
		return
	}
	g.nodeIndex[name] = len(g.nodes)
	g.nodes = append(g.nodes, Node{Name: name})
}

// AddEdge inserts a directed edge, creating missing endpoint nodes.
// Edges with an empty source or target are ignored.
func (g *Graph) AddEdge(source, target, relType string) {
	if source == "" || target == "" {
		return
	}
	g.AddNode(source)
	g.AddNode(target)
	e := Edge{Source: source, Target: target, Type: relType}
	if _, ok := g.edgeIndex[e]; ok {
		return
	}
	g.edgeIndex[e] = struct{}{}
	g.edges = append(g.edges, e)
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// HasNode reports whether a node with the given name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodeIndex[name]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IsEmpty reports whether the graph has no nodes at all.
func (g *Graph) IsEmpty() bool { return len(g.nodes) == 0 }

// Stats summarizes a graph for overview-style output.
type Stats struct {
	NodeCount         int            `json:"node_count"`
	EdgeCount         int            `json:"edge_count"`
	RelationshipTypes map[string]int `json:"relationship_types"`
	IsolatedNodes     int            `json:"isolated_nodes"`
}

// Stats computes node/edge counts, the relationship-type histogram and
// the number of nodes with no edges in either direction.
func (g *Graph) Stats() Stats {
	s := Stats{
		NodeCount:         len(g.nodes),
		EdgeCount:         len(g.edges),
		RelationshipTypes: make(map[string]int),
	}
	connected := make(map[string]struct{}, len(g.nodes))
	for _, e := range g.edges {
		s.RelationshipTypes[e.Type]++
		connected[e.Source] = struct{}{}
		connected[e.Target] = struct{}{}
	}
	for _, n := range g.nodes {
		if _, ok := connected[n.Name]; !ok {
			s.IsolatedNodes++
		}
	}
	return s
}

// Neighborhood holds the edges touching a single node.
type Neighborhood struct {
	Node     string `json:"node"`
	Outgoing []Edge `json:"outgoing"`
	Incoming []Edge `json:"incoming"`
}

// Neighbors returns the outgoing and incoming edges of the named node.
func (g *Graph) Neighbors(name string) (Neighborhood, error) {
	if !g.HasNode(name) {
		return Neighborhood{}, fmt.Errorf("node not found: %q", name)
	}
	nb := Neighborhood{Node: name}
	for _, e := range g.edges {
		if e.Source == name {
			nb.Outgoing = append(nb.Outgoing, e)
		}
		if e.Target == name {
			nb.Incoming = append(nb.Incoming, e)
		}
	}
	return nb, nil
}

// FromRecords builds a graph from overview query rows. Rows carry a
// source name, an optional relationship type and an optional target
// name; a row without a target contributes an isolated node, matching
// how OPTIONAL MATCH leaves unrelated nodes with nil columns.
func FromRecords(records []Record) *Graph {
	g := New()
	for _, rec := range records {
		source := stringColumn(rec, ColumnSource)
		target := stringColumn(rec, ColumnTarget)
		relType := stringColumn(rec, ColumnRelationship)

		if source != "" {
			g.AddNode(source)
		}
		if target != "" {
			g.AddNode(target)
			g.AddEdge(source, target, relType)
		}
	}
	return g
}

// stringColumn reads a column as a string, treating missing columns and
// nil values (unmatched OPTIONAL MATCH) as empty.
func stringColumn(rec Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}
