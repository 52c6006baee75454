package snapshot

import (
	"sort"

	"iremember/pkg/memgraph"
)

// ComputeDiff compares two graph documents and reports added and
// removed nodes and edges, each sorted deterministically.
func ComputeDiff(from, to memgraph.Document) Diff {
	var d Diff

	fromNodes := make(map[string]struct{}, len(from.Nodes))
	for _, n := range from.Nodes {
		fromNodes[n.Name] = struct{}{}
	}
	toNodes := make(map[string]struct{}, len(to.Nodes))
	for _, n := range to.Nodes {
		toNodes[n.Name] = struct{}{}
	}

	for name := range toNodes {
		if _, ok := fromNodes[name]; !ok {
			d.AddedNodes = append(d.AddedNodes, name)
		}
	}
	for name := range fromNodes {
		if _, ok := toNodes[name]; !ok {
			d.RemovedNodes = append(d.RemovedNodes, name)
		}
	}
	sort.Strings(d.AddedNodes)
	sort.Strings(d.RemovedNodes)

	fromEdges := make(map[memgraph.Edge]struct{}, len(from.Edges))
	for _, e := range from.Edges {
		fromEdges[e] = struct{}{}
	}
	toEdges := make(map[memgraph.Edge]struct{}, len(to.Edges))
	for _, e := range to.Edges {
		toEdges[e] = struct{}{}
	}

	for e := range toEdges {
		if _, ok := fromEdges[e]; !ok {
			d.AddedEdges = append(d.AddedEdges, e)
		}
	}
	for e := range fromEdges {
		if _, ok := toEdges[e]; !ok {
			d.RemovedEdges = append(d.RemovedEdges, e)
		}
	}
	sortEdges(d.AddedEdges)
	sortEdges(d.RemovedEdges)

	return d
}

func sortEdges(edges []memgraph.Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Type < b.Type
	})
}
