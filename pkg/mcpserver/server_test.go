package mcpserver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"iremember/pkg/memgraph"
	"iremember/pkg/snapshot"
)

type fakeSource struct {
	graph   *memgraph.Graph
	fetchEr error
}

func (f *fakeSource) FetchOverview(ctx context.Context) (*memgraph.Graph, error) {
	if f.fetchEr != nil {
		return nil, f.fetchEr
	}
	return f.graph, nil
}

func (f *fakeSource) Ping(ctx context.Context) error { return nil }

type fakeSnapshots struct {
	sums []snapshot.Summary
	err  error
}

func (f *fakeSnapshots) List(ctx context.Context, limit, offset int) ([]snapshot.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.sums) {
		return f.sums[:limit], nil
	}
	return f.sums, nil
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("tool result content is not text: %T", res.Content[0])
	}
	return text.Text
}

func sampleGraph() *memgraph.Graph {
	g := memgraph.New()
	g.AddEdge("alice", "bob", "KNOWS")
	g.AddEdge("bob", "coffee", "LIKES")
	return g
}

func TestOverviewTool(t *testing.T) {
	s := New("test", &fakeSource{graph: sampleGraph()}, nil, nil)

	res, err := s.handleOverview(t.Context(), callRequest("memory_graph_overview", nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	text := resultText(t, res)
	if !strings.Contains(text, `"node_count": 3`) {
		t.Errorf("overview missing node count:\n%s", text)
	}
}

func TestOverviewToolEmptyGraph(t *testing.T) {
	s := New("test", &fakeSource{graph: memgraph.New()}, nil, nil)

	res, err := s.handleOverview(t.Context(), callRequest("memory_graph_overview", nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resultText(t, res); got != memgraph.EmptyGraphMessage {
		t.Errorf("expected %q, got %q", memgraph.EmptyGraphMessage, got)
	}
}

func TestOverviewToolFetchFailure(t *testing.T) {
	s := New("test", &fakeSource{fetchEr: errors.New("neo4j down")}, nil, nil)

	res, err := s.handleOverview(t.Context(), callRequest("memory_graph_overview", nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error result")
	}
}

func TestNeighborsTool(t *testing.T) {
	s := New("test", &fakeSource{graph: sampleGraph()}, nil, nil)

	res, err := s.handleNeighbors(t.Context(), callRequest("memory_node_neighbors", map[string]any{"name": "bob"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, `"KNOWS"`) || !strings.Contains(text, `"LIKES"`) {
		t.Errorf("neighbors output missing relationships:\n%s", text)
	}

	// Missing required argument.
	res, err = s.handleNeighbors(t.Context(), callRequest("memory_node_neighbors", nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for missing name")
	}

	// Unknown node.
	res, _ = s.handleNeighbors(t.Context(), callRequest("memory_node_neighbors", map[string]any{"name": "nobody"}))
	if !res.IsError {
		t.Error("expected tool error for unknown node")
	}
}

func TestExportTool(t *testing.T) {
	s := New("test", &fakeSource{graph: sampleGraph()}, nil, nil)

	res, err := s.handleExport(t.Context(), callRequest("memory_graph_export", map[string]any{"format": "dot"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if text := resultText(t, res); !strings.HasPrefix(text, "digraph memory {") {
		t.Errorf("expected DOT output, got:\n%s", text)
	}

	// Default format is JSON.
	res, _ = s.handleExport(t.Context(), callRequest("memory_graph_export", nil))
	if text := resultText(t, res); !strings.Contains(text, `"nodes"`) {
		t.Errorf("expected JSON document, got:\n%s", text)
	}

	res, _ = s.handleExport(t.Context(), callRequest("memory_graph_export", map[string]any{"format": "png"}))
	if !res.IsError {
		t.Error("expected tool error for unsupported format")
	}
}

func TestSnapshotListTool(t *testing.T) {
	sums := []snapshot.Summary{
		{ID: "a", Label: "first", CreatedAt: time.Now(), NodeCount: 2, EdgeCount: 1},
		{ID: "b", Label: "second", CreatedAt: time.Now(), NodeCount: 3, EdgeCount: 2},
	}
	s := New("test", &fakeSource{graph: sampleGraph()}, &fakeSnapshots{sums: sums}, nil)

	res, err := s.handleSnapshotList(t.Context(), callRequest("snapshot_list", map[string]any{"limit": float64(1)}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, `"first"`) || strings.Contains(text, `"second"`) {
		t.Errorf("limit not applied:\n%s", text)
	}
}

func TestSnapshotListToolEmpty(t *testing.T) {
	s := New("test", &fakeSource{graph: sampleGraph()}, &fakeSnapshots{}, nil)

	res, _ := s.handleSnapshotList(t.Context(), callRequest("snapshot_list", nil))
	if got := resultText(t, res); got != "no snapshots stored yet" {
		t.Errorf("unexpected empty-list message: %q", got)
	}
}
