package memgraph

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExportJSON(t *testing.T) {
	g := New()
	g.AddEdge("alice", "coffee", "LIKES")

	data, err := Export(g, FormatJSON, SpringLayout(g, DefaultLayoutOptions()))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Errorf("unexpected document shape: %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Message != "" {
		t.Errorf("non-empty graph should carry no message, got %q", doc.Message)
	}
	if len(doc.Layout) != 2 {
		t.Errorf("expected layout for 2 nodes, got %d", len(doc.Layout))
	}
}

func TestExportJSONEmptyGraphCarriesMessage(t *testing.T) {
	data, err := Export(New(), FormatJSON, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Message != EmptyGraphMessage {
		t.Errorf("expected message %q, got %q", EmptyGraphMessage, doc.Message)
	}
}

func TestExportDOT(t *testing.T) {
	g := New()
	g.AddEdge("alice", `the "best" cafe`, "VISITS")

	out := ExportDOT(g)
	if !strings.HasPrefix(out, "digraph memory {") {
		t.Errorf("DOT output missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, `"alice" -> "the \"best\" cafe" [label="VISITS"];`) {
		t.Errorf("DOT output missing escaped edge:\n%s", out)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	if _, err := Export(New(), "svg", nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestGraphFromDocumentRoundTrip(t *testing.T) {
	g := New()
	g.AddEdge("alice", "bob", "KNOWS")
	g.AddNode("standalone")

	rebuilt := GraphFromDocument(NewDocument(g, nil))
	if rebuilt.NodeCount() != g.NodeCount() || rebuilt.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip changed shape: %d/%d nodes, %d/%d edges",
			rebuilt.NodeCount(), g.NodeCount(), rebuilt.EdgeCount(), g.EdgeCount())
	}
	if !rebuilt.HasNode("standalone") {
		t.Error("isolated node lost in round trip")
	}
}
