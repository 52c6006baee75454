package memgraph

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EmptyGraphMessage is returned whenever there is nothing to render.
const EmptyGraphMessage = "Nothing to Plot, add memories"

// Export formats understood by ExportDocument and the CLI.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Document is the JSON export of a graph with its layout. It is also
// the payload served by the viewer API and stored in snapshots.
type Document struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Nodes       []Node           `json:"nodes"`
	Edges       []Edge           `json:"edges"`
	Layout      map[string]Point `json:"layout,omitempty"`
	Stats       Stats            `json:"stats"`
	Message     string           `json:"message,omitempty"`
}

// NewDocument assembles the export document for a graph. Layout may be
// nil for exports that do not need positions.
func NewDocument(g *Graph, layout map[string]Point) Document {
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Nodes:       g.Nodes(),
		Edges:       g.Edges(),
		Layout:      layout,
		Stats:       g.Stats(),
	}
	if g.IsEmpty() {
		doc.Message = EmptyGraphMessage
	}
	return doc
}

// GraphFromDocument rebuilds a graph from a stored document.
func GraphFromDocument(doc Document) *Graph {
	g := New()
	for _, n := range doc.Nodes {
		g.AddNode(n.Name)
	}
	for _, e := range doc.Edges {
		g.AddEdge(e.Source, e.Target, e.Type)
	}
	return g
}

// Export renders the graph in the requested format.
func Export(g *Graph, format string, layout map[string]Point) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(NewDocument(g, layout), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal graph document: %w", err)
		}
		return data, nil
	case FormatDOT:
		return []byte(ExportDOT(g)), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %q (want %s or %s)", format, FormatJSON, FormatDOT)
	}
}

// ExportDOT renders the graph as Graphviz DOT with relationship types
// as edge labels.
func ExportDOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph memory {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=ellipse, style=filled, fillcolor=lightblue];\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(&b, "  %s;\n", dotQuote(n.Name))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n", dotQuote(e.Source), dotQuote(e.Target), dotQuote(e.Type))
	}
	b.WriteString("}\n")
	return b.String()
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
