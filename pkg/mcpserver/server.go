// Package mcpserver exposes the memory graph to MCP clients over
// stdio. Every tool is read-only: agents can look at their own memory
// graph, not edit it.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"iremember/pkg/logger"
	"iremember/pkg/memgraph"
	"iremember/pkg/snapshot"
)

// GraphSource provides the memory graph, same contract as the viewer.
type GraphSource interface {
	FetchOverview(ctx context.Context) (*memgraph.Graph, error)
	Ping(ctx context.Context) error
}

// SnapshotLister is the slice of the snapshot store the MCP surface
// needs. Nil disables the snapshot tool.
type SnapshotLister interface {
	List(ctx context.Context, limit, offset int) ([]snapshot.Summary, error)
}

// Server bundles the MCP server with its graph source.
type Server struct {
	source    GraphSource
	snapshots SnapshotLister
	log       *logger.Logger
	mcp       *server.MCPServer
}

// New assembles the MCP server and registers its tools.
func New(version string, source GraphSource, snapshots SnapshotLister, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{
		source:    source,
		snapshots: snapshots,
		log:       log,
		mcp: server.NewMCPServer(
			"iremember",
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("memory_graph_overview",
		mcp.WithDescription("Summarize the memory graph: node and edge counts, relationship types, isolated nodes."),
	), s.handleOverview)

	s.mcp.AddTool(mcp.NewTool("memory_node_neighbors",
		mcp.WithDescription("List the incoming and outgoing relationships of one memory node."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the memory node to inspect"),
		),
	), s.handleNeighbors)

	s.mcp.AddTool(mcp.NewTool("memory_graph_export",
		mcp.WithDescription("Export the full memory graph as a JSON document or Graphviz DOT."),
		mcp.WithString("format",
			mcp.Description("Export format: json or dot (default json)"),
			mcp.Enum(memgraph.FormatJSON, memgraph.FormatDOT),
		),
	), s.handleExport)

	if s.snapshots != nil {
		s.mcp.AddTool(mcp.NewTool("snapshot_list",
			mcp.WithDescription("List stored memory-graph snapshots, newest first."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of snapshots to return (default 20)"),
			),
		), s.handleSnapshotList)
	}
}

func (s *Server) handleOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.source.FetchOverview(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch memory graph: %v", err)), nil
	}
	if g.IsEmpty() {
		return mcp.NewToolResultText(memgraph.EmptyGraphMessage), nil
	}
	return jsonResult(g.Stats())
}

func (s *Server) handleNeighbors(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g, err := s.source.FetchOverview(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch memory graph: %v", err)), nil
	}
	nb, err := g.Neighbors(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(nb)
}

func (s *Server) handleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", memgraph.FormatJSON)

	g, err := s.source.FetchOverview(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch memory graph: %v", err)), nil
	}

	var layout map[string]memgraph.Point
	if format == memgraph.FormatJSON && !g.IsEmpty() {
		layout = memgraph.SpringLayout(g, memgraph.DefaultLayoutOptions())
	}
	data, err := memgraph.Export(g, format, layout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleSnapshotList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)

	sums, err := s.snapshots.List(ctx, limit, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list snapshots: %v", err)), nil
	}
	if len(sums) == 0 {
		return mcp.NewToolResultText("no snapshots stored yet"), nil
	}
	return jsonResult(sums)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Infof("serving MCP tools over stdio")
	return server.ServeStdio(s.mcp)
}
