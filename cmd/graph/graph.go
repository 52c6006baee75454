package graph

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"iremember/internal/cli"
	"iremember/pkg/memgraph"
)

// GraphCmd groups the one-shot graph operations.
var GraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect and export the memory graph",
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print a summary of the memory graph",
	RunE:  runOverview,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the memory graph as JSON or Graphviz DOT",
	Long: `Export the memory graph in a non-interactive format.

Examples:
  iremember graph export --format dot --output memory.dot
  iremember graph export --format json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", memgraph.FormatJSON, "export format (json, dot)")
	exportCmd.Flags().StringP("output", "o", "", "output file (stdout when empty)")

	GraphCmd.AddCommand(overviewCmd)
	GraphCmd.AddCommand(exportCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	log, err := cli.NewLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := cmd.Context()
	store, err := cli.ConnectStore(ctx, log)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	g, err := store.FetchOverview(ctx)
	if err != nil {
		return err
	}
	if g.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), memgraph.EmptyGraphMessage)
		return nil
	}

	stats := g.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Nodes:          %d\n", stats.NodeCount)
	fmt.Fprintf(out, "Edges:          %d\n", stats.EdgeCount)
	fmt.Fprintf(out, "Isolated nodes: %d\n", stats.IsolatedNodes)
	if len(stats.RelationshipTypes) > 0 {
		fmt.Fprintln(out, "Relationship types:")
		for _, name := range sortedKeys(stats.RelationshipTypes) {
			fmt.Fprintf(out, "  %-20s %d\n", name, stats.RelationshipTypes[name])
		}
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	log, err := cli.NewLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := cmd.Context()
	store, err := cli.ConnectStore(ctx, log)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	g, err := store.FetchOverview(ctx)
	if err != nil {
		return err
	}

	var layout map[string]memgraph.Point
	if format == memgraph.FormatJSON && !g.IsEmpty() {
		layout = memgraph.SpringLayout(g, cli.LayoutOptions())
	}
	data, err := memgraph.Export(g, format, layout)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	log.Infof("wrote %s export to %s", format, output)
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
