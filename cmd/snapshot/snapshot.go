package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iremember/internal/cli"
	"iremember/pkg/memgraph"
	snapstore "iremember/pkg/snapshot"
)

// SnapshotCmd groups the snapshot operations.
var SnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and compare memory-graph snapshots",
	Long: `Snapshots capture the memory graph at a moment in time so you can see
how an agent's memory evolves.

Examples:
  iremember snapshot save --label "after first chat"
  iremember snapshot list
  iremember snapshot diff <from-id> <to-id>`,
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Fetch the memory graph and store it as a snapshot",
	RunE:  runSave,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var diffCmd = &cobra.Command{
	Use:   "diff <from-id> <to-id>",
	Short: "Compare two snapshots",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	saveCmd.Flags().String("label", "", "optional label for the snapshot")
	listCmd.Flags().Int("limit", 20, "maximum snapshots to list")
	listCmd.Flags().Int("offset", 0, "snapshots to skip")

	SnapshotCmd.AddCommand(saveCmd)
	SnapshotCmd.AddCommand(listCmd)
	SnapshotCmd.AddCommand(showCmd)
	SnapshotCmd.AddCommand(diffCmd)
	SnapshotCmd.AddCommand(deleteCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	label, _ := cmd.Flags().GetString("label")

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

	snaps, err := cli.OpenSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	saved, err := snaps.Save(ctx, label, memgraph.NewDocument(g, nil))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s (%d nodes, %d edges)\n", saved.ID, saved.NodeCount, saved.EdgeCount)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	snaps, err := cli.OpenSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	sums, err := snaps.List(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No snapshots stored yet")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, s := range sums {
		label := s.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(out, "%s  %s  %3d nodes  %3d edges  %s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.NodeCount, s.EdgeCount, label)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	snaps, err := cli.OpenSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	snap, err := snaps.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, snapstore.ErrNotFound) {
			return fmt.Errorf("snapshot %s not found", args[0])
		}
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	snaps, err := cli.OpenSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	d, err := snaps.DiffSnapshots(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if d.Unchanged() {
		fmt.Fprintln(out, "No changes between snapshots")
		return nil
	}
	for _, n := range d.AddedNodes {
		fmt.Fprintf(out, "+ node %s\n", n)
	}
	for _, n := range d.RemovedNodes {
		fmt.Fprintf(out, "- node %s\n", n)
	}
	for _, e := range d.AddedEdges {
		fmt.Fprintf(out, "+ edge %s -[%s]-> %s\n", e.Source, e.Type, e.Target)
	}
	for _, e := range d.RemovedEdges {
		fmt.Fprintf(out, "- edge %s -[%s]-> %s\n", e.Source, e.Type, e.Target)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	snaps, err := cli.OpenSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	if err := snaps.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, snapstore.ErrNotFound) {
			return fmt.Errorf("snapshot %s not found", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
	return nil
}
