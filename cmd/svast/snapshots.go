package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/cli"
	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/snapshot"
)

var snapshotsFlags struct {
	run    string
	output string
	latest bool
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect and prune recorded pipeline states",
	Long:  `Inspect and prune the pipeline states recorded when snapshots are enabled.

Each run records its input as index 0 and the output of pass i as index i+1.

Examples:
  # List every snapshot of one run
  svast snapshots list --run 0b6e...

  # Print the last good state of a run
  svast snapshots show --latest 0b6e...

  # Apply the retention policy now
  svast snapshots prune`,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded snapshots",
	Args:  cobra.NoArgs,
	RunE:  listSnapshots,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded document",
	Long:  `Print the document of a snapshot. With --latest the argument is a run ID
and the most recent state of that run is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: showSnapshot,
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete snapshots outside the retention policy",
	Args:  cobra.NoArgs,
	RunE:  pruneSnapshots,
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsShowCmd, snapshotsPruneCmd)

	snapshotsListCmd.Flags().StringVar(&snapshotsFlags.run, "run", "", "only list snapshots of this run")
	snapshotsListCmd.Flags().StringVarP(&snapshotsFlags.output, "output", "o", "text", "output format: text, json, csv")
	snapshotsShowCmd.Flags().BoolVar(&snapshotsFlags.latest, "latest", false, "treat the argument as a run ID and show its latest state")
}

// openStore opens the configured store regardless of snapshots.enabled,
// so states recorded earlier stay reachable.
func openStore() (*config.Config, snapshot.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := snapshot.Open(&cfg.Snapshots)
	if err != nil {
		return nil, nil, cli.NewCommandError("snapshots", err)
	}
	return cfg, store, nil
}

// snapshotTable renders snapshots as rows.
type snapshotTable []*snapshot.Snapshot

func (t snapshotTable) Header() []string {
	return []string{"ID", "RUN", "INDEX", "PASS", "SIZE", "CREATED"}
}

func (t snapshotTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, s := range t {
		name := s.Pass
		if name == "" {
			name = "(input)"
		}
		rows = append(rows, []string{
			s.ID,
			s.RunID,
			strconv.Itoa(s.Index),
			name,
			humanize.Bytes(uint64(s.Document.Len())),
			humanize.Time(s.CreatedAt),
		})
	}
	return rows
}

// snapshotSummary is the JSON form of a listed snapshot.
type snapshotSummary struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Index     int       `json:"index"`
	Pass      string    `json:"pass"`
	Digest    string    `json:"digest"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(snapshotsFlags.output)
	if err != nil {
		return err
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.List(cmd.Context(), snapshotsFlags.run)
	if err != nil {
		return cli.NewCommandError("snapshots list", err)
	}

	if format == cli.FormatJSON {
		summaries := make([]snapshotSummary, 0, len(snaps))
		for _, s := range snaps {
			summaries = append(summaries, snapshotSummary{
				ID:        s.ID,
				RunID:     s.RunID,
				Index:     s.Index,
				Pass:      s.Pass,
				Digest:    s.Digest,
				Size:      s.Document.Len(),
				CreatedAt: s.CreatedAt,
			})
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), summaries)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), snapshotTable(snaps))
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var snap *snapshot.Snapshot
	if snapshotsFlags.latest {
		snap, err = store.Latest(cmd.Context(), args[0])
	} else {
		snap, err = store.Get(cmd.Context(), args[0])
	}
	if err != nil {
		return cli.NewCommandError("snapshots show", err)
	}
	return writeOutput(cmd, "", snap.Document)
}

func pruneSnapshots(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	pruner := snapshot.NewPruner(store, cfg.Snapshots.Retention, nil)
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("snapshots prune", err)
	}

	remaining, err := store.Count(cmd.Context())
	if err != nil {
		return cli.NewCommandError("snapshots prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %s snapshots, %s remaining\n",
		humanize.Comma(deleted), humanize.Comma(remaining))
	return nil
}
