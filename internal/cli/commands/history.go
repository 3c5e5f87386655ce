package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/internal/cli/output"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
	Show  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved lineage snapshots",
		Long: `List lineage snapshots previously saved with 'sqlbridge lineage --save',
newest first. Use --show to print the full lineage of one snapshot.`,
		Example: `  # List the last 20 snapshots
  sqlbridge history

  # Inspect one snapshot
  sqlbridge history --show 6e9f2c3a-...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum snapshots to list (0 for all)")
	cmd.Flags().StringVar(&opts.Show, "show", "", "Print the full lineage of the snapshot with this ID")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, err := openStateStore(cmdCtx.Cfg.StatePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if opts.Show != "" {
		snap, err := store.GetSnapshot(cmd.Context(), opts.Show)
		if err != nil {
			return err
		}
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(snap)
		}
		r.Println(r.Styles().Bold(snap.Source))
		r.Printf("id:      %s\n", snap.ID)
		r.Printf("dialect: %s\n", snap.Dialect)
		r.Printf("saved:   %s\n", snap.CreatedAt.Format("2006-01-02 15:04:05"))
		r.Println()
		r.Println(r.Styles().Info(fmt.Sprintf("Tables (%d):", len(snap.Tables))))
		for _, entry := range snap.Tables {
			r.Printf("  %s\n", entry)
		}
		r.Println(r.Styles().Info(fmt.Sprintf("Columns (%d):", len(snap.Columns))))
		for _, entry := range snap.Columns {
			r.Printf("  %s\n", entry)
		}
		return nil
	}

	snaps, err := store.ListSnapshots(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(snaps)
	}

	if len(snaps) == 0 {
		r.Println("No snapshots saved. Run 'sqlbridge lineage --save' first.")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, snap := range snaps {
		rows = append(rows, []string{
			snap.ID,
			snap.Source,
			snap.Dialect,
			snap.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(len(snap.Tables)),
			strconv.Itoa(len(snap.Columns)),
		})
	}
	r.Table([]string{"ID", "Source", "Dialect", "Saved", "Tables", "Columns"}, rows)

	return nil
}
