package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/internal/cli/output"
	"github.com/leapstack-labs/sqlbridge/internal/state"
	"github.com/leapstack-labs/sqlbridge/pkg/lineage"
)

// LineageOptions holds options for the lineage command.
type LineageOptions struct {
	Execute     string
	TablesOnly  bool
	ColumnsOnly bool
	Save        bool
}

// NewLineageCommand creates the lineage command.
func NewLineageCommand() *cobra.Command {
	opts := &LineageOptions{}

	cmd := &cobra.Command{
		Use:   "lineage [files...]",
		Short: "Show which tables and columns a script touches",
		Long: `Parse SQL and report its lineage: every (action, database, table)
and (action, table, column) a statement reads or writes.

Aliases are resolved to the tables they name, derived tables and CTEs
are excluded, and the result is sorted and deduplicated. With --save
the extraction is persisted to the snapshot database for later
inspection with 'sqlbridge history'.`,
		Example: `  # Lineage for an inline statement
  sqlbridge lineage -e "SELECT u.name FROM users u JOIN orders o ON o.user_id = u.id"

  # Only table lineage, as JSON
  sqlbridge lineage --tables-only -o json queries/report.sql

  # Persist a snapshot
  sqlbridge lineage --save queries/report.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Execute, "execute", "e", "", "Extract lineage from this SQL string instead of files")
	cmd.Flags().BoolVar(&opts.TablesOnly, "tables-only", false, "Show only table lineage")
	cmd.Flags().BoolVar(&opts.ColumnsOnly, "columns-only", false, "Show only column lineage")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save the extraction to the snapshot database")

	return cmd
}

// LineageFileOutput is the per-source JSON output of the lineage command.
type LineageFileOutput struct {
	Source     string   `json:"source"`
	Tables     []string `json:"tables,omitempty"`
	Columns    []string `json:"columns,omitempty"`
	Error      string   `json:"error,omitempty"`
	SnapshotID string   `json:"snapshot_id,omitempty"`
}

func runLineage(cmd *cobra.Command, args []string, opts *LineageOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.TablesOnly && opts.ColumnsOnly {
		return fmt.Errorf("--tables-only and --columns-only are mutually exclusive")
	}

	d, err := resolveDialect("", cmdCtx.Cfg)
	if err != nil {
		return err
	}

	sources, err := collectSources(cmd, args, opts.Execute)
	if err != nil {
		return err
	}

	var store *state.SQLiteStore
	if opts.Save {
		store, err = openStateStore(cmdCtx.Cfg.StatePath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	results := parseSources(cmd.Context(), sources, d.Config())

	outputs := make([]LineageFileOutput, 0, len(results))
	var failed bool
	for _, res := range results {
		out := LineageFileOutput{Source: res.Name}
		if res.Err != nil {
			out.Error = formatParseError(res.Err)
			failed = true
			outputs = append(outputs, out)
			continue
		}

		sum := lineage.Extract(res.Stmts)
		if !opts.ColumnsOnly {
			out.Tables = sum.TableList()
		}
		if !opts.TablesOnly {
			out.Columns = sum.ColumnList()
		}

		if store != nil {
			snap := &state.Snapshot{
				Source:  res.Name,
				Dialect: d.Name(),
				Tables:  sum.TableList(),
				Columns: sum.ColumnList(),
			}
			if err := store.SaveSnapshot(cmd.Context(), snap); err != nil {
				return fmt.Errorf("failed to save snapshot for %s: %w", res.Name, err)
			}
			out.SnapshotID = snap.ID
		}

		outputs = append(outputs, out)
	}

	if r.EffectiveMode() == output.ModeJSON {
		var payload any = outputs
		if len(outputs) == 1 {
			payload = outputs[0]
		}
		if err := r.JSON(payload); err != nil {
			return err
		}
	} else {
		renderLineageText(r, outputs)
	}

	if failed {
		return fmt.Errorf("one or more sources failed to parse")
	}
	return nil
}

func renderLineageText(r *output.Renderer, outputs []LineageFileOutput) {
	for i, out := range outputs {
		if i > 0 {
			r.Println()
		}
		if len(outputs) > 1 || out.Source != "<inline>" && out.Source != "<stdin>" {
			r.Println(r.Styles().Bold(out.Source))
		}
		if out.Error != "" {
			r.Println(r.Styles().Error("parse error: " + out.Error))
			continue
		}

		if out.Tables != nil {
			rows := make([][]string, 0, len(out.Tables))
			for _, entry := range out.Tables {
				ref, ok := lineage.ParseTableEntry(entry)
				if !ok {
					continue
				}
				rows = append(rows, []string{string(ref.Action), ref.Database, ref.Table})
			}
			r.Println(r.Styles().Info(fmt.Sprintf("Tables (%d):", len(rows))))
			r.Table([]string{"Action", "Database", "Table"}, rows)
		}
		if out.Columns != nil {
			rows := make([][]string, 0, len(out.Columns))
			for _, entry := range out.Columns {
				ref, ok := lineage.ParseColumnEntry(entry)
				if !ok {
					continue
				}
				rows = append(rows, []string{string(ref.Action), ref.Table, ref.Column})
			}
			r.Println(r.Styles().Info(fmt.Sprintf("Columns (%d):", len(rows))))
			r.Table([]string{"Action", "Table", "Column"}, rows)
		}
		if out.SnapshotID != "" {
			r.Println(r.Styles().Muted("saved snapshot " + out.SnapshotID))
		}
	}
}

// openStateStore opens the snapshot database, creating its directory
// if needed.
func openStateStore(path string) (*state.SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		return nil, err
	}
	return store, nil
}
