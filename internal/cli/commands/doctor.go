package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlbridge/internal/cli/config"
	"github.com/leapstack-labs/sqlbridge/internal/cli/output"
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report the environment and dialect capabilities",
		Long: `Report the sqlbridge setup: the active configuration, the registered
dialects and what each can express, and the snapshot database status.

Useful for confirming which config file is in effect and why a
transpile target rejects a construct.`,
		Example: `  # Inspect the environment
  sqlbridge doctor

  # Machine-readable report
  sqlbridge doctor -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
	return cmd
}

// DoctorOutput is the JSON output of the doctor command.
type DoctorOutput struct {
	ConfigFile    string          `json:"config_file,omitempty"`
	Dialect       string          `json:"dialect"`
	StatePath     string          `json:"state_path"`
	StateStatus   string          `json:"state_status"`
	SnapshotCount int             `json:"snapshot_count"`
	Dialects      []DialectReport `json:"dialects"`
}

// DialectReport describes one registered dialect's capabilities.
type DialectReport struct {
	Name         string `json:"name"`
	Placeholder  string `json:"placeholder"`
	Identifiers  string `json:"identifiers"`
	CastOperator bool   `json:"cast_operator"`
	Returning    bool   `json:"returning"`
	UpsertClause string `json:"upsert_clause,omitempty"`
	HashComments bool   `json:"hash_comments"`
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	report := &DoctorOutput{
		ConfigFile: config.GetConfigFileUsed(),
		Dialect:    cfg.Dialect,
		StatePath:  cfg.StatePath,
	}

	for _, name := range dialect.Names() {
		d, _ := dialect.Get(name)
		dcfg := d.Config()

		upsert := ""
		if dcfg.OnConflictClause {
			upsert = "ON CONFLICT"
		} else if dcfg.OnDuplicateClause {
			upsert = "ON DUPLICATE KEY UPDATE"
		}

		placeholder := "?"
		if dcfg.Placeholder == core.PlaceholderDollar {
			placeholder = "$n"
		}

		report.Dialects = append(report.Dialects, DialectReport{
			Name:         name,
			Placeholder:  placeholder,
			Identifiers:  dcfg.Identifiers.Quote + "name" + dcfg.Identifiers.QuoteEnd,
			CastOperator: dcfg.CastOperator,
			Returning:    dcfg.SupportsReturning,
			UpsertClause: upsert,
			HashComments: dcfg.HashComments,
		})
	}

	report.StateStatus, report.SnapshotCount = probeState(cmd, cfg)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(report)
	}
	renderDoctorReport(r, report)
	return nil
}

// probeState checks whether the snapshot database is usable.
func probeState(cmd *cobra.Command, cfg *config.Config) (string, int) {
	if _, err := os.Stat(cfg.StatePath); err != nil {
		return "not created", 0
	}
	store, err := openStateStore(cfg.StatePath)
	if err != nil {
		return fmt.Sprintf("unusable: %v", err), 0
	}
	defer func() { _ = store.Close() }()

	snaps, err := store.ListSnapshots(cmd.Context(), 0)
	if err != nil {
		return fmt.Sprintf("unusable: %v", err), 0
	}
	return "ok", len(snaps)
}

func renderDoctorReport(r *output.Renderer, report *DoctorOutput) {
	titleCaser := cases.Title(language.English)
	styles := r.Styles()

	r.Println(styles.Bold(titleCaser.String("environment")))
	configFile := report.ConfigFile
	if configFile == "" {
		configFile = "(none)"
	}
	r.Printf("  config file:  %s\n", configFile)
	r.Printf("  dialect:      %s\n", report.Dialect)
	r.Printf("  state:        %s (%s, %d snapshots)\n", report.StatePath, report.StateStatus, report.SnapshotCount)
	r.Println()

	r.Println(styles.Bold(titleCaser.String("dialects")))
	rows := make([][]string, 0, len(report.Dialects))
	for _, d := range report.Dialects {
		rows = append(rows, []string{
			d.Name,
			d.Identifiers,
			d.Placeholder,
			yesNo(d.CastOperator),
			yesNo(d.Returning),
			d.UpsertClause,
			yesNo(d.HashComments),
		})
	}
	r.Table([]string{"Name", "Identifiers", "Placeholder", "::cast", "RETURNING", "Upsert", "# comments"}, rows)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
