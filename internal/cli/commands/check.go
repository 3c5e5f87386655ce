package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlbridge"
	"github.com/leapstack-labs/sqlbridge/internal/cli/output"
)

// watchDebounce coalesces editor write bursts into one re-check.
const watchDebounce = 250 * time.Millisecond

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Execute  string
	Rules    string
	Mode     string
	Patterns []string
	Watch    bool
}

// RulesFile is the YAML schema of an allow-list rules file.
type RulesFile struct {
	Mode     string   `yaml:"mode"`
	Dialect  string   `yaml:"dialect"`
	Patterns []string `yaml:"patterns"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate SQL against an allow-list of lineage patterns",
		Long: `Parse SQL and verify that every table (or column) it touches matches
an allowed pattern.

Patterns are regular expressions over the lineage string forms,
anchored at both ends:

  action::database::table   (table mode)
  action::table::column     (column mode)

Patterns come from a YAML rules file (--rules) or from repeated
--pattern flags. With --watch the files are re-checked on every change.`,
		Example: `  # Allow reads from the reporting schema only
  sqlbridge check -e "SELECT * FROM users" --pattern "select::reporting::.*"

  # Validate files against a rules file, re-running on change
  sqlbridge check --rules allow.yaml --watch queries/*.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Execute, "execute", "e", "", "Check this SQL string instead of files")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "YAML rules file with mode and patterns")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Check mode: table or column (default table)")
	cmd.Flags().StringArrayVar(&opts.Patterns, "pattern", nil, "Allowed pattern (repeatable)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run the check when input files change")

	return cmd
}

// loadRules merges the rules file and flags into the effective check
// inputs. Flags win over the file.
func loadRules(opts *CheckOptions, defaultRules string) (mode sqlbridge.CheckMode, dialectName string, patterns []string, err error) {
	rulesPath := opts.Rules
	if rulesPath == "" {
		rulesPath = defaultRules
	}

	var rules RulesFile
	if rulesPath != "" {
		data, err := os.ReadFile(rulesPath)
		if err != nil {
			return "", "", nil, fmt.Errorf("failed to read rules file: %w", err)
		}
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return "", "", nil, fmt.Errorf("failed to parse rules file %s: %w", rulesPath, err)
		}
	}

	mode = sqlbridge.CheckTable
	if rules.Mode != "" {
		mode = sqlbridge.CheckMode(rules.Mode)
	}
	if opts.Mode != "" {
		mode = sqlbridge.CheckMode(opts.Mode)
	}

	patterns = rules.Patterns
	if len(opts.Patterns) > 0 {
		patterns = opts.Patterns
	}
	if len(patterns) == 0 {
		return "", "", nil, fmt.Errorf("no patterns given: use --rules or --pattern")
	}

	return mode, rules.Dialect, patterns, nil
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)

	mode, rulesDialect, patterns, err := loadRules(opts, cmdCtx.Cfg.RulesPath)
	if err != nil {
		return err
	}

	d, err := resolveDialect(rulesDialect, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	opt := &sqlbridge.Option{Dialect: d.Name()}

	if opts.Watch {
		if opts.Execute != "" || len(args) == 0 {
			return fmt.Errorf("--watch requires file arguments")
		}
		return watchCheck(cmd, args, patterns, mode, opt, cmdCtx.Renderer)
	}

	sources, err := collectSources(cmd, args, opts.Execute)
	if err != nil {
		return err
	}

	if ok := checkSources(cmdCtx.Renderer, sources, patterns, mode, opt); !ok {
		return fmt.Errorf("check failed")
	}
	return nil
}

// checkSources validates every source and reports per-source results.
// It returns false when any source fails.
func checkSources(r *output.Renderer, sources []Source, patterns []string, mode sqlbridge.CheckMode, opt *sqlbridge.Option) bool {
	ok := true
	for _, src := range sources {
		if err := sqlbridge.AllowListCheck(src.SQL, patterns, mode, opt); err != nil {
			r.Errorf("%s: %s\n", src.Name, r.Styles().Error(err.Error()))
			ok = false
			continue
		}
		r.Printf("%s: %s\n", src.Name, r.Styles().Success("ok"))
	}
	return ok
}

// watchCheck re-runs the check whenever a watched file changes. It
// returns when the command context is canceled.
func watchCheck(cmd *cobra.Command, paths []string, patterns []string, mode sqlbridge.CheckMode, opt *sqlbridge.Option, r *output.Renderer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the containing directories; editors replace files on save,
	// which drops per-file watches.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	runAll := func() {
		sources, err := collectSources(cmd, paths, "")
		if err != nil {
			r.Errorf("%v\n", err)
			return
		}
		checkSources(r, sources, patterns, mode, opt)
	}

	runAll()
	r.Println(r.Styles().Muted("watching for changes, press Ctrl+C to stop"))

	ctx := cmd.Context()
	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-pending:
			runAll()
		case event, open := <-watcher.Events:
			if !open {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, open := <-watcher.Errors:
			if !open {
				return nil
			}
			r.Errorf("watch error: %v\n", err)
		}
	}
}
