// Package commands implements the sqlbridge subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlbridge/internal/cli/config"
	"github.com/leapstack-labs/sqlbridge/internal/cli/output"
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// maxConcurrentParses caps the errgroup fan-out for multi-file commands.
const maxConcurrentParses = 8

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's config
// and output settings.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Renderer: r,
	}
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Dialect:      getEnvOrDefault("SQLBRIDGE_DIALECT", config.DefaultDialect),
		OutputFormat: os.Getenv("SQLBRIDGE_OUTPUT"),
		StatePath:    getEnvOrDefault("SQLBRIDGE_STATE_PATH", config.DefaultStateFile),
		RulesPath:    os.Getenv("SQLBRIDGE_RULES"),
		Verbose:      os.Getenv("SQLBRIDGE_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Source is one unit of SQL input: an inline string, a file, or stdin.
type Source struct {
	Name string
	SQL  string
}

// collectSources gathers SQL inputs from file arguments, an inline
// --execute string, or stdin when neither is given.
func collectSources(cmd *cobra.Command, args []string, inline string) ([]Source, error) {
	if inline != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("cannot combine --execute with file arguments")
		}
		return []Source{{Name: "<inline>", SQL: inline}}, nil
	}

	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("no SQL input: pass files, --execute, or pipe to stdin")
		}
		return []Source{{Name: "<stdin>", SQL: string(data)}}, nil
	}

	sources := make([]Source, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, Source{Name: path, SQL: string(data)})
	}
	return sources, nil
}

// ParsedSource is a source together with its parse outcome.
type ParsedSource struct {
	Source
	Stmts []core.Statement
	Err   error
}

// parseSources parses every source concurrently and returns results in
// input order. Parse failures land in the per-source Err field rather
// than aborting the batch.
func parseSources(ctx context.Context, sources []Source, cfg core.DialectConfig) []ParsedSource {
	results := make([]ParsedSource, len(sources))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentParses)
	for i, src := range sources {
		g.Go(func() error {
			stmts, err := parser.Parse(src.SQL, cfg)
			results[i] = ParsedSource{Source: src, Stmts: stmts, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// resolveDialect looks up a dialect, falling back to the config
// default when name is empty.
func resolveDialect(name string, cfg *config.Config) (*dialect.Dialect, error) {
	if name == "" {
		name = cfg.Dialect
	}
	if name == "" {
		name = config.DefaultDialect
	}
	d, ok := dialect.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (registered: %v)", name, dialect.Names())
	}
	return d, nil
}
