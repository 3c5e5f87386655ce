package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Execute string
	Pretty  bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse SQL and print the syntax tree as JSON",
		Long: `Parse SQL into a typed syntax tree and print it as JSON.

Input comes from file arguments, an inline --execute string, or stdin.
Multiple files are parsed concurrently; a parse failure in one file is
reported without aborting the others.`,
		Example: `  # Parse an inline statement
  sqlbridge parse -e "SELECT a FROM t"

  # Parse files under the postgres dialect
  sqlbridge parse --dialect postgres queries/*.sql

  # Pretty-print the tree
  sqlbridge parse -e "SELECT 1" --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Execute, "execute", "e", "", "Parse this SQL string instead of files")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "Indent the JSON output")

	return cmd
}

// ParseFileOutput is the per-source JSON output of the parse command.
type ParseFileOutput struct {
	Source     string           `json:"source"`
	Statements []core.Statement `json:"statements,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd)

	d, err := resolveDialect("", cmdCtx.Cfg)
	if err != nil {
		return err
	}

	sources, err := collectSources(cmd, args, opts.Execute)
	if err != nil {
		return err
	}

	results := parseSources(cmd.Context(), sources, d.Config())

	outputs := make([]ParseFileOutput, 0, len(results))
	var failed bool
	for _, res := range results {
		out := ParseFileOutput{Source: res.Name, Statements: res.Stmts}
		if res.Err != nil {
			out.Error = formatParseError(res.Err)
			failed = true
		}
		outputs = append(outputs, out)
	}

	// A single source prints its statements directly; batches keep the
	// per-source wrapper so errors stay attached to their file.
	var payload any = outputs
	if len(outputs) == 1 && outputs[0].Error == "" {
		payload = outputs[0].Statements
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(payload); err != nil {
		return err
	}

	if failed {
		return fmt.Errorf("one or more sources failed to parse")
	}
	return nil
}

// formatParseError renders a parse failure with its position when the
// error carries one.
func formatParseError(err error) string {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Error()
	}
	return err.Error()
}
