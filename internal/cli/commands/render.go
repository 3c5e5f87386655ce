package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/pkg/format"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Execute string
	From    string
	To      string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Normalize SQL or transpile it between dialects",
		Long: `Parse SQL and render it back in canonical form.

By default the input dialect is also the output dialect, which
normalizes spacing, keyword case, and identifier quoting. With --from
and --to the statement is transpiled: parsed under one dialect and
rendered under another. Constructs the target dialect cannot express,
such as RETURNING under MySQL, are reported as errors.`,
		Example: `  # Normalize a statement
  sqlbridge render -e "select a,b from t where x=1"

  # Transpile MySQL to PostgreSQL
  sqlbridge render -e 'SELECT * FROM t LIMIT 10, 5' --from mysql --to postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Execute, "execute", "e", "", "Render this SQL string instead of files")
	cmd.Flags().StringVar(&opts.From, "from", "", "Input dialect (defaults to --dialect)")
	cmd.Flags().StringVar(&opts.To, "to", "", "Output dialect (defaults to the input dialect)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)

	from, err := resolveDialect(opts.From, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	to := from
	if opts.To != "" {
		if to, err = resolveDialect(opts.To, cmdCtx.Cfg); err != nil {
			return err
		}
	}

	sources, err := collectSources(cmd, args, opts.Execute)
	if err != nil {
		return err
	}

	results := parseSources(cmd.Context(), sources, from.Config())

	var failed bool
	for _, res := range results {
		if res.Err != nil {
			cmdCtx.Renderer.Errorf("%s: %s\n", res.Name, formatParseError(res.Err))
			failed = true
			continue
		}

		sql, err := format.Render(res.Stmts, to)
		if err != nil {
			var renderErr *format.RenderError
			if errors.As(err, &renderErr) {
				cmdCtx.Renderer.Errorf("%s: cannot render for %s: %s\n", res.Name, to.Name(), renderErr.Reason)
			} else {
				cmdCtx.Renderer.Errorf("%s: %v\n", res.Name, err)
			}
			failed = true
			continue
		}

		cmdCtx.Renderer.Println(sql)
	}

	if failed {
		return fmt.Errorf("one or more sources failed to render")
	}
	return nil
}
