package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/internal/cli/output"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/format"
	"github.com/leapstack-labs/sqlbridge/pkg/lineage"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// replMode selects what the REPL prints for each statement.
type replMode string

const (
	replModeLineage replMode = "lineage"
	replModeTables  replMode = "tables"
	replModeColumns replMode = "columns"
	replModeSQL     replMode = "sql"
	replModeAST     replMode = "ast"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive parse and lineage shell",
		Long: `Start an interactive shell. Statements are buffered until a line ends
with ';', then parsed and reported in the current display mode.

Dot-commands:
  .dialect [name]   show or switch the dialect
  .mode [name]      show or switch the display mode (lineage|tables|columns|sql|ast)
  .tables           shortcut for .mode tables
  .columns          shortcut for .mode columns
  .ast              shortcut for .mode ast
  .help             show this help
  .quit             exit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
	return cmd
}

// repl holds the mutable shell state.
type repl struct {
	renderer *output.Renderer
	dialect  *dialect.Dialect
	mode     replMode
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	d, err := resolveDialect("", cmdCtx.Cfg)
	if err != nil {
		return err
	}
	shell := &repl{
		renderer: cmdCtx.Renderer,
		dialect:  d,
		mode:     replModeLineage,
	}

	historyFile := filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "repl_history")
	if err := os.MkdirAll(filepath.Dir(historyFile), 0750); err != nil {
		historyFile = ""
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem(".dialect",
			readline.PcItem("mysql"), readline.PcItem("mariadb"),
			readline.PcItem("postgres"), readline.PcItem("sqlite"),
		),
		readline.PcItem(".mode",
			readline.PcItem("lineage"), readline.PcItem("tables"),
			readline.PcItem("columns"), readline.PcItem("sql"), readline.PcItem("ast"),
		),
		readline.PcItem(".tables"),
		readline.PcItem(".columns"),
		readline.PcItem(".ast"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shell.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "sqlbridge REPL (dialect: %s)\n", shell.dialect.Name())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(shell.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buffer.Len() == 0 && strings.HasPrefix(line, ".") {
			if shell.handleDotCommand(cmd, line) {
				break
			}
			rl.SetPrompt(shell.prompt())
			continue
		}

		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt(shell.prompt())

		sql := buffer.String()
		buffer.Reset()

		shell.eval(sql)
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

func (s *repl) prompt() string {
	return s.dialect.Name() + "> "
}

// handleDotCommand executes a dot-command and reports whether the
// shell should exit.
func (s *repl) handleDotCommand(cmd *cobra.Command, line string) bool {
	r := s.renderer
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		r.Println(cmd.Long)

	case ".dialect":
		if len(parts) == 1 {
			r.Printf("dialect: %s (registered: %s)\n", s.dialect.Name(), strings.Join(dialect.Names(), ", "))
			break
		}
		d, ok := dialect.Get(parts[1])
		if !ok {
			r.Errorf("unknown dialect %q (registered: %s)\n", parts[1], strings.Join(dialect.Names(), ", "))
			break
		}
		s.dialect = d
		r.Printf("dialect set to %s\n", d.Name())

	case ".mode":
		if len(parts) == 1 {
			r.Printf("mode: %s\n", s.mode)
			break
		}
		switch replMode(parts[1]) {
		case replModeLineage, replModeTables, replModeColumns, replModeSQL, replModeAST:
			s.mode = replMode(parts[1])
			r.Printf("mode set to %s\n", s.mode)
		default:
			r.Errorf("unknown mode %q (lineage|tables|columns|sql|ast)\n", parts[1])
		}

	case ".tables":
		s.mode = replModeTables
		r.Printf("mode set to %s\n", s.mode)

	case ".columns":
		s.mode = replModeColumns
		r.Printf("mode set to %s\n", s.mode)

	case ".ast":
		s.mode = replModeAST
		r.Printf("mode set to %s\n", s.mode)

	default:
		r.Errorf("unknown command %s (try .help)\n", parts[0])
	}

	return false
}

// eval parses one buffered statement and prints it in the current mode.
func (s *repl) eval(sql string) {
	r := s.renderer

	stmts, err := parser.Parse(sql, s.dialect.Config())
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			r.Errorf("%s\n", r.Styles().Error(synErr.Error()))
		} else {
			r.Errorf("%s\n", r.Styles().Error(err.Error()))
		}
		return
	}

	switch s.mode {
	case replModeSQL:
		out, err := format.Render(stmts, s.dialect)
		if err != nil {
			r.Errorf("%s\n", r.Styles().Error(err.Error()))
			return
		}
		r.Println(out)

	case replModeAST:
		if err := r.JSON(stmts); err != nil {
			r.Errorf("%v\n", err)
		}

	default:
		sum := lineage.Extract(stmts)
		if s.mode != replModeColumns {
			for _, entry := range sum.TableList() {
				r.Println(entry)
			}
		}
		if s.mode != replModeTables {
			for _, entry := range sum.ColumnList() {
				r.Println(entry)
			}
		}
	}
}
