package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and captured output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand()

	assert.Equal(t, "parse [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"execute", "pretty"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestParseInlineProducesJSON(t *testing.T) {
	stdout, _, err := execute(t, NewParseCommand(), "-e", "SELECT a FROM t")
	require.NoError(t, err)

	var stmts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &stmts))
	assert.Len(t, stmts, 1)
}

func TestParseSyntaxErrorFailsCommand(t *testing.T) {
	stdout, _, err := execute(t, NewParseCommand(), "-e", "SELECT FROM")
	require.Error(t, err)
	assert.Contains(t, stdout, "error")
}

func TestParseRejectsExecuteWithFiles(t *testing.T) {
	_, _, err := execute(t, NewParseCommand(), "-e", "SELECT 1", "some.sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--execute")
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sql")
	require.NoError(t, os.WriteFile(good, []byte("SELECT a FROM t;"), 0600))

	stdout, _, err := execute(t, NewParseCommand(), good)
	require.NoError(t, err)

	var stmts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &stmts))
	assert.Len(t, stmts, 1)
}

func TestNewRenderCommand(t *testing.T) {
	cmd := NewRenderCommand()

	assert.Equal(t, "render [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"execute", "from", "to"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRenderNormalizesInline(t *testing.T) {
	stdout, _, err := execute(t, NewRenderCommand(), "-e", "select a,b from t")
	require.NoError(t, err)
	assert.Equal(t, "SELECT `a`, `b` FROM `t`\n", stdout)
}

func TestRenderTranspiles(t *testing.T) {
	stdout, _, err := execute(t, NewRenderCommand(),
		"-e", `SELECT "a"::INT FROM "t"`, "--from", "postgres", "--to", "mysql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT CAST(`a` AS INT) FROM `t`\n", stdout)
}

func TestRenderReportsUnsupportedConstruct(t *testing.T) {
	_, stderr, err := execute(t, NewRenderCommand(),
		"-e", "DELETE FROM t WHERE id = 1 RETURNING id", "--from", "postgres", "--to", "mysql")
	require.Error(t, err)
	assert.Contains(t, stderr, "cannot render for mysql")
}

func TestNewLineageCommand(t *testing.T) {
	cmd := NewLineageCommand()

	assert.Equal(t, "lineage [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"execute", "tables-only", "columns-only", "save"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestLineageInline(t *testing.T) {
	t.Setenv("SQLBRIDGE_OUTPUT", "json")

	stdout, _, err := execute(t, NewLineageCommand(),
		"-e", "SELECT u.name FROM users AS u")
	require.NoError(t, err)

	var out LineageFileOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []string{"select::null::users"}, out.Tables)
	assert.Equal(t, []string{"select::users::name"}, out.Columns)
}

func TestLineageExclusiveFlagsRejected(t *testing.T) {
	_, _, err := execute(t, NewLineageCommand(),
		"-e", "SELECT 1", "--tables-only", "--columns-only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLineageSaveAndHistory(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")
	t.Setenv("SQLBRIDGE_STATE_PATH", statePath)
	t.Setenv("SQLBRIDGE_OUTPUT", "json")

	stdout, _, err := execute(t, NewLineageCommand(),
		"-e", "INSERT INTO logs (msg) VALUES ('x')", "--save")
	require.NoError(t, err)

	var out LineageFileOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.NotEmpty(t, out.SnapshotID)

	stdout, _, err = execute(t, NewHistoryCommand())
	require.NoError(t, err)

	var snaps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, out.SnapshotID, snaps[0]["id"])
	assert.Equal(t, "<inline>", snaps[0]["source"])
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"execute", "rules", "mode", "pattern", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCheckInlineAllowed(t *testing.T) {
	stdout, _, err := execute(t, NewCheckCommand(),
		"-e", "SELECT a FROM users", "--pattern", "select::.*::users")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok")
}

func TestCheckInlineDenied(t *testing.T) {
	_, stderr, err := execute(t, NewCheckCommand(),
		"-e", "DROP TABLE users", "--pattern", "select::.*::users")
	require.Error(t, err)
	assert.Contains(t, stderr, "drop::null::users")
}

func TestCheckRequiresPatterns(t *testing.T) {
	_, _, err := execute(t, NewCheckCommand(), "-e", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no patterns")
}

func TestCheckRulesFile(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "allow.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`mode: column
dialect: mysql
patterns:
  - select::users::.*
`), 0600))

	_, _, err := execute(t, NewCheckCommand(),
		"-e", "SELECT u.name FROM users AS u", "--rules", rules)
	require.NoError(t, err)

	_, stderr, err := execute(t, NewCheckCommand(),
		"-e", "SELECT o.id FROM orders AS o", "--rules", rules)
	require.Error(t, err)
	assert.Contains(t, stderr, "select::orders::id")
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"limit", "show"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should document the dot-commands")
	assert.Contains(t, cmd.Long, ".dialect")
}

func TestNewDoctorCommand(t *testing.T) {
	cmd := NewDoctorCommand()

	assert.Equal(t, "doctor", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestDoctorJSONListsDialects(t *testing.T) {
	t.Setenv("SQLBRIDGE_OUTPUT", "json")
	t.Setenv("SQLBRIDGE_STATE_PATH", filepath.Join(t.TempDir(), "state.db"))

	stdout, _, err := execute(t, NewDoctorCommand())
	require.NoError(t, err)

	var out DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Dialects, 4)

	names := make([]string, 0, len(out.Dialects))
	for _, d := range out.Dialects {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"mariadb", "mysql", "postgres", "sqlite"}, names)
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("addr"), "flag addr should exist")
}
