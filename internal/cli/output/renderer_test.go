package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return NewRenderer(&stdout, &stderr, mode), &stdout, &stderr
}

func TestModeValid(t *testing.T) {
	for _, mode := range []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ""} {
		assert.True(t, mode.Valid(), "mode %q should be valid", mode)
	}
	assert.False(t, Mode("xml").Valid())
}

func TestEffectiveModeNeverAuto(t *testing.T) {
	r, _, _ := newBufRenderer(ModeAuto)
	assert.NotEqual(t, ModeAuto, r.EffectiveMode())

	r, _, _ = newBufRenderer(ModeJSON)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
}

func TestPrintfAndErrorfRouting(t *testing.T) {
	r, stdout, stderr := newBufRenderer(ModeText)

	r.Printf("to stdout %d\n", 1)
	r.Errorf("to stderr %d\n", 2)

	assert.Equal(t, "to stdout 1\n", stdout.String())
	assert.Equal(t, "to stderr 2\n", stderr.String())
}

func TestJSONIndents(t *testing.T) {
	r, stdout, _ := newBufRenderer(ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"n": 1}))

	assert.Equal(t, "{\n  \"n\": 1\n}\n", stdout.String())

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, 1, decoded["n"])
}

func TestTableMarkdown(t *testing.T) {
	r, stdout, _ := newBufRenderer(ModeMarkdown)

	r.Table([]string{"Action", "Table"}, [][]string{
		{"select", "users"},
		{"insert", "logs"},
	})

	out := stdout.String()
	assert.Contains(t, out, "| Action | Table |")
	assert.Contains(t, out, "| select | users |")
	assert.Contains(t, out, "| insert | logs |")
}

func TestTableTextDrawsBorders(t *testing.T) {
	r, stdout, _ := newBufRenderer(ModeText)

	r.Table([]string{"A"}, [][]string{{"x"}})

	out := stdout.String()
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "x")
	assert.True(t, strings.Count(out, "\n") >= 3, "text table should span multiple lines")
}

func TestStylesAreNoOpsWithoutTTY(t *testing.T) {
	r, _, _ := newBufRenderer(ModeMarkdown)

	assert.Equal(t, "plain", r.Styles().Bold("plain"))
	assert.Equal(t, "plain", r.Styles().Error("plain"))
}
