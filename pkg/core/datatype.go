package core

import "strings"

// DataType is the parsed form of a SQL column type: CAST targets, column
// definitions, and DECLARE variables all carry one. Name is stored
// uppercase; Args holds length/scale/enum values as written.
type DataType struct {
	Name     string   `json:"name"`
	Args     []string `json:"args,omitempty"`
	Unsigned bool     `json:"unsigned,omitempty"`
	Zerofill bool     `json:"zerofill,omitempty"`
	Charset  string   `json:"charset,omitempty"`
	Collate  string   `json:"collate,omitempty"`
}

// String renders the canonical spelling: DECIMAL(10, 2), INT UNSIGNED,
// VARCHAR(255) CHARACTER SET utf8mb4.
func (t *DataType) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(t.Args, ", "))
		b.WriteString(")")
	}
	if t.Unsigned {
		b.WriteString(" UNSIGNED")
	}
	if t.Zerofill {
		b.WriteString(" ZEROFILL")
	}
	if t.Charset != "" {
		b.WriteString(" CHARACTER SET ")
		b.WriteString(t.Charset)
	}
	if t.Collate != "" {
		b.WriteString(" COLLATE ")
		b.WriteString(t.Collate)
	}
	return b.String()
}
