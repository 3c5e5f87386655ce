package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  *DataType
		want string
	}{
		{"bare", &DataType{Name: "INT"}, "INT"},
		{"length", &DataType{Name: "VARCHAR", Args: []string{"255"}}, "VARCHAR(255)"},
		{"scale", &DataType{Name: "DECIMAL", Args: []string{"10", "2"}}, "DECIMAL(10, 2)"},
		{"unsigned", &DataType{Name: "INT", Unsigned: true}, "INT UNSIGNED"},
		{"zerofill", &DataType{Name: "INT", Unsigned: true, Zerofill: true}, "INT UNSIGNED ZEROFILL"},
		{"charset", &DataType{Name: "VARCHAR", Args: []string{"64"}, Charset: "utf8mb4"}, "VARCHAR(64) CHARACTER SET utf8mb4"},
		{"collate", &DataType{Name: "TEXT", Collate: "utf8mb4_bin"}, "TEXT COLLATE utf8mb4_bin"},
		{"enum", &DataType{Name: "ENUM", Args: []string{"'a'", "'b'"}}, "ENUM('a', 'b')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}
