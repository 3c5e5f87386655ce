package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mariadb"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/sqlite"
)

func TestRegistryContainsAllDialects(t *testing.T) {
	names := dialect.Names()
	assert.Equal(t, []string{"mariadb", "mysql", "postgres", "sqlite"}, names)
}

func TestGetIsCaseInsensitive(t *testing.T) {
	d, ok := dialect.Get("MySQL")
	require.True(t, ok)
	assert.Equal(t, "mysql", d.Name())
	assert.Same(t, mysql.MySQL, d)
}

func TestGetUnknownDialect(t *testing.T) {
	_, ok := dialect.Get("oracle")
	assert.False(t, ok)
}

func TestMustGetPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { dialect.MustGet("db2") })
	assert.NotPanics(t, func() { dialect.MustGet("sqlite") })
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		dialect *dialect.Dialect
		ident   string
		want    string
	}{
		{"mysql backtick", mysql.MySQL, "users", "`users`"},
		{"mysql embedded backtick", mysql.MySQL, "we`ird", "`we``ird`"},
		{"mariadb backtick", mariadb.MariaDB, "orders", "`orders`"},
		{"postgres double quote", postgres.Postgres, "users", `"users"`},
		{"postgres embedded quote", postgres.Postgres, `we"ird`, `"we""ird"`},
		{"sqlite double quote", sqlite.SQLite, "t", `"t"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.QuoteIdentifier(tt.ident))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", mysql.MySQL.Placeholder(1))
	assert.Equal(t, "?", mysql.MySQL.Placeholder(3))
	assert.Equal(t, "$1", postgres.Postgres.Placeholder(1))
	assert.Equal(t, "$3", postgres.Postgres.Placeholder(3))
}

func TestConfigIsACopy(t *testing.T) {
	cfg := mysql.MySQL.Config()
	cfg.Name = "changed"
	assert.Equal(t, "mysql", mysql.MySQL.Name())
}
