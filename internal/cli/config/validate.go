package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/mariadb"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/sqlite"
)

// validOutputs are the accepted values for the output setting.
var validOutputs = map[string]bool{
	"":         true,
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks the config for values that would fail later in a
// less obvious place.
func (c *Config) Validate() error {
	if c.Dialect != "" {
		if _, ok := dialect.Get(c.Dialect); !ok {
			return fmt.Errorf("unknown dialect %q (known: %s)", c.Dialect, strings.Join(dialect.Names(), ", "))
		}
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q (known: auto, text, markdown, json)", c.OutputFormat)
	}
	return nil
}
