package config

// Config holds the resolved CLI configuration.
type Config struct {
	Dialect      string      `koanf:"dialect"`
	OutputFormat string      `koanf:"output"`
	StatePath    string      `koanf:"state_path"`
	RulesPath    string      `koanf:"rules"`
	Verbose      bool        `koanf:"verbose"`
	Serve        ServeConfig `koanf:"serve"`
}

// ServeConfig holds settings for the HTTP API server.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// Default configuration values.
const (
	DefaultDialect   = "mysql"
	DefaultOutput    = "auto"
	DefaultStateFile = ".sqlbridge/state.db"
	DefaultServeAddr = ":8093"
)
