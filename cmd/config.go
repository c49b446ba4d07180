package cmd

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Backends accepted by Config.Backend.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds the application configuration.
//
// Values are read from AGENCY_* environment variables, then overridden by the
// global flags.
type Config struct {
	Backend       string `env:"BACKEND" envDefault:"dir"`
	DataDir       string `env:"DATA_DIR" envDefault:".agency"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"agency.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"agency:"`
	Verbose       bool   `env:"VERBOSE"`
	// Plain prints raw markdown instead of rendering it for the terminal.
	Plain bool `env:"PLAIN"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "AGENCY_"})
	if err != nil {
		return cfg, fmt.Errorf("cannot read configuration: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds the global flags to cfg, using its current values as defaults.
func RegisterFlags(f *flag.FlagSet, cfg *Config) {
	f.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend (dir, sqlite, redis, memory).")
	f.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Folder of the dir backend.")
	f.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "Database file of the sqlite backend.")
	f.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Server address of the redis backend.")
	f.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Database number of the redis backend.")
	f.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "Key prefix of the redis backend.")
	f.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging.")
	f.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Print raw markdown.")
}

// Validate checks the backend is a known one.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendDir, BackendSQLite, BackendRedis, BackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}
