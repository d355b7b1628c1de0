// Package config loads runtime settings for the questions database from the
// environment.
//
// Every setting has a default, so an empty environment gives a working local
// setup: a SQLite file at data/questions.db on a single connection.
//
//	QADB_DRIVER          sqlite | pgx            (default sqlite)
//	QADB_DSN             file path or postgres URL (default data/questions.db)
//	QADB_MAX_OPEN_CONNS  pool size                (default 1)
//	QADB_LOG_LEVEL       debug | info | warn | error (default info)
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sakif/questions-db/internal/apperror"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"

	DefaultDSN = "data/questions.db"
)

// Config holds everything needed to open the store and set up logging.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	LogLevel     slog.Level
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Driver:       DriverSQLite,
		DSN:          DefaultDSN,
		MaxOpenConns: 1,
		LogLevel:     slog.LevelInfo,
	}
}

// Load reads the QADB_* variables over the defaults.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("QADB_DRIVER"); v != "" {
		cfg.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv("QADB_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := getenv("QADB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v) // Atoi = ASCII to Integer
		if err != nil || n < 1 {
			return Config{}, apperror.ValidationFailed("QADB_MAX_OPEN_CONNS",
				fmt.Sprintf("QADB_MAX_OPEN_CONNS must be a positive integer, got %q", v))
		}
		cfg.MaxOpenConns = n
	}
	if v := getenv("QADB_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return Config{}, apperror.ValidationFailed("QADB_LOG_LEVEL",
				fmt.Sprintf("QADB_LOG_LEVEL %q is not a log level", v))
		}
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the driver name and pool size.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return apperror.ValidationFailed("driver",
			fmt.Sprintf("unknown driver %q (want %q or %q)", c.Driver, DriverSQLite, DriverPostgres))
	}
	if c.DSN == "" {
		return apperror.ValidationFailed("dsn", "dsn is required")
	}
	if c.MaxOpenConns < 1 {
		return apperror.ValidationFailed("max_open_conns", "max open connections must be at least 1")
	}
	return nil
}

// NewLogger builds the text logger used by the CLI. The CLI passes stderr so
// command output on stdout stays clean.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}
