package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/questions-db/internal/apperror"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, 1, cfg.MaxOpenConns)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envOf(map[string]string{
		"QADB_DRIVER":         " PGX ",
		"QADB_DSN":            "postgres://qa:qa@localhost:5432/qa",
		"QADB_MAX_OPEN_CONNS": "4",
		"QADB_LOG_LEVEL":      "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "postgres://qa:qa@localhost:5432/qa", cfg.DSN)
	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"QADB_DRIVER": "oracle"}},
		{"non-numeric pool", map[string]string{"QADB_MAX_OPEN_CONNS": "many"}},
		{"zero pool", map[string]string{"QADB_MAX_OPEN_CONNS": "0"}},
		{"bad level", map[string]string{"QADB_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(envOf(tt.env))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation), "error = %v, want ErrValidation", err)
		})
	}
}

func TestLoad_ReadsProcessEnv(t *testing.T) {
	t.Setenv("QADB_DSN", "file:test.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", cfg.DSN)
}

func TestNewLogger_WritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = slog.LevelWarn

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.WarnContext(context.Background(), "shown", slog.String("op", "users.insert"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "op=users.insert")
}
