package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"ROTEIRO_ADDR", "ROTEIRO_STATIC_DIR", "ROTEIRO_DB_PATH", "ROTEIRO_TIMEZONE",
		"ROTEIRO_CORS_ORIGINS", "ROTEIRO_SWAGGER", "ROTEIRO_DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "data/roteiro.db", cfg.Database.Path)
	assert.True(t, cfg.Server.Swagger)
	assert.Empty(t, cfg.Server.CORSOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  addr: ":9090"
  swagger: false
  cors_origins: ["http://localhost:3000"]
database:
  path: /tmp/tasks.db
timezone: UTC
`)
	t.Setenv("ROTEIRO_ADDR", ":7070")
	t.Setenv("ROTEIRO_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "/tmp/tasks.db", cfg.Database.Path)
	assert.False(t, cfg.Server.Swagger)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadInput(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "server:\n  port: 80\n"))
	assert.Error(t, err, "unknown keys are rejected")

	t.Setenv("ROTEIRO_SWAGGER", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROTEIRO_TIMEZONE", "Mars/Olympus_Mons")
	_, err := Load("")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(" , "))
}
