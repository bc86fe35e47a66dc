package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "JWT_SECRET", "DATABASE_URL", "NEON_DATABASE_URL",
		"STORE_DRIVER", "STORE_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "data", cfg.Store.Path)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "anprojects.yaml")
	content := `
port: "9000"
log_level: debug
database_url: "postgres://u:p@db/app"
store:
  driver: sqlite
  path: /var/lib/anprojects
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "postgres://u:p@db/app", cfg.DatabaseURL)

	t.Setenv("PORT", "7000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("REDIS_DB", "2")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 2, cfg.StoreOptions().RedisDB)
	assert.Equal(t, "/var/lib/anprojects", cfg.StoreOptions().Path)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("jwt_secret: s3cret\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoadConfigFile_Errors(t *testing.T) {
	cfg := Default()

	err := LoadConfigFile("settings.toml", &cfg)
	assert.ErrorContains(t, err, "unsupported config file format")

	err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.ErrorContains(t, err, "error accessing config file")

	dir := filepath.Join(t.TempDir(), "dir.yaml")
	require.NoError(t, os.Mkdir(dir, 0o750))
	err = LoadConfigFile(dir, &cfg)
	assert.ErrorContains(t, err, "is a directory")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [unclosed"), 0o600))
	err = LoadConfigFile(bad, &cfg)
	assert.ErrorContains(t, err, "error parsing YAML file")
}

func TestDatabaseURLFromEnv(t *testing.T) {
	clearEnv(t)
	assert.Empty(t, DatabaseURLFromEnv())

	t.Setenv("NEON_DATABASE_URL", "postgres://neon/db\n  ?sslmode=require ")
	assert.Equal(t, "postgres://neon/db?sslmode=require", DatabaseURLFromEnv())

	t.Setenv("DATABASE_URL", "postgres://primary/db")
	assert.Equal(t, "postgres://primary/db", DatabaseURLFromEnv())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ANPROJECTS_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("ANPROJECTS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ANPROJECTS_TEST_MISSING", "fallback"))
}
