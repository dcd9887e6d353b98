package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "root@/sharedesk")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5100", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "log", cfg.Mail.Driver)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 4, cfg.Notifications.Concurrency)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":8080"
  read_timeout: 2s
  allowed_origins: ["https://desk.example"]
database:
  driver: pgx
  url: postgres://localhost/sharedesk
storage:
  driver: s3
  bucket: spaces
notifications:
  concurrency: 9
`)
	t.Setenv("PORT", "9000")
	t.Setenv("NOTIFY_CONCURRENCY", "2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://desk.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "spaces", cfg.Storage.Bucket)
	assert.Equal(t, 2, cfg.Notifications.Concurrency)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "database: ["))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "server:\n  address: ':1'\n"))
	assert.ErrorContains(t, err, "database.url")

	t.Setenv("DATABASE_URL", "x")
	t.Setenv("NOTIFY_CONCURRENCY", "many")
	_, err = LoadConfig(writeConfig(t, ""))
	assert.ErrorContains(t, err, "NOTIFY_CONCURRENCY")
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Database.URL = "x"
	cfg.applyDefaults()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Database.Driver = "sqlite"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Mail.Driver = "smtp"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Storage.Driver = "s3"
	assert.ErrorContains(t, bad.Validate(), "bucket")
}
