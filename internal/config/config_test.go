package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: development\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "@tcp(127.0.0.1:3306)/folio?")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
port: 8080
env: production
jwt_secret: super-secret
allowed_origins:
  - example.com
  - "*.example.com"
magic_words:
  - " Please "
database:
  host: db.internal
  name: portfolio
redis:
  url: redis://cache.internal:6379/2
seed:
  admin_username: ada
  admin_password: pw
  portfolio: true
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "@tcp(db.internal:3306)/portfolio?")
	assert.Equal(t, "redis://cache.internal:6379/2", cfg.RedisURL)
	assert.True(t, cfg.Seed.Portfolio)

	// magic words are matched case-insensitively after trimming
	assert.True(t, cfg.IsMagicWord("please"))
	assert.True(t, cfg.IsMagicWord(" PLEASE"))
	assert.False(t, cfg.IsMagicWord("abracadabra"))
	assert.False(t, cfg.IsMagicWord(""))
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 99999\n"))
	require.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "prot: 8080\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
