package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STAYBOOK_AUTH_SESSIONSECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/staybook.db", cfg.Database.Path)
	assert.Equal(t, 120, cfg.Auth.SessionTTLMinutes)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, "avatars", cfg.Storage.KeyPrefix)
	assert.Empty(t, cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STAYBOOK_AUTH_SESSIONSECRET", "secret")
	t.Setenv("STAYBOOK_PAGINATION_PAGESIZE", "25")
	t.Setenv("STAYBOOK_AUTH_ADMINEMAILS", "Admin@Example.com, ops@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Pagination.PageSize)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.Auth.AdminEmails)
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Auth.SessionTTLMinutes = 10
	cfg.Pagination.PageSize = 10
	assert.Error(t, cfg.Validate())

	cfg.Auth.SessionSecret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Pagination.PageSize = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nSTAYBOOK_TEST_FROM_FILE=\"file\"\nSTAYBOOK_TEST_PRESET=file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("STAYBOOK_TEST_PRESET", "env")
	t.Setenv("STAYBOOK_TEST_FROM_FILE", "")
	os.Unsetenv("STAYBOOK_TEST_FROM_FILE")

	loadDotEnv(path)

	assert.Equal(t, "file", os.Getenv("STAYBOOK_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("STAYBOOK_TEST_PRESET"))
	os.Unsetenv("STAYBOOK_TEST_FROM_FILE")
}
