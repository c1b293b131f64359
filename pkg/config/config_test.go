package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/nineteen")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 24*time.Hour, cfg.Auth.Jwt.Expiry)
	assert.Equal(t, 50, cfg.Sharing.FriendTransactionsLimit)
	assert.Equal(t, 1000, cfg.Sharing.SelfTransactionsLimit)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoadRequiresJwtSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	_ = os.Unsetenv("AUTH_JWT_SECRET")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"AUTH_JWT_SECRET=from-file\nSHARING_FRIEND_TRANSACTIONS_LIMIT=10\nDATABASE_DRIVER=sqlite\n",
	), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"AUTH_JWT_SECRET", "SHARING_FRIEND_TRANSACTIONS_LIMIT", "DATABASE_DRIVER"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.Jwt.Secret)
	assert.Equal(t, 10, cfg.Sharing.FriendTransactionsLimit)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
}

func TestFindEnvFile(t *testing.T) {
	_, err := FindEnvFile("definitely-not-here.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("abc"))
	assert.Equal(t, "po****5432", maskValue("postgres://x:5432"))
}
