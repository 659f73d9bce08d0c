package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 20*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.InvalidateOnWrite)
	assert.Equal(t, 10, cfg.Feed.PageSize)
	assert.Equal(t, "disk", cfg.Media.Driver)
	assert.Equal(t, "/media/", cfg.Media.URLPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("YATUBE_FEED_PAGE_SIZE", "5")
	t.Setenv("YATUBE_CACHE_INVALIDATE_ON_WRITE", "true")
	t.Setenv("YATUBE_REDIS_ADDR", "localhost:6379")
	t.Setenv("YATUBE_JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Feed.PageSize)
	assert.True(t, cfg.Cache.InvalidateOnWrite)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoad_ExplicitFileAndValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yatube.yaml")
	require.NoError(t, os.WriteFile(path, []byte("media:\n  driver: s3\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	assert.ErrorContains(t, err, "media.s3.bucket")

	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o600))
	_, err = Load()
	assert.ErrorContains(t, err, "database.driver")
}

func TestLoad_ReleaseModeRequiresSecrets(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("YATUBE_SERVER_MODE", "release")

	_, err := Load()
	assert.ErrorContains(t, err, "session.secret")

	t.Setenv("YATUBE_SESSION_SECRET", "prod-session-secret")
	_, err = Load()
	assert.ErrorContains(t, err, "jwt.secret")

	t.Setenv("YATUBE_JWT_SECRET", "prod-jwt-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "prod-jwt-secret", cfg.JWT.Secret)
}
