package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 10*time.Minute, cfg.OTP.Expiry)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "JWT_SECRET=from-file\nAPP_PORT=9000\nSTORAGE_DRIVER=s3\nS3_BUCKET=media\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "media", cfg.Storage.S3Bucket)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
