package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "15m")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "7d")
	t.Setenv("STORAGE_DRIVER", "MinIO")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "redis", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, "access-secret", cfg.AccessTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, StorageDriverMinIO, cfg.StorageDriver)
	assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "")
	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenExpiry)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, int64(16<<10), cfg.MaxBodyBytes)
	assert.Equal(t, int64(200<<20), cfg.MaxUploadBytes)
}

func TestLoadConfig_BadExpiry(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{AccessTokenSecret: "a", RefreshTokenSecret: "b", StorageDriver: StorageDriverS3}
	assert.NoError(t, cfg.Validate())

	cfg.RefreshTokenSecret = ""
	assert.Error(t, cfg.Validate())

	cfg.RefreshTokenSecret = "a"
	assert.Error(t, cfg.Validate())

	cfg.RefreshTokenSecret = "b"
	cfg.StorageDriver = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("1d")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)

	d, err = ParseDuration("90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = ParseDuration("0d")
	assert.Error(t, err)
	_, err = ParseDuration("-5m")
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "h", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "1", DBSSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable", cfg.PostgresDSN())
}
