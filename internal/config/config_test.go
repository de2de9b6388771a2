package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	// Create a temp config file
	content := `
server:
  host: "127.0.0.1"
  port: 8080
  http_port: 8081
  max_connections: 50
  idle_timeout: 30

security:
  max_conn_per_second: 2
  max_conn_per_minute: 20
  ban_duration: 5

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1

game:
  hand_size: 5
  seed: 42
  max_payload: 4096
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Verify loaded values
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, 50, cfg.Server.MaxConnections)
	assert.Equal(t, 2, cfg.Security.MaxConnPerSecond)
	assert.Equal(t, 20, cfg.Security.MaxConnPerMinute)
	assert.Equal(t, 5*time.Second, cfg.Security.BanDurationTime())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 5, cfg.Game.HandSize)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, 4096, cfg.Game.MaxPayload)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeoutDuration())
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")
	err := os.WriteFile(configPath, []byte("invalid: yaml: :::"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	// Empty config file - defaults should be applied
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")
	err := os.WriteFile(configPath, []byte(`{}`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultHTTPPort, cfg.Server.HTTPPort)
	assert.Equal(t, defaultMaxConnections, cfg.Server.MaxConnections)
	assert.Equal(t, defaultConnPerSecond, cfg.Security.MaxConnPerSecond)
	assert.Equal(t, defaultConnPerMinute, cfg.Security.MaxConnPerMinute)
	assert.Equal(t, defaultRedisAddr, cfg.Redis.Addr)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, defaultHandSize, cfg.Game.HandSize)
	assert.Equal(t, defaultMaxPayload, cfg.Game.MaxPayload)
	assert.Zero(t, cfg.Game.Seed)
}

func TestDefault(t *testing.T) {
	// Note: Not parallel because Default() reads the environment

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, time.Duration(defaultIdleTimeout)*time.Second, cfg.Server.IdleTimeoutDuration())
}

func TestLoadFromEnv(t *testing.T) {
	// Not parallel because it modifies environment variables

	t.Setenv("SERVER_HOST", "env-host")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "env-redis:6380")
	t.Setenv("GAME_SEED", "123")
	t.Setenv("GAME_HAND_SIZE", "not-a-number")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env.yaml")
	err := os.WriteFile(configPath, []byte(`{}`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "env-host", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "env-redis:6380", cfg.Redis.Addr)
	assert.Equal(t, uint64(123), cfg.Game.Seed)
	// invalid values are ignored
	assert.Equal(t, defaultHandSize, cfg.Game.HandSize)
}
