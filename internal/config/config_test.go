package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "fitstride"
redis_host = "localhost"
redis_port = "6379"
prom_metrics_host = "localhost"
prom_metrics_port = "2112"
login_rate_limit_allowed_per_min = 15

[production]
host = "0.0.0.0"
port = 9000
log_level = "debug"
logs_path = "/var/log/fitstride/service.log"
sentry_enabled = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "fitstride"
redis_host = "localhost"
redis_port = "6379"
prom_metrics_host = "localhost"
prom_metrics_port = "2112"
login_rate_limit_allowed_per_min = 5
`

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigContent), 0o600))

	cfg, err := Load("development", configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)
	assert.Equal(t, 15, cfg.LoginRateLimitAllowedPerMin)

	cfg, err = Load("prod", configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "/var/log/fitstride/service.log", cfg.LogsPath)

	_, err = Load("staging", configPath)
	require.Error(t, err)

	_, err = Load("dev", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
