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

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, DefaultMaxConcurrentRequests, cfg.MaxConcurrentRequests)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultMetricsJob, cfg.Metrics.Job)
	assert.Equal(t, DefaultSlowAPIDelay, cfg.SlowAPI.Delay)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
base_url: http://posts.local:8080
connect_timeout: 5s
max_concurrent_requests: 8
log:
  level: warn
  json: true
metrics:
  pushgateway_url: http://pushgateway:9091
  job: nightly
slowapi:
  addr: ":7000"
  delay: 250ms
  fixture_path: fixtures/posts.yaml
  allowed_origins: ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://posts.local:8080", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 8, cfg.MaxConcurrentRequests)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "http://pushgateway:9091", cfg.Metrics.PushgatewayURL)
	assert.Equal(t, "nightly", cfg.Metrics.Job)
	assert.Equal(t, ":7000", cfg.SlowAPI.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowAPI.Delay)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.SlowAPI.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGGREGATOR_BASE_URL", "http://override:1234")
	t.Setenv("LOG_LEVEL", "error")
	path := writeConfig(t, "base_url: http://file:1\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://override:1234", cfg.BaseURL)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad url", body: "base_url: not a url\n"},
		{name: "zero concurrency", body: "max_concurrent_requests: 0\n"},
		{name: "negative timeout", body: "connect_timeout: -1s\n"},
		{name: "bad pushgateway", body: "metrics:\n  pushgateway_url: nope\n"},
		{name: "broken yaml", body: "base_url: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing config file, got none")
		}
	}()

	_ = MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
}
