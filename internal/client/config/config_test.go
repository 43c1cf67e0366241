package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	require.NotEmpty(t, cfg.MirrorPath)
	require.Equal(t, 2*time.Minute, cfg.FreshnessWindow)
	require.Equal(t, uint64(2), cfg.RetryMaxAttempts)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"server_base_url": "http://from-json:9000",
		"freshness_window": "3m",
		"retry_max_attempts": 5
	}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"app", "-c", file, "-b", "http://from-flag:7000"}

	cfg := LoadConfig()

	require.Equal(t, "http://from-flag:7000", cfg.ServerBaseURL)
	require.Equal(t, 3*time.Minute, cfg.FreshnessWindow)
	require.Equal(t, uint64(5), cfg.RetryMaxAttempts)
}

func TestLoadConfig_JsonKeepsUnsetDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"mirror_path": "/tmp/m.json"}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"app", "-config", file}

	cfg := LoadConfig()

	require.Equal(t, "/tmp/m.json", cfg.MirrorPath)
	require.Equal(t, 12*time.Second, cfg.RequestTimeout)
}
