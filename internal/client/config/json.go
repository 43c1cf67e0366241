package config

import (
	"encoding/json"
	"os"

	"github.com/sireesha-siri/geotag-plants/internal/flagx"
	"github.com/sireesha-siri/geotag-plants/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "2m"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL    string         `json:"server_base_url"`
	MirrorPath       string         `json:"mirror_path"`
	FreshnessWindow  timex.Duration `json:"freshness_window"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	RetryMaxAttempts uint64         `json:"retry_max_attempts"`
	RetryBaseDelay   timex.Duration `json:"retry_base_delay"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. Fields absent from the file keep their current
// values. Read or unmarshal errors panic; the surrounding LoadConfig runs
// before any state exists worth preserving.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.MirrorPath != "" {
		cfg.MirrorPath = jc.MirrorPath
	}
	if jc.FreshnessWindow.Duration > 0 {
		cfg.FreshnessWindow = jc.FreshnessWindow.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = jc.RetryMaxAttempts
	}
	if jc.RetryBaseDelay.Duration > 0 {
		cfg.RetryBaseDelay = jc.RetryBaseDelay.Duration
	}
}
