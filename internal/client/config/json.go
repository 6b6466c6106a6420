package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/flagx"
	"github.com/dmitrijs2005/tabz/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// that are present are copied into the runtime Config.
type JsonConfig struct {
	DefaultBaseURL   string          `json:"default_base_url"`
	BaseURLOverride  string          `json:"api_base_url"`
	Platform         string          `json:"platform"`
	HydrationTimeout *timex.Duration `json:"hydration_timeout"`
	PollInterval     *timex.Duration `json:"poll_interval"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	StorePath        string          `json:"store_path"`
	StoreSecret      string          `json:"store_secret"`
	AllowDevFallback *bool           `json:"allow_dev_fallback"`
	DevFallbackToken string          `json:"dev_fallback_token"`
	DevUserID        string          `json:"dev_user_id"`
	LogLevel         string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. The TABZ_CONFIG environment variable.
//  3. If both are empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
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

	setString(&cfg.DefaultBaseURL, jc.DefaultBaseURL)
	setString(&cfg.BaseURLOverride, jc.BaseURLOverride)
	if jc.Platform != "" {
		cfg.Platform = common.Platform(jc.Platform)
	}
	setDuration(&cfg.HydrationTimeout, jc.HydrationTimeout)
	setDuration(&cfg.PollInterval, jc.PollInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.StoreSecret, jc.StoreSecret)
	if jc.AllowDevFallback != nil {
		cfg.AllowDevFallback = *jc.AllowDevFallback
	}
	setString(&cfg.DevFallbackToken, jc.DevFallbackToken)
	setString(&cfg.DevUserID, jc.DevUserID)
	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
