package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/tabz/internal/common"
)

// Config holds runtime settings for the TABZ client.
//
// Units: every duration is a time.Duration. A zero HydrationTimeout means
// the hydration gate waits for the store indefinitely.
type Config struct {
	DefaultBaseURL   string          `env:"TABZ_DEFAULT_BASE_URL" env-description:"compiled-in backend origin"`
	BaseURLOverride  string          `env:"TABZ_API_BASE_URL" env-description:"backend origin override, ranked above the persisted value"`
	Platform         common.Platform `env:"TABZ_PLATFORM" env-description:"web (memory store, no fail-open) or native (sqlite store)"`
	HydrationTimeout time.Duration   `env:"TABZ_HYDRATION_TIMEOUT" env-description:"native only: release the hydration gate after this long"`
	PollInterval     time.Duration   `env:"TABZ_POLL_INTERVAL" env-description:"order queue refresh interval"`
	RequestTimeout   time.Duration   `env:"TABZ_REQUEST_TIMEOUT" env-description:"per-request timeout, 0 leaves it to the transport"`
	StorePath        string          `env:"TABZ_STORE_PATH" env-description:"native only: sqlite file holding the session"`
	StoreSecret      string          `env:"TABZ_STORE_SECRET" env-description:"native only: passphrase sealing stored values"`
	AllowDevFallback bool            `env:"TABZ_ALLOW_DEV_FALLBACK" env-description:"native only: use the development token when logged out"`
	DevFallbackToken string          `env:"TABZ_DEV_FALLBACK_TOKEN" env-description:"development bearer token"`
	DevUserID        string          `env:"TABZ_DEV_USER_ID" env-description:"x-user-id header for development backends"`
	LogLevel         string          `env:"TABZ_LOG_LEVEL" env-description:"debug, info, warn or error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DefaultBaseURL = common.DefaultBaseURL
	c.Platform = common.PlatformNative
	c.HydrationTimeout = common.DefaultHydrationTimeout
	c.PollInterval = 5 * time.Second
	c.RequestTimeout = 0
	c.StorePath = "tabz.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	p, ok := common.ParsePlatform(string(c.Platform))
	if !ok {
		return fmt.Errorf("%w: unknown platform %q", common.ErrorValidation, c.Platform)
	}
	c.Platform = p

	if c.Platform == common.PlatformNative && c.StorePath == "" {
		return fmt.Errorf("%w: native platform needs a store path", common.ErrorValidation)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", common.ErrorValidation)
	}
	return nil
}

// FailOpenTimeout is the hydration timeout actually armed. Web builds never
// fail open.
func (c *Config) FailOpenTimeout() time.Duration {
	if c.Platform == common.PlatformWeb {
		return 0
	}
	return c.HydrationTimeout
}

// FallbackAllowed reports whether the development token may stand in for a
// missing session. Never on web.
func (c *Config) FallbackAllowed() bool {
	return c.Platform == common.PlatformNative && c.AllowDevFallback && c.DevFallbackToken != ""
}
