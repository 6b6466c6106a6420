package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tabz/internal/common"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overlays set variables", func(t *testing.T) {
		t.Setenv("TABZ_PLATFORM", "web")
		t.Setenv("TABZ_HYDRATION_TIMEOUT", "1500ms")
		t.Setenv("TABZ_ALLOW_DEV_FALLBACK", "true")
		t.Setenv("TABZ_DEV_FALLBACK_TOKEN", "devtok")
		t.Setenv("TABZ_DEV_USER_ID", "12")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, common.PlatformWeb, cfg.Platform)
		assert.Equal(t, 1500*time.Millisecond, cfg.HydrationTimeout)
		assert.True(t, cfg.AllowDevFallback)
		assert.Equal(t, "devtok", cfg.DevFallbackToken)
		assert.Equal(t, "12", cfg.DevUserID)
		assert.Equal(t, "tabz.db", cfg.StorePath, "unset variables keep their value")
	})

	t.Run("malformed value panics", func(t *testing.T) {
		t.Setenv("TABZ_POLL_INTERVAL", "soon")
		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})
}

func TestEnvHelp(t *testing.T) {
	help := EnvHelp()
	assert.Contains(t, help, "TABZ_API_BASE_URL")
	assert.Contains(t, help, "TABZ_PLATFORM")
}
