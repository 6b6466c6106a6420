package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tabz/internal/common"
)

func TestNormalizeOrigin(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		platform common.Platform
		want     string
	}{
		{"drops path", "https://example.com/api", common.PlatformWeb, "https://example.com"},
		{"keeps port", "http://example.com:3000", common.PlatformNative, "http://example.com:3000"},
		{"trailing slashes", "http://10.0.2.2:3000///", common.PlatformNative, "http://10.0.2.2:3000"},
		{"web infers https", "example.com:3000", common.PlatformWeb, "https://example.com:3000"},
		{"native infers http", "example.com:3000", common.PlatformNative, "http://example.com:3000"},
		{"scheme case", "HTTPS://Example.com", common.PlatformWeb, "https://Example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeOrigin(tt.in, tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeOrigin_Errors(t *testing.T) {
	_, err := NormalizeOrigin("   ", common.PlatformWeb)
	require.ErrorIs(t, err, common.ErrEmptyBaseURL)

	_, err = NormalizeOrigin("http:///only/path", common.PlatformWeb)
	require.Error(t, err)
}

func TestSocketURL(t *testing.T) {
	got, err := socketURL("https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "wss://example.com/socket.io/?EIO=4&transport=websocket", got)

	got, err = socketURL("http://127.0.0.1:3000")
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:3000/socket.io/?EIO=4&transport=websocket", got)

	_, err = socketURL("ftp://x")
	require.Error(t, err)
}
