package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "CHAT_PACING_DELAY", "CHAT_SESSION_TTL", "KNOWLEDGE_FILE",
		"RESPONDER_URL", "RESPONDER_TIMEOUT", "BOOKING_ENDPOINT", "BOOKING_ACCESS_KEY",
		"BOOKING_SUBJECT", "BOOKING_TIMEOUT", "ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY",
		"Model", "ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Chat.PacingDelay)
	assert.Equal(t, 30*time.Minute, cfg.Chat.SessionTTL)
	assert.Equal(t, "http://127.0.0.1:8080/api/chat", cfg.Responder.URL)
	assert.Equal(t, 12*time.Second, cfg.Responder.Timeout)
	assert.False(t, cfg.Booking.Enabled())
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("CHAT_PACING_DELAY", "250")
	t.Setenv("RESPONDER_TIMEOUT", "5s")
	t.Setenv("BOOKING_ACCESS_KEY", "key")
	t.Setenv("ARK_API_KEY", "ark")
	t.Setenv("Model", "doubao")
	t.Setenv("ARK_MAX_TOKENS", "256")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.PacingDelay)
	assert.Equal(t, "http://127.0.0.1:9000/api/chat", cfg.Responder.URL)
	assert.Equal(t, 5*time.Second, cfg.Responder.Timeout)
	assert.True(t, cfg.Booking.Enabled())
	assert.True(t, cfg.AI.Enabled())
	require.NotNil(t, cfg.AI.MaxTokens)
	assert.Equal(t, 256, *cfg.AI.MaxTokens)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"PORT":              "80 80",
		"CHAT_PACING_DELAY": "soon",
		"RESPONDER_TIMEOUT": "0",
		"ARK_TEMPERATURE":   "hot",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSelfURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8080", selfURL(":8080"))
	assert.Equal(t, "http://127.0.0.1:8080", selfURL("0.0.0.0:8080"))
	assert.Equal(t, "http://10.0.0.5:81", selfURL("10.0.0.5:81"))
}
