package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "CLIENT_ORIGIN", "WORDS_FILE",
		"RESULTS_DB", "TOKEN_SECRET", "TOKEN_TTL", "ROUND_ADVANCE_DELAY", "LOCALE", "WS_RATE", "WS_BURST"} {
		t.Setenv(k, "")
	}
	c := FromEnv()

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "http://localhost:5173", c.ClientOrigin)
	assert.Empty(t, c.WordsFile)
	assert.Empty(t, c.ResultsDB)
	assert.True(t, c.DevSecret())
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, 5*time.Second, c.AdvanceDelay)
	assert.Equal(t, "en", c.Locale)
	assert.Equal(t, 5.0, c.WSRate)
	assert.Equal(t, 10, c.WSBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	testCases := []struct {
		desc  string
		key   string
		value string
		check func(t *testing.T, c Config)
	}{
		{desc: "duration string", key: "ROUND_ADVANCE_DELAY", value: "1500ms", check: func(t *testing.T, c Config) {
			assert.Equal(t, 1500*time.Millisecond, c.AdvanceDelay)
		}},
		{desc: "duration seconds", key: "TOKEN_TTL", value: "90", check: func(t *testing.T, c Config) {
			assert.Equal(t, 90*time.Second, c.TokenTTL)
		}},
		{desc: "bad duration", key: "TOKEN_TTL", value: "soon", check: func(t *testing.T, c Config) {
			assert.Equal(t, 2*time.Hour, c.TokenTTL)
		}},
		{desc: "bad int", key: "WS_BURST", value: "many", check: func(t *testing.T, c Config) {
			assert.Equal(t, 10, c.WSBurst)
		}},
		{desc: "float rate", key: "WS_RATE", value: "2.5", check: func(t *testing.T, c Config) {
			assert.Equal(t, 2.5, c.WSRate)
		}},
		{desc: "secret", key: "TOKEN_SECRET", value: "s3cret", check: func(t *testing.T, c Config) {
			assert.False(t, c.DevSecret())
		}},
		{desc: "locale", key: "LOCALE", value: "zh-TW", check: func(t *testing.T, c Config) {
			assert.Equal(t, "zh-TW", c.Locale)
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			tc.check(t, FromEnv())
		})
	}
}
