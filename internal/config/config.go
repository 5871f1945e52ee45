// internal/config/config.go
//
// Process configuration from the environment.
// Responsibilities:
//   - Load .env when present (godotenv), then read typed settings with defaults.
//   - Configure the global zerolog logger (level + json/console output).
//
// Notes:
//   - Malformed numbers and durations fall back to the default with a warning;
//     the server should still come up with a half-edited .env.

package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port         string
	LogLevel     string
	LogFormat    string // json | console
	ClientOrigin string

	WordsFile string // empty: embedded list
	ResultsDB string // empty: in-memory archive

	TokenSecret string
	TokenTTL    time.Duration

	AdvanceDelay time.Duration
	Locale       string

	WSRate  float64 // inbound messages per second
	WSBurst int
}

const devTokenSecret = "dev_secret_change_me"

// Load reads .env (if any) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		ResultsDB:    os.Getenv("RESULTS_DB"),
		TokenSecret:  getEnv("TOKEN_SECRET", devTokenSecret),
		TokenTTL:     getDuration("TOKEN_TTL", 2*time.Hour),
		AdvanceDelay: getDuration("ROUND_ADVANCE_DELAY", 5*time.Second),
		Locale:       getEnv("LOCALE", "en"),
		WSRate:       getFloat("WS_RATE", 5),
		WSBurst:      getInt("WS_BURST", 10),
	}
}

// DevSecret reports whether the token secret was left at its default.
func (c Config) DevSecret() bool { return c.TokenSecret == devTokenSecret }

// SetupLogging configures the global zerolog logger and level.
func (c Config) SetupLogging() {
	var out io.Writer = os.Stdout
	if c.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

func getFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		return def
	}
	return f
}

// getDuration accepts Go durations ("90s") or plain seconds ("90").
func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
	return def
}
