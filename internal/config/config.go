// internal/config/config.go
//
// Process configuration, read once at startup from the environment (main
// loads .env first). Everything has a workable default except the session
// secret, which falls back to a development value.

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the process reads.
type Config struct {
	Port   string // HTTP listen port
	Prefix string // chat command prefix

	JWTSecret        string // signs gateway session tokens
	GatewayTokenHash string // bcrypt hash of the shared connect token; empty disables the check

	WordsURL  string // remote word list, JSON [{"word":"..."}]
	WordsFile string // local override, one word per line
	DictURL   string // dictionary endpoint, word appended; empty uses the default

	DBPath string // SQLite file for finished-game history

	SessionTimeout time.Duration // inactivity window before games expire
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:             getEnv("PORT", "5175"),
		Prefix:           getEnv("COMMAND_PREFIX", "!"),
		JWTSecret:        getEnv("JWT_SECRET", "dev_secret_change_me"),
		GatewayTokenHash: os.Getenv("GATEWAY_TOKEN_HASH"),
		WordsURL:         os.Getenv("WORDS_URL"),
		WordsFile:        os.Getenv("WORDS_FILE"),
		DictURL:          os.Getenv("DICT_URL"),
		DBPath:           getEnv("DB_PATH", "./data/wordbot.db"),
		SessionTimeout:   time.Duration(envInt("SESSION_TIMEOUT_SECONDS", 300)) * time.Second,
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
