package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries the process-level settings. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Addr     string // HTTP listen address
	DataDir  string // puzzle storage directory
	LogLevel string // debug|info|warn|error
	Workers  int    // parallel search workers (<=1 = serial)
	MaxNodes int    // search node budget (0 = unlimited)
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	return &Config{
		Addr:     getEnv("GRIDSOLVE_ADDR", ":8080"),
		DataDir:  getEnv("GRIDSOLVE_DATA_DIR", "./data"),
		LogLevel: getEnv("GRIDSOLVE_LOG_LEVEL", "info"),
		Workers:  getEnvInt("GRIDSOLVE_WORKERS", 1),
		MaxNodes: getEnvInt("GRIDSOLVE_MAX_NODES", 0),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-numeric env value")
		return def
	}
	return n
}
