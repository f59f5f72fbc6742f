package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreFile   = "file"
	StorePG     = "pg"
	StoreMemory = "memory"
)

type Config struct {
	APIURL       string
	HTTPTimeout  time.Duration
	RateLimitRPS float64
	UserAgent    string

	SessionStore   string
	SessionFile    string
	SessionProfile string
	DBDSN          string

	LogLevel  string
	LogFormat string
}

// LoadEnvFiles reads .env and then .env.local from the working directory.
// Variables already present in the environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment. Malformed numeric or duration
// values are reported rather than silently replaced.
func Load() (Config, error) {
	timeout, err := getEnvDuration("STOREFRONT_HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	rps, err := getEnvFloat("STOREFRONT_RATE_LIMIT_RPS", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         getEnv("STOREFRONT_API_URL", "http://localhost:5000/api"),
		HTTPTimeout:    timeout,
		RateLimitRPS:   rps,
		UserAgent:      getEnv("STOREFRONT_USER_AGENT", ""),
		SessionStore:   strings.ToLower(getEnv("SESSION_STORE", StoreFile)),
		SessionFile:    getEnv("SESSION_FILE", ""),
		SessionProfile: getEnv("SESSION_PROFILE", "default"),
		DBDSN:          getEnv("DB_DSN", ""),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.SessionStore {
	case StoreFile, StoreMemory:
	case StorePG:
		if c.DBDSN == "" {
			return fmt.Errorf("config: SESSION_STORE=pg requires DB_DSN")
		}
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q (want file, pg or memory)", c.SessionStore)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: STOREFRONT_HTTP_TIMEOUT must not be negative")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("config: STOREFRONT_RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}
