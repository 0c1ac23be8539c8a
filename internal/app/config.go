package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds process-level settings resolved from the environment and an
// optional .env file. Per-user data (profile, targets) lives in the store.
type Config struct {
	DBPath        string
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	GeminiAPIKey  string
	GeminiBaseURL string
	USDAAPIKey    string
	USDABaseURL   string
	ListenAddr    string
	CORSOrigins   []string
}

// LoadConfig reads envFile when it exists and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := Config{
		DBPath:        getEnv("IFCALC_DB", ""),
		Store:         strings.ToLower(getEnv("IFCALC_STORE", StoreSQLite)),
		RedisAddr:     getEnv("IFCALC_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("IFCALC_REDIS_PASSWORD", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		USDAAPIKey:    getEnv("USDA_API_KEY", ""),
		USDABaseURL:   getEnv("USDA_BASE_URL", ""),
		ListenAddr:    getEnv("IFCALC_LISTEN", "127.0.0.1:8787"),
	}

	if raw := getEnv("IFCALC_REDIS_DB", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid IFCALC_REDIS_DB %q", raw)
		}
		cfg.RedisDB = n
	}
	for _, origin := range strings.Split(getEnv("IFCALC_CORS_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	if err := ValidateStore(cfg.Store); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateStore(name string) error {
	switch name {
	case StoreSQLite, StoreRedis, StoreMemory:
		return nil
	default:
		return fmt.Errorf("invalid store %q (use sqlite, redis, or memory)", name)
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
