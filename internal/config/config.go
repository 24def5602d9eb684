package config

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Mode           string
	StorageBackend string
	DatabasePath   string
	RedisAddress   string
	LogLevel       string
}

func Load() *Config {
	// A local .env never overrides values already in the environment
	_ = godotenv.Load()

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".chat-engine")

	cfg := &Config{}

	flag.StringVar(&cfg.Mode, "mode", "interactive", "Run mode: interactive or headless")
	flag.StringVar(&cfg.StorageBackend, "storage", getEnv("CHAT_STORAGE_BACKEND", "sqlite"), "Storage backend: sqlite, redis, or memory")
	flag.StringVar(&cfg.DatabasePath, "db", getEnv("CHAT_DATABASE_PATH", filepath.Join(dataDir, "chat.db")), "SQLite database file path")
	flag.StringVar(&cfg.RedisAddress, "redis", getEnv("CHAT_REDIS_ADDRESS", "127.0.0.1:6379"), "Redis address (for -storage=redis)")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("CHAT_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	flag.Parse()

	// Ensure the data directory exists
	os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
