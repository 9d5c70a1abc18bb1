package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort    string
	GinMode       string
	LogLevel      string
	LogFormat     string
	BankDir       string
	ImageDir      string
	HistoryDBPath string
	// QuestionCount is the number of questions drawn per attempt.
	QuestionCount int
	// ExamDuration is the full countdown an attempt starts with.
	ExamDuration time.Duration
	// LowTimeThreshold is the remaining time at which the one-shot
	// low-time alert fires.
	LowTimeThreshold time.Duration
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "pretty"),
		BankDir:          getEnv("BANK_DIR", "./data"),
		ImageDir:         getEnv("IMAGE_DIR", "./data/images"),
		HistoryDBPath:    getEnv("HISTORY_DB_PATH", "./data/history.db"),
		QuestionCount:    getEnvInt("QUESTION_COUNT", 50),
		ExamDuration:     time.Duration(getEnvInt("EXAM_DURATION_MINUTES", 70)) * time.Minute,
		LowTimeThreshold: time.Duration(getEnvInt("LOW_TIME_THRESHOLD_SECONDS", 300)) * time.Second,
		AllowedOrigins:   parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
