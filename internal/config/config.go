// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr  string
	SummaryTTL time.Duration

	JWTSecret string

	GeminiAPIKey string
	GeminiModel  string

	CORSOrigins []string

	MaxUploadBytes int64
	QuestionCount  int

	// Client side
	ServerURL      string
	RequestTimeout time.Duration
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8000"),
		DBHost:         envOr("DB_HOST", "localhost"),
		DBPort:         envOr("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         envOr("DB_NAME", "docquiz"),
		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		SummaryTTL:     envDuration("SUMMARY_TTL", 24*time.Hour),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_MB", 10)) << 20,
		QuestionCount:  envInt("QUIZ_QUESTION_COUNT", 5),
		ServerURL:      envOr("QUIZ_SERVER_URL", "http://localhost:8000"),
		RequestTimeout: envDuration("QUIZ_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
