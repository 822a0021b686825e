package config

import (
	"os"
	"strconv"
	"strings"

	"travelbackend/internal/utils"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret      string
	CORSOrigins    []string
	QuoteValidDays int
}

// LoadEnv reads .env when present, then the process environment. Defaults
// keep a local dev setup working with no configuration at all.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:        getenv("APP_ADDR", ":8080"),
		GinMode:        getenv("GIN_MODE", ""),
		DBUser:         getenv("DB_USER", "root"),
		DBPass:         getenv("DB_PASS", ""),
		DBHost:         getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:         getenv("DB_NAME", "travel_agency"),
		JWTSecret:      getenv("JWT_SECRET", "super-secret-key-change-me"),
		QuoteValidDays: 30,
	}

	env.CORSOrigins = utils.SplitCSV(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw := strings.TrimSpace(os.Getenv("QUOTE_VALID_DAYS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			env.QuoteValidDays = n
		}
	}
	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
