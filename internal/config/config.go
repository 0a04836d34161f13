package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the app. JWT signing reads
// JWT_SECRET from the environment directly in the auth package.
type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string
	UploadDir   string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "5000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads/evidence"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
