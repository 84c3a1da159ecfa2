package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	SessionSecret string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:          getenv("PORT", "3000"),
		MongoURI:      getenv("MONGO_URI", ""),
		MongoDB:       getenv("MONGO_DB", "blog"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SessionSecret: getenv("SESSION_SECRET", "This is my secret key"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
