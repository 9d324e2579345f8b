package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	GinMode    string
	LogLevel   string
}

func Load() *Config {
	// A missing .env file is fine; real environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "3000"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "todouser"),
		DBPassword: getEnv("DB_PASSWORD", "todopassword"),
		DBName:     getEnv("DB_NAME", "todo_tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
