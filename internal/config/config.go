package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	YouTube  YouTubeConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type YouTubeConfig struct {
	APIKey string
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tubeboost"),
			Password: getEnv("DB_PASSWORD", "tubeboost"),
			Name:     getEnv("DB_NAME", "tubeboost"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Background housekeeping intervals
const (
	AdminTokenTTL          = 12 * time.Hour
	SessionJanitorInterval = 5 * time.Minute
	SessionIdleTimeout     = 30 * time.Minute
)
