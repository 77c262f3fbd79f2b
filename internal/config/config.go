package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	JWTSecret string

	// Evolution API (WhatsApp notifications)
	EvolutionAPIURL   string
	EvolutionInstance string
	EvolutionAPIKey   string

	// Public IP custom domains must point at (A record check)
	ServerIP string
}

// Load reads configuration from the environment. A .env file is honored
// when present so local development does not need exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort: os.Getenv("APP_PORT"),
		AppEnv:  os.Getenv("APP_ENV"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		EvolutionAPIURL:   os.Getenv("EVOLUTION_API_URL"),
		EvolutionInstance: os.Getenv("EVOLUTION_INSTANCE"),
		EvolutionAPIKey:   os.Getenv("EVOLUTION_API_KEY"),

		ServerIP: os.Getenv("SERVER_IP"),
	}

	if cfg.DBHost == "" {
		return nil, fmt.Errorf("DB_HOST is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg, nil
}
