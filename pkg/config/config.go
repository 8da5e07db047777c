package config

import "os"

type Config struct {
	Port          string
	Env           string
	PostgresURL   string
	JWTSecret     string
	PublicBaseURL string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretjwtkey"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
