package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	RedisURL    string
	StaticDir   string

	SettingsCacheTTL time.Duration
	WorkerInterval   time.Duration

	FirebaseCredentialsPath string
	FirebaseAPIKey          string
	FirebaseAuthDomain      string
	FirebaseProjectID       string
}

// Load reads .env (when present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cacheTTL, err := getDuration("SETTINGS_CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	workerInterval, err := getDuration("WORKER_INTERVAL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		StaticDir:        getEnv("STATIC_DIR", "web/static"),
		SettingsCacheTTL: cacheTTL,
		WorkerInterval:   workerInterval,

		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase-service-account.json"),
		FirebaseAPIKey:          os.Getenv("FIREBASE_API_KEY"),
		FirebaseAuthDomain:      os.Getenv("FIREBASE_AUTH_DOMAIN"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
	}, nil
}

// Production reports whether the app runs with ENV=production.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 30s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
