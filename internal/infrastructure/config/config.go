package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// AI test provider
	AIURL     string // tutoring service base URL, e.g. "http://localhost:5000"
	AITimeout time.Duration

	// Result history
	HistoryBackend string // "sqlite" or "redis"
	DBPath         string
	RedisAddress   string
	RedisPassword  string

	// Single-user identity context
	StudentUsername string
	StudentLevel    string // easy, medium, hard
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		AIURL:           getenvDefault("AI_URL", "http://localhost:5000"),
		AITimeout:       getenvDuration("AI_TIMEOUT", 15*time.Second),
		HistoryBackend:  getenvDefault("HISTORY_BACKEND", "sqlite"),
		DBPath:          getenvDefault("DB_PATH", "mathmaster.db"),
		RedisAddress:    getenvDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		StudentUsername: getenvDefault("STUDENT_USERNAME", "student"),
		StudentLevel:    getenvDefault("STUDENT_LEVEL", "medium"),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
