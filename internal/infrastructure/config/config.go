package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// QuizDataSource is where the question bank document lives:
	// either an http(s) URL or a local file path.
	QuizDataSource string

	// ProgressDBPath is the SQLite file holding persisted progress.
	ProgressDBPath string

	// LoadTimeout bounds the one-time question bank fetch.
	LoadTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		QuizDataSource: getenvDefault("QUIZ_DATA_URL", "quiz-data.json"),
		ProgressDBPath: getenvDefault("PROGRESS_DB_PATH", "quizdeck.db"),
		LoadTimeout:    getenvDurationDefault("LOAD_TIMEOUT", 15*time.Second),
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvDurationDefault(k string, fallback time.Duration) time.Duration {
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
