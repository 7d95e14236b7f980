// Package config centralises all environment / flag configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive an already-built Config instance via dependency-injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// External services
	GitHubToken string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// How many GitHub queries may run concurrently per request. Keeps us
	// inside the 60/hour (anonymous) or 5000/hour (token) quota.
	SearchConcurrency int

	Debug bool
}

// Load parses the environment (and an optional .env file) into Config.
// Every option has a sensible default; GITHUB_TOKEN is optional but strongly
// recommended.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	return Config{
		Port:              getEnv("PORT", "8000"),
		GitHubToken:       os.Getenv("GITHUB_TOKEN"),
		ReadTimeout:       getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:      getDuration("WRITE_TIMEOUT_SEC", 30),
		SearchConcurrency: getInt("SEARCH_CONCURRENCY", 4),
		Debug:             getBool("DEBUG", false),
	}
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getBool reads a boolean from env, falling back to defaultVal.
func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid %s=%q; using default %t", key, v, defaultVal)
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
