package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRows = 50
	defaultCols = 50
	defaultAddr = ":8080"

	// defaultMaxFrameCells keeps a frames response to a few megabytes of JSON.
	defaultMaxFrameCells = 1_000_000
)

// Config holds the application's configuration values.
type Config struct {
	Rows       int           // Default grid rows
	Cols       int           // Default grid columns
	Addr       string        // Listen address for the HTTP server
	FrameDelay time.Duration // Pause between rendered frames in the terminal
	LogLevel   string        // zap level name (debug, info, warn, error)
	MaxFrames  int           // Frame cap for HTTP responses
	MaxCells   int           // Total cells across the frames of one HTTP response

	// Warnings collects problems found while loading; they are logged once
	// a logger exists.
	Warnings []string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one is present. Malformed values fall back to their defaults.
func LoadConfig() Config {
	var cfg Config
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf(".env could not be loaded: %v", err))
	}

	cfg.Rows = cfg.getEnvAsInt("KNIGHT_ROWS", defaultRows)
	cfg.Cols = cfg.getEnvAsInt("KNIGHT_COLS", defaultCols)
	cfg.Addr = getEnvWithDefault("KNIGHT_ADDR", defaultAddr)
	cfg.FrameDelay = cfg.getEnvAsDuration("KNIGHT_FRAME_DELAY", 0)
	cfg.LogLevel = getEnvWithDefault("KNIGHT_LOG_LEVEL", "info")
	cfg.MaxFrames = cfg.getEnvAsInt("KNIGHT_MAX_FRAMES", 2000)
	cfg.MaxCells = cfg.getEnvAsInt("KNIGHT_MAX_FRAME_CELLS", defaultMaxFrameCells)
	return cfg
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves a positive integer environment variable, recording a warning when it cannot be parsed.
func (c *Config) getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s must be a positive integer, got %q; using %d", key, valueStr, defaultValue))
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves a duration environment variable such as "25ms".
func (c *Config) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s must be a non-negative duration, got %q; using %s", key, valueStr, defaultValue))
		return defaultValue
	}
	return value
}
