// Package config loads process configuration from the environment.
// Domain settings (hourly rate, invoice counter, ...) live in config.json
// and are handled by the store package; this is only about how the
// process itself runs.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server
	Host string
	Port string

	// Filesystem layout
	DataDir    string
	BackupsDir string
	PIDFile    string
	LogFile    string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Host:       getEnv("HOST", "127.0.0.1"),
		Port:       getEnv("PORT", "5001"),
		DataDir:    getEnv("DATA_DIR", "./data"),
		BackupsDir: getEnv("BACKUPS_DIR", "./backups"),
		PIDFile:    getEnv("PID_FILE", "./cleantrack.pid"),
		LogFile:    getEnv("LOG_FILE", "./cleantrack.log"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty")
	}
	if c.BackupsDir == "" {
		problems = append(problems, "backups directory cannot be empty")
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog.Level.
// Validate has already rejected unknown names by the time this runs.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
