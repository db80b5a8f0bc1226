// Package config loads the application configuration from defaults, config
// files, .env files and environment variables.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set win.
// It only runs once per process.
func LoadEnv(logger *logrus.Logger) {
	envOnce.Do(func() {
		loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
	})
}

func loadEnvFile(logger *logrus.Logger, candidates ...string) string {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.Warnf("Error loading .env file: %v", err)
			return ""
		}
		logger.Debugf("Loaded environment variables from %s", envFile)
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
