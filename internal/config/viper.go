// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Classification backends
const (
	BackendHTTP    = "http"
	BackendGemini  = "gemini"
	BackendKeyword = "keyword"
)

// Transaction source types
const (
	SourceGraphQL = "graphql"
	SourceSQLite  = "sqlite"
	SourceCSV     = "csv"
	SourceMemory  = "memory"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Classification struct {
		Backend        string `mapstructure:"backend" yaml:"backend"`
		Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
		Concurrency    int    `mapstructure:"concurrency" yaml:"concurrency"`
		Strategy       string `mapstructure:"strategy" yaml:"strategy"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		RulesFile      string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"classification" yaml:"classification"`

	AI struct {
		Model  string `mapstructure:"model" yaml:"model"`
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Source struct {
		Type            string `mapstructure:"type" yaml:"type"`
		GraphQLEndpoint string `mapstructure:"graphql_endpoint" yaml:"graphql_endpoint"`
		SQLitePath      string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
		CSVFile         string `mapstructure:"csv_file" yaml:"csv_file"`
		SeedFile        string `mapstructure:"seed_file" yaml:"seed_file"`
	} `mapstructure:"source" yaml:"source"`

	Server struct {
		Port int `mapstructure:"port" yaml:"port"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile loads configuration like InitializeConfig, reading
// configFile instead of searching the default locations when it is not empty.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-report")
		v.AddConfigPath(".expense-report")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("EXPENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is always read from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Classification defaults
	v.SetDefault("classification.backend", BackendHTTP)
	v.SetDefault("classification.endpoint", "http://localhost:4000/transaction/classification")
	v.SetDefault("classification.concurrency", 10)
	v.SetDefault("classification.strategy", "pool")
	v.SetDefault("classification.timeout_seconds", 30)
	v.SetDefault("classification.rules_file", "categories.yaml")

	// AI defaults
	v.SetDefault("ai.model", "gemini-2.0-flash")

	// Source defaults
	v.SetDefault("source.type", SourceGraphQL)
	v.SetDefault("source.graphql_endpoint", "http://localhost:4000/graphql")
	v.SetDefault("source.sqlite_path", "transactions.db")
	v.SetDefault("source.csv_file", "transactions.csv")
	v.SetDefault("source.seed_file", "")

	// Server defaults
	v.SetDefault("server.port", 4000)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate classification configuration
	c := config.Classification
	switch c.Backend {
	case BackendHTTP:
		if c.Endpoint == "" {
			return fmt.Errorf("classification.endpoint required for the http backend")
		}
	case BackendGemini:
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required for the gemini backend")
		}
	case BackendKeyword:
	default:
		return fmt.Errorf("invalid classification backend: %s (must be 'http', 'gemini' or 'keyword')", c.Backend)
	}

	if c.Concurrency < 1 || c.Concurrency > 1000 {
		return fmt.Errorf("classification.concurrency must be between 1 and 1000, got: %d", c.Concurrency)
	}

	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 300 {
		return fmt.Errorf("classification.timeout_seconds must be between 1 and 300, got: %d", c.TimeoutSeconds)
	}

	if c.Strategy != "pool" && c.Strategy != "batch" {
		return fmt.Errorf("invalid classification strategy: %s (must be 'pool' or 'batch')", c.Strategy)
	}

	// Validate source configuration
	switch config.Source.Type {
	case SourceGraphQL:
		if config.Source.GraphQLEndpoint == "" {
			return fmt.Errorf("source.graphql_endpoint required for the graphql source")
		}
	case SourceSQLite:
		if config.Source.SQLitePath == "" {
			return fmt.Errorf("source.sqlite_path required for the sqlite source")
		}
	case SourceCSV:
		if config.Source.CSVFile == "" {
			return fmt.Errorf("source.csv_file required for the csv source")
		}
	case SourceMemory:
	default:
		return fmt.Errorf("invalid source type: %s (must be 'graphql', 'sqlite', 'csv' or 'memory')", config.Source.Type)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
