// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	PDF struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		MaxPages  int    `mapstructure:"max_pages" yaml:"max_pages"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Diagram struct {
		Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"diagram" yaml:"diagram"`

	Sections struct {
		// PatternsFile optionally points at a YAML file with extra
		// heading patterns for the segmenter.
		PatternsFile string `mapstructure:"patterns_file" yaml:"patterns_file"`
	} `mapstructure:"sections" yaml:"sections"`

	AI struct {
		Provider       string `mapstructure:"provider" yaml:"provider"`
		Model          string `mapstructure:"model" yaml:"model"`
		MaxRetries     int    `mapstructure:"max_retries" yaml:"max_retries"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		GeminiAPIKey   string `mapstructure:"gemini_api_key" yaml:"-"` // Never serialize API keys
		OpenAIAPIKey   string `mapstructure:"openai_api_key" yaml:"-"`
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.specsheet")
	v.AddConfigPath(".specsheet")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SPECSHEET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. API keys always come from unprefixed environment variables
	if err := v.BindEnv("ai.gemini_api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("ai.openai_api_key", "OPENAI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind OPENAI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("pdf.directory", "data/pdfs")
	v.SetDefault("pdf.max_pages", 0)

	v.SetDefault("diagram.enabled", true)
	v.SetDefault("diagram.directory", "data/diagrams")

	v.SetDefault("sections.patterns_file", "")

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.timeout_seconds", 60)
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.PDF.Directory == "" {
		return fmt.Errorf("pdf.directory must not be empty")
	}

	if config.PDF.MaxPages < 0 {
		return fmt.Errorf("pdf.max_pages must not be negative, got: %d", config.PDF.MaxPages)
	}

	switch config.AI.Provider {
	case "gemini", "openai", "none":
	default:
		return fmt.Errorf("invalid ai.provider: %s (must be 'gemini', 'openai' or 'none')", config.AI.Provider)
	}

	if config.AI.MaxRetries < 1 || config.AI.MaxRetries > 10 {
		return fmt.Errorf("ai.max_retries must be between 1 and 10, got: %d", config.AI.MaxRetries)
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logger based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
