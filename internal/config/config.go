package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabasePath       string `mapstructure:"DATABASE_PATH"`
	DatabaseBusyMillis int    `mapstructure:"DATABASE_BUSY_MILLIS"`

	// Session gate configuration
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	ManagerPassword string `mapstructure:"MANAGER_PASSWORD"`

	// Bulk import configuration
	DefaultImportClientID uint  `mapstructure:"DEFAULT_IMPORT_CLIENT_ID"`
	MaxImportFileBytes    int64 `mapstructure:"MAX_IMPORT_FILE_BYTES"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7080")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DATABASE_PATH", "calltime.db")
	viper.SetDefault("DATABASE_BUSY_MILLIS", 5000)

	// Session defaults
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 12)
	viper.SetDefault("MANAGER_PASSWORD", "")

	// Import defaults
	viper.SetDefault("DEFAULT_IMPORT_CLIENT_ID", 0)
	viper.SetDefault("MAX_IMPORT_FILE_BYTES", int64(16*1024*1024))

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if config.ManagerPassword == "" {
			return fmt.Errorf("MANAGER_PASSWORD must be set in production")
		}
	}

	if config.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}

	return nil
}

// SessionTTL returns the configured session lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
