package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{
		logger: logger,
	}
}

// Load loads the configuration from the specified path
func (s *ConfigService) Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	// Use test configuration file if ENV is set to test
	if os.Getenv("ENV") == "test" {
		viper.SetConfigName("config_test")
	} else {
		viper.SetConfigName("config")
	}
	viper.SetConfigType("yaml")

	// Set default values
	s.setDefaults()

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	// Validate the configuration
	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", nil)
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *ConfigService) setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.timezone", "UTC")
	viper.SetDefault("database.pool.maxOpen", 100)
	viper.SetDefault("database.pool.maxIdle", 10)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.jwt.accessTokenTTL", 30*time.Minute)
	viper.SetDefault("auth.jwt.refreshTokenTTL", 7*24*time.Hour)
	viper.SetDefault("storage.s3.endpoint", "localhost:9000")
	viper.SetDefault("storage.s3.bucket", "atrium")
	viper.SetDefault("pulsar.url", "pulsar://localhost:6650")
	viper.SetDefault("pulsar.operation_timeout", 30*time.Second)
	viper.SetDefault("pulsar.connection_timeout", 30*time.Second)
	viper.SetDefault("events.enabled", false)
	viper.SetDefault("events.user_events_topic", "persistent://public/default/user-events")
	viper.SetDefault("events.subscription", "atrium-audit")
	viper.SetDefault("pagination.defaultSize", 20)
	viper.SetDefault("pagination.maxSize", 100)
	viper.SetDefault("logging.level", "info")
}

// validate performs validation on the configuration
func (s *ConfigService) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Database.Port <= 0 {
		return fmt.Errorf("invalid database port")
	}

	if config.Auth.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if config.Pagination.DefaultSize < 1 || config.Pagination.MaxSize < config.Pagination.DefaultSize {
		return fmt.Errorf("invalid pagination settings")
	}

	return nil
}
