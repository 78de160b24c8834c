package config

import (
	"time"

	"github.com/atriumlabs/atrium/backend/internal/cache"
	"github.com/atriumlabs/atrium/backend/internal/logger"
)

// Config represents the application configuration
type Config struct {
	Environment string           `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig     `mapstructure:"server" yaml:"server"`
	Database    DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Redis       cache.Config     `mapstructure:"redis" yaml:"redis"`
	Storage     StorageConfig    `mapstructure:"storage" yaml:"storage"`
	Logging     logger.Config    `mapstructure:"logging" yaml:"logging"`
	Auth        AuthConfig       `mapstructure:"auth" yaml:"auth"`
	Pulsar      PulsarConfig     `mapstructure:"pulsar" yaml:"pulsar"`
	Events      EventsConfig     `mapstructure:"events" yaml:"events"`
	Pagination  PaginationConfig `mapstructure:"pagination" yaml:"pagination"`
}

// AuthConfig represents authentication configuration settings
type AuthConfig struct {
	JWT struct {
		Secret          string        `mapstructure:"secret"`
		AccessTokenTTL  time.Duration `mapstructure:"accessTokenTTL"`
		RefreshTokenTTL time.Duration `mapstructure:"refreshTokenTTL"`
	} `mapstructure:"jwt"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig represents database configuration settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Dbname   string `mapstructure:"dbname"`
	Port     int    `mapstructure:"port"`
	Sslmode  string `mapstructure:"sslmode"`
	Timezone string `mapstructure:"timezone"`
	Pool     struct {
		MaxOpen int `mapstructure:"maxOpen"`
		MaxIdle int `mapstructure:"maxIdle"`
	} `mapstructure:"pool"`
}

// StorageConfig represents object storage configuration settings
type StorageConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

// S3Config represents S3-compatible object storage settings
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	UseSSL          bool   `mapstructure:"useSSL"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
}

// PulsarConfig represents Apache Pulsar configuration settings
type PulsarConfig struct {
	URL               string        `mapstructure:"url" yaml:"url"`
	OperationTimeout  time.Duration `mapstructure:"operation_timeout" yaml:"operation_timeout"`
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout"`
}

// EventsConfig represents event bus configuration settings
type EventsConfig struct {
	Enabled         bool   `mapstructure:"enabled" yaml:"enabled"`
	UserEventsTopic string `mapstructure:"user_events_topic" yaml:"user_events_topic"`
	Subscription    string `mapstructure:"subscription" yaml:"subscription"`
}

// PaginationConfig represents list pagination settings
type PaginationConfig struct {
	DefaultSize int `mapstructure:"defaultSize"`
	MaxSize     int `mapstructure:"maxSize"`
}
