package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string        `mapstructure:"environment"`
	Server      ServerConfig  `mapstructure:"server"`
	Store       StoreConfig   `mapstructure:"store"`
	Session     SessionConfig `mapstructure:"session"`
	Auth        AuthConfig    `mapstructure:"auth"`
	Logger      LoggerConfig  `mapstructure:"logger"`
}

// ServerConfig contains TCP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"` // seconds
}

// StoreConfig locates the record files on disk
type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

// SessionConfig bounds the session registry
type SessionConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// AuthConfig contains password hashing settings
type AuthConfig struct {
	BcryptCost int `mapstructure:"bcryptCost"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}
