package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	DNB     DNBConfig     `mapstructure:"dnb"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DNBConfig holds the resolver API connection details
type DNBConfig struct {
	URL      string        `mapstructure:"api_url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Tracing  bool          `mapstructure:"tracing"`
}

// BatchConfig controls concurrent existence checks
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
