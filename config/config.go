package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/dnburn/dnb"
)

// EnvPrefix is prepended to environment overrides, e.g. DNBURN_DNB_USERNAME
const EnvPrefix = "DNBURN"

// Load loads the configuration from file and environment.
// A missing config file is not an error when no explicit path is given.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".dnburn"))
		}

		// Check /etc
		v.AddConfigPath("/etc/dnburn/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
// Every key is registered so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("dnb.api_url", dnb.DefaultBaseURL)
	v.SetDefault("dnb.username", "")
	v.SetDefault("dnb.password", "")
	v.SetDefault("dnb.timeout", dnb.DefaultTimeout)
	v.SetDefault("dnb.tracing", true)

	v.SetDefault("batch.concurrency", dnb.DefaultConcurrency)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.DNB.URL == "" {
		return fmt.Errorf("dnb.api_url is required")
	}

	u, err := url.Parse(cfg.DNB.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("dnb.api_url must be an http(s) URL: %s", cfg.DNB.URL)
	}

	if cfg.DNB.Timeout <= 0 {
		return fmt.Errorf("dnb.timeout must be positive: %s", cfg.DNB.Timeout)
	}

	if cfg.Batch.Concurrency < 1 || cfg.Batch.Concurrency > dnb.MaxConcurrency {
		return fmt.Errorf("batch.concurrency must be between 1 and %d: %d", dnb.MaxConcurrency, cfg.Batch.Concurrency)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
