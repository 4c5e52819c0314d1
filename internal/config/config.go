// Package config loads application configuration and user settings. The
// service endpoints and verification keys come from a YAML file or
// environment variables via viper, while per-user preferences are stored
// through the Fyne preferences API.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultServiceURL is the conversion service the client talks to.
	DefaultServiceURL = "https://api.imgshift.app"

	// DefaultVerifyURL is the verification provider endpoint.
	DefaultVerifyURL = "https://verify.imgshift.app"

	// DefaultVerifyAction labels verification requests issued for
	// conversions.
	DefaultVerifyAction = "convert"
)

// AppConfig holds the deploy-time configuration of the client. A missing
// site key is not an error here; it leaves verification in the
// not-configured state and the UI explains why conversion is unavailable.
type AppConfig struct {
	ServiceURL    string `mapstructure:"service_url"`
	VerifySiteKey string `mapstructure:"verify_site_key"`
	VerifyURL     string `mapstructure:"verify_url"`
	VerifyAction  string `mapstructure:"verify_action"`
}

// Load reads imgshift.yaml from the working directory or the user config
// directory, applies IMGSHIFT_* environment overrides, and fills defaults.
// A missing config file is not an error.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("imgshift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "imgshift"))
	}

	v.SetEnvPrefix("IMGSHIFT")
	v.AutomaticEnv()

	v.SetDefault("service_url", DefaultServiceURL)
	v.SetDefault("verify_site_key", "")
	v.SetDefault("verify_url", DefaultVerifyURL)
	v.SetDefault("verify_action", DefaultVerifyAction)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration values the client cannot start with.
func (c *AppConfig) Validate() error {
	if c.ServiceURL == "" {
		return errors.New("service_url must not be empty")
	}
	if err := validateURL(c.ServiceURL); err != nil {
		return fmt.Errorf("service_url: %w", err)
	}
	if c.VerifyURL == "" {
		return errors.New("verify_url must not be empty")
	}
	if err := validateURL(c.VerifyURL); err != nil {
		return fmt.Errorf("verify_url: %w", err)
	}
	if c.VerifyAction == "" {
		return errors.New("verify_action must not be empty")
	}
	return nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
