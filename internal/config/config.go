package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the site runtime configuration. Values come from an optional
// config.yaml and LR_-prefixed environment variables; env wins.
type Config struct {
	Addr         string    `mapstructure:"addr"`
	BaseURL      string    `mapstructure:"base_url"`
	ContentDir   string    `mapstructure:"content_dir"`
	TemplatesDir string    `mapstructure:"templates_dir"`
	PublicDir    string    `mapstructure:"public_dir"`
	Dev          bool      `mapstructure:"dev"`
	Analytics    Analytics `mapstructure:"analytics"`
}

// Analytics carries client instrumentation ids surfaced to templates.
type Analytics struct {
	GA4MeasurementID string `mapstructure:"ga4_measurement_id"`
	GTMContainerID   string `mapstructure:"gtm_container_id"`
	Debug            bool   `mapstructure:"debug"`
}

// Load reads configuration from config.yaml (when present) and the
// environment.
func Load() (*Config, error) {
	v := viper.New()

	// Port resolution matches the deploy targets: prefer LR_ADDR, then
	// Cloud Run's PORT, else 8080.
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	v.SetDefault("addr", ":"+port)
	v.SetDefault("base_url", "https://langu-remontas.com")
	v.SetDefault("content_dir", "content")
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("public_dir", "public")
	v.SetDefault("dev", false)

	v.SetEnvPrefix("LR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
