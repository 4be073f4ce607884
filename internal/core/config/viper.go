package config

import (
	"fmt"
	"strings"

	"github.com/rigtools/regroup/internal/rules"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults matching DefaultConfig
	v.SetDefault("db_url", "sqlite://regroup.db")
	v.SetDefault("default_preset", "Default")
	v.SetDefault("mirror.left_marker", "L_")
	v.SetDefault("mirror.right_marker", "R_")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Bind environment variables with REGROUP_ prefix
	v.SetEnvPrefix("REGROUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DBURL:         v.GetString("db_url"),
		DefaultPreset: v.GetString("default_preset"),
		LeftMarker:    v.GetString("mirror.left_marker"),
		RightMarker:   v.GetString("mirror.right_marker"),
		LogLevel:      v.GetString("log.level"),
		LogFormat:     v.GetString("log.format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfig checks the database URL scheme, the default preset name,
// and the mirror markers.
func validateConfig(cfg *Config) error {
	switch cfg.DBDriver() {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db_url must use sqlite:// or postgres:// scheme, got %q", cfg.DBURL)
	}
	if cfg.DefaultPreset == "" {
		return fmt.Errorf("default_preset must not be empty")
	}
	if err := rules.ValidateMarkers(cfg.LeftMarker, cfg.RightMarker); err != nil {
		return fmt.Errorf("mirror markers %q/%q: %w", cfg.LeftMarker, cfg.RightMarker, err)
	}
	return nil
}
