// Package config provides configuration management for the regroup CLI.
package config

import (
	"strings"
)

// Config holds the settings shared by every regroup command.
type Config struct {
	DBURL         string
	DefaultPreset string
	LeftMarker    string
	RightMarker   string
	LogLevel      string
	LogFormat     string
}

// DefaultConfig returns configuration with default values: a local SQLite
// store next to the working directory and the common L_/R_ side markers.
func DefaultConfig() *Config {
	return &Config{
		DBURL:         "sqlite://regroup.db",
		DefaultPreset: "Default",
		LeftMarker:    "L_",
		RightMarker:   "R_",
		LogLevel:      "warn",
		LogFormat:     "console",
	}
}

// DBDriver reports the driver scheme of the configured database URL.
func (c *Config) DBDriver() string {
	scheme, _, found := strings.Cut(c.DBURL, "://")
	if !found {
		return ""
	}
	return scheme
}
