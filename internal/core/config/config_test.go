package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBURL != "sqlite://regroup.db" {
		t.Errorf("DBURL = %q, want %q", cfg.DBURL, "sqlite://regroup.db")
	}
	if cfg.DefaultPreset != "Default" {
		t.Errorf("DefaultPreset = %q, want %q", cfg.DefaultPreset, "Default")
	}
	if cfg.LeftMarker != "L_" || cfg.RightMarker != "R_" {
		t.Errorf("markers = %q/%q, want L_/R_", cfg.LeftMarker, cfg.RightMarker)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("REGROUP_DB_URL", "postgres://localhost/regroup?sslmode=disable")
	t.Setenv("REGROUP_DEFAULT_PRESET", "Humanoid")
	t.Setenv("REGROUP_MIRROR_LEFT_MARKER", "Left")
	t.Setenv("REGROUP_MIRROR_RIGHT_MARKER", "Right")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBDriver() != "postgres" {
		t.Errorf("DBDriver() = %q, want %q", cfg.DBDriver(), "postgres")
	}
	if cfg.DefaultPreset != "Humanoid" {
		t.Errorf("DefaultPreset = %q, want %q", cfg.DefaultPreset, "Humanoid")
	}
	if cfg.LeftMarker != "Left" || cfg.RightMarker != "Right" {
		t.Errorf("markers = %q/%q, want Left/Right", cfg.LeftMarker, cfg.RightMarker)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `db_url: sqlite:///tmp/team.db
default_preset: Team
mirror:
  left_marker: "l."
  right_marker: "r."
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBURL != "sqlite:///tmp/team.db" {
		t.Errorf("DBURL = %q, want %q", cfg.DBURL, "sqlite:///tmp/team.db")
	}
	if cfg.DefaultPreset != "Team" {
		t.Errorf("DefaultPreset = %q, want %q", cfg.DefaultPreset, "Team")
	}
	if cfg.LeftMarker != "l." || cfg.RightMarker != "r." {
		t.Errorf("markers = %q/%q, want l./r.", cfg.LeftMarker, cfg.RightMarker)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() error = nil, want read error")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		valid bool
	}{
		{
			name:  "unknown db scheme",
			env:   map[string]string{"REGROUP_DB_URL": "mysql://localhost/db"},
			valid: false,
		},
		{
			name:  "url without scheme",
			env:   map[string]string{"REGROUP_DB_URL": "regroup.db"},
			valid: false,
		},
		{
			name:  "empty default preset",
			env:   map[string]string{"REGROUP_DEFAULT_PRESET": ""},
			valid: true, // empty env value falls through to the default
		},
		{
			name: "prefixing markers",
			env: map[string]string{
				"REGROUP_MIRROR_LEFT_MARKER":  "L",
				"REGROUP_MIRROR_RIGHT_MARKER": "L_",
			},
			valid: false,
		},
		{
			name: "identical markers",
			env: map[string]string{
				"REGROUP_MIRROR_LEFT_MARKER":  "M_",
				"REGROUP_MIRROR_RIGHT_MARKER": "M_",
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			if tt.valid && err != nil {
				t.Errorf("LoadConfig() error = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("LoadConfig() error = nil, want validation error")
			}
		})
	}
}
