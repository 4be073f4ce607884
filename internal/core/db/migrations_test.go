package db

import (
	"path/filepath"
	"testing"
)

func TestMigrateUpFreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	conn, err := Open("sqlite://" + path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	for _, table := range []string{"presets", "rulesets"} {
		var name string
		err := conn.Get(&name,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}

	// Second run must be a clean no-op
	if err := MigrateUp(conn); err != nil {
		t.Fatalf("second MigrateUp() error = %v", err)
	}

	statuses, err := MigrateStatus(conn)
	if err != nil {
		t.Fatalf("MigrateStatus() error = %v", err)
	}
	if len(statuses) == 0 {
		t.Fatal("MigrateStatus() returned no migrations")
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("migration %s not applied", s.ID)
		}
	}
}

func TestStripSQLComments(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "plain statement untouched",
			script: "SELECT 1",
			want:   "SELECT 1",
		},
		{
			name:   "comment only",
			script: "  -- just a note",
			want:   "",
		},
		{
			name:   "header comment with semicolon does not leak into the statement",
			script: "-- first clause; second clause\nCREATE TABLE t (x INTEGER)",
			want:   "CREATE TABLE t (x INTEGER)",
		},
		{
			name:   "comment between statements",
			script: "CREATE TABLE a (x INTEGER);\n-- divider\nCREATE TABLE b (y INTEGER);",
			want:   "CREATE TABLE a (x INTEGER);\nCREATE TABLE b (y INTEGER);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripSQLComments(tt.script); got != tt.want {
				t.Errorf("stripSQLComments() = %q, want %q", got, tt.want)
			}
		})
	}
}
