package cmd

import (
	"fmt"

	"github.com/rigtools/regroup/internal/core/config"
	"github.com/rigtools/regroup/internal/core/db"
	"github.com/rigtools/regroup/internal/core/logging"
	"github.com/rigtools/regroup/internal/core/store"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	configFile string
	dbURL      string
	logLevel   string
	logFormat  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "regroup",
	Short:   "Vertex group rename and weight merge engine",
	Long:    `regroup batch-renames vertex groups and armature bones through preset rulesets, merging weights when renames collide.`,
	Version: Version,

	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DBURL = dbURL
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		logging.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
}

func Execute() error {
	return rootCmd.Execute()
}

// presetOrDefault falls back to the configured default preset when no
// --preset flag was given.
func presetOrDefault(name string) string {
	if name == "" {
		return cfg.DefaultPreset
	}
	return name
}

// openStore opens the configured database, applies pending migrations, and
// returns a ready store. Migrating on open keeps the common local SQLite
// case zero-setup; postgres deployments see the same migrations the
// migrate command would run.
func openStore() (*store.Store, func(), error) {
	conn, err := db.Open(cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.MigrateUp(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	queries, err := db.LoadQueries(conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	s := store.New(queries)
	if err := s.EnsureDefault(); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return s, func() { conn.Close() }, nil
}
