package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/config"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/domain/recording"
	"github.com/fieldstack/snaglist/internal/sqlite"
	"github.com/fieldstack/snaglist/internal/store"
)

// Global flag values.
var (
	flagConfig string
	flagDB     string
	flagJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "snaglist",
	Short: "snaglist is a local snag-list store for construction projects",
	Long: `snaglist keeps a construction project's defect list in a local SQLite
store: projects, numbered entries with photo annotations, and voice
recordings. It can also serve the store to MCP collaborators.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $SNAGLIST_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file (default: snaglist.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(recordingCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("snaglist v0.1.0")
	},
}

// app bundles the wired services for one command invocation.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	store      *store.Store
	projects   *project.Service
	entries    *entry.Service
	recordings *recording.Service
	backup     *backup.Service
}

// newApp loads configuration, opens the store, and wires the services.
// The caller must call close when done.
func newApp(ctx context.Context) (*app, error) {
	if flagConfig != "" {
		os.Setenv("SNAGLIST_CONFIG_PATH", flagConfig)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.DB.Path = flagDB
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	st := store.New(store.Config{Path: cfg.DB.Path}, logger)
	db, err := st.Handle(ctx)
	if err != nil {
		return nil, err
	}

	projectRepo := sqlite.NewProjectRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)
	recordingRepo := sqlite.NewRecordingRepository(db)
	backupRepo := sqlite.NewBackupRepository(db)

	projectSvc := project.NewService(projectRepo, logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		projects:   projectSvc,
		entries:    entry.NewService(entryRepo, projectSvc, logger),
		recordings: recording.NewService(recordingRepo, logger),
		backup:     backup.NewService(backupRepo, logger),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("closing store", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
