// Package cli implements the sequentialthinking CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nalyk/sequentialthinking/internal/config"
	"github.com/nalyk/sequentialthinking/internal/engine"
	"github.com/nalyk/sequentialthinking/internal/store"
)

var (
	dbPath    string
	configDir string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "sequentialthinking",
	Short: "Sequential reasoning engine with durable, searchable history",
	Long: "An engine for numbered reasoning steps with revisions, branches, and a\n" +
		"hypothesis/verification workflow. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SEQTHINK_DB_PATH or ~/.sequentialthinking/thinking.db)")
	RootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "", "Config directory holding config.yaml (default: ~/.sequentialthinking)")
}

func loadConfig() (*config.Config, error) {
	dir := configDir
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".sequentialthinking")
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath)
}

func newLogger(cfg *config.Config) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newEngine wires config, store, and logger into an engine; the caller owns
// closing the returned store.
func newEngine() (*engine.Engine, *store.SQLiteStore, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg)
	eng, err := engine.New(s, cfg.Limits, logger)
	if err != nil {
		s.Close()
		return nil, nil, nil, err
	}
	return eng, s, logger, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
