// Package cmd wires the wolter command-line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/config"
	"github.com/simonSlamka/wolter/internal/ledger"
	"github.com/simonSlamka/wolter/internal/model"
	"github.com/simonSlamka/wolter/internal/pipeline"
)

var (
	flagLogPath string
	flagQuiet   bool
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "wolter",
	Short: "Earnings-cycle accounting and forecasting",
	Long:  "Track hourly earnings over bi-monthly pay cycles: tax-adjusted profit, forecasts, and schedule plans.",
	RunE:  runCycle,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLogPath, "log", "l", "", "Record log path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
}

// loadConfig reads the config file; a broken config aborts every command
// early since all policy constants come from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// openLog opens the record log named by flag or config.
func openLog(cfg config.Config) (*ledger.Log, error) {
	path := cfg.General.LogPath
	if flagLogPath != "" {
		path = flagLogPath
	}
	l, err := ledger.Open(path)
	if err != nil {
		return nil, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %d records from %s\n", len(l.Records()), path)
	}
	return l, nil
}

// loadState is the shared load path: config, record log, and daily
// aggregates as of today.
func loadState() (config.Config, *ledger.Log, []model.DailyAggregate, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	l, err := openLog(cfg)
	if err != nil {
		return cfg, nil, nil, err
	}
	dailies := pipeline.DailyAggregates(l.Records(), time.Now())
	return cfg, l, dailies, nil
}

// cachePath returns the activity cache location next to the record log.
func cachePath() string {
	return filepath.Join(config.DataDir(), "activity.db")
}
