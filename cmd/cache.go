package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"openshelf/core/config"
	"openshelf/core/database"
	"openshelf/core/logger"
	"openshelf/feature/cache"
	"openshelf/feature/cache/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for cache maintenance commands
	rebuildFile  string
	cacheConfirm bool
)

// cacheCmd is the parent command for all cache maintenance operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the external content cache",
	Long: `Maintenance operations over the external content cache.
Supports clearing all cached entries, rebuilding from a source dump,
and reporting classification statistics.`,
}

// cacheCleanCmd removes every cached entry.
var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete all cached external entries",
	Long: `Delete every entry from the external content cache.

Examples:
  # Clean with interactive confirmation
  cache clean

  # Clean with auto-confirm (non-interactive)
  cache clean --yes`,
	RunE: runCacheClean,
}

// cacheRebuildCmd clears the cache and repopulates it from a source dump.
var cacheRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the cache from a source record dump",
	Long: `Clear the cache, then repopulate it from a JSON file of source records.
Records whose ids do not have the external shape are skipped.

Examples:
  # Rebuild from a dump (with interactive confirmation)
  cache rebuild --file records.json

  # Rebuild with auto-confirm
  cache rebuild --file records.json --yes`,
	RunE: runCacheRebuild,
}

// cacheStatsCmd reports classification statistics.
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report cache classification statistics",
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheRebuildCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	cacheRebuildCmd.Flags().StringVar(&rebuildFile, "file", "", "JSON file of source records (required)")
	_ = cacheRebuildCmd.MarkFlagRequired("file")

	cacheCleanCmd.Flags().BoolVar(&cacheConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	cacheRebuildCmd.Flags().BoolVar(&cacheConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(cacheCmd)
}

// newCoordinator loads config, connects to the database and builds the
// maintenance coordinator shared by the cache subcommands.
func newCoordinator() (*cache.Coordinator, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := cache.NewStore(db)
	classifier := cache.Classifier{Prefix: cfg.Cache.Prefix}
	return cache.NewCoordinator(store, classifier, l), l, nil
}

func runCacheClean(cmd *cobra.Command, args []string) error {
	coordinator, l, err := newCoordinator()
	if err != nil {
		return err
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	result, err := coordinator.CleanAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}

	l.Info("Cache cleaned",
		zap.Int("deleted", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return nil
}

func runCacheRebuild(cmd *cobra.Command, args []string) error {
	coordinator, l, err := newCoordinator()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(rebuildFile)
	if err != nil {
		return fmt.Errorf("failed to read source dump: %w", err)
	}

	var records []models.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse source dump: %w", err)
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Rebuilding cache", zap.Int("records", len(records)))
	result, err := coordinator.RebuildFromSource(context.Background(), records)
	if err != nil {
		return fmt.Errorf("failed to rebuild cache: %w", err)
	}

	l.Info("Cache rebuilt",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	coordinator, l, err := newCoordinator()
	if err != nil {
		return err
	}

	stats, err := coordinator.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	l.Info("Cache statistics",
		zap.Int("total", stats.Total),
		zap.Int("valid_external", stats.ValidExternal),
		zap.Int("native_shadow", stats.NativeShadow),
		zap.Int("suspicious", stats.Suspicious),
	)
	for _, d := range stats.Details {
		l.Info("Entry",
			zap.String("id", d.ID),
			zap.String("title", d.Title),
			zap.String("classification", string(d.Classification)),
		)
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if cacheConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
