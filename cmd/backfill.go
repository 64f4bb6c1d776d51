package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ewoodward/gridshift/core/scenario"
	"github.com/ewoodward/gridshift/griddata"
	"github.com/ewoodward/gridshift/infra/logger"
	infraresults "github.com/ewoodward/gridshift/infra/results"
	"github.com/ewoodward/gridshift/jobs/backfill"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Simulate and store only the missing (date, strategy) rows",
	RunE:  runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Env); err != nil {
		return err
	}
	logg := logger.New("backfill")

	provider, err := griddata.NewProvider(cfg.Signal, logger.New("griddata"))
	if err != nil {
		return fmt.Errorf("signal provider: %w", err)
	}
	store, err := infraresults.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("result store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Errorf("store close: %v", err)
		}
	}()

	profile, err := cfg.Household.Profile()
	if err != nil {
		return err
	}
	strategies, err := cfg.Scenario.StrategyList()
	if err != nil {
		return err
	}
	from, to, err := cfg.Scenario.Range()
	if err != nil {
		return err
	}
	days, err := provider.Days(ctx, from, to)
	if err != nil {
		return fmt.Errorf("fetch signals: %w", err)
	}

	engine := scenario.NewEngine(logger.New("engine"))
	added, err := backfill.Backfill(ctx, store, days, profile, strategies, cfg.Scenario.TargetHours, engine, logg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d rows\n", added)
	return nil
}
