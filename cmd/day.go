package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/scenario"
	"github.com/ewoodward/gridshift/griddata"
	"github.com/ewoodward/gridshift/infra/logger"
)

var (
	dayDate     string
	dayStrategy string
	dayHours    int
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Simulate a single day and print the full detail as JSON",
	RunE:  runDay,
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "day to simulate (2006-01-02)")
	dayCmd.Flags().StringVar(&dayStrategy, "strategy", model.StrategyLowIntensity.String(), "shifting strategy")
	dayCmd.Flags().IntVar(&dayHours, "hours", 0, "target hours (defaults to scenario.target_hours)")
	_ = dayCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Env); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", dayDate)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dayDate, err)
	}
	day := model.Day(date)
	strat, err := model.ParseStrategy(dayStrategy)
	if err != nil {
		return err
	}
	hours := dayHours
	if hours == 0 {
		hours = cfg.Scenario.TargetHours
	}

	provider, err := griddata.NewProvider(cfg.Signal, logger.New("griddata"))
	if err != nil {
		return fmt.Errorf("signal provider: %w", err)
	}
	days, err := provider.Days(ctx, day, day)
	if err != nil {
		return fmt.Errorf("fetch signal: %w", err)
	}
	if len(days) == 0 {
		return fmt.Errorf("no signal for %s", dayDate)
	}
	profile, err := cfg.Household.Profile()
	if err != nil {
		return err
	}

	engine := scenario.NewEngine(logger.New("engine"))
	res, err := engine.SimulateDay(days[0], profile, strat, hours)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
