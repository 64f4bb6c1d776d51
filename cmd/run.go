package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ewoodward/gridshift/app"
	"github.com/ewoodward/gridshift/infra/logger"
	"github.com/ewoodward/gridshift/pkg/export"
)

var runOut string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the configured date range and persist the results",
	RunE:  runSweep,
}

func init() {
	runCmd.Flags().StringVar(&runOut, "out", "", "also export the rows to a .csv or .json file")
	rootCmd.AddCommand(runCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	svc.Start(ctx)

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	for _, s := range report.Summaries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d days (%d skipped), mean %.2f%%, std %.2f%%, min %.2f%%, max %.2f%%\n",
			s.Strategy, s.Days, s.Skipped, s.MeanPct, s.StdPct, s.MinPct, s.MaxPct)
	}
	if runOut == "" {
		return nil
	}
	return exportRows(runOut, report)
}

func exportRows(path string, report *app.Report) error {
	var write func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = func(f *os.File) error { return export.WriteCSV(f, report.Rows) }
	case ".json":
		write = func(f *os.File) error { return export.WriteJSON(f, report.Rows) }
	default:
		return fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
