package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	resultsapi "github.com/ewoodward/gridshift/api/results"
	scenarioapi "github.com/ewoodward/gridshift/api/scenario"
	"github.com/ewoodward/gridshift/app"
	"github.com/ewoodward/gridshift/core/scenario"
	"github.com/ewoodward/gridshift/infra/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the results and scenario HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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

	profile, err := cfg.Household.Profile()
	if err != nil {
		return err
	}
	logg := logger.New("api")
	engine := scenario.NewEngine(logger.New("engine"))

	mux := http.NewServeMux()
	resultsapi.NewHandler(svc.Store, cfg.API.Token, logg).RegisterRoutes(mux)
	scenarioapi.NewHandler(svc.Provider, engine, profile, cfg.Scenario.TargetHours, cfg.API.Token, logg).RegisterRoutes(mux)

	srv := &http.Server{Addr: cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Errorf("server shutdown: %v", err)
		}
	}()
	logg.Infof("listening on %s", cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
