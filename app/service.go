package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewoodward/gridshift/config"
	coremetrics "github.com/ewoodward/gridshift/core/metrics"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/monitoring"
	coremqtt "github.com/ewoodward/gridshift/core/mqtt"
	"github.com/ewoodward/gridshift/core/results"
	"github.com/ewoodward/gridshift/core/scenario"
	"github.com/ewoodward/gridshift/griddata"
	"github.com/ewoodward/gridshift/infra/logger"
	"github.com/ewoodward/gridshift/infra/metrics"
	inframonitoring "github.com/ewoodward/gridshift/infra/monitoring"
	"github.com/ewoodward/gridshift/infra/mqtt"
	infraresults "github.com/ewoodward/gridshift/infra/results"
	"github.com/ewoodward/gridshift/internal/eventbus"
)

// Service wires the signal provider, the scenario runner, the result store,
// the metric sinks and the optional publisher into one runnable unit.
type Service struct {
	Provider  griddata.SignalProvider
	Store     results.Store
	Sink      coremetrics.Sink
	Publisher coremqtt.ResultPublisher

	runner      *scenario.Runner
	bus         *eventbus.Bus[coremetrics.DayEvent]
	profile     model.HouseholdProfile
	strategies  []model.Strategy
	targetHours int
	from, to    time.Time
	promAddr    string
	log         logger.Logger
}

// Report is the outcome of one sweep.
type Report struct {
	RunID     string
	Rows      []results.DayResult
	Summaries []results.Summary
	Days      int
	Duration  time.Duration
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Env); err != nil {
		return nil, err
	}
	logg := logger.New("service")
	monitor, err := inframonitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(monitor)

	provider, err := griddata.NewProvider(cfg.Signal, logger.New("griddata"))
	if err != nil {
		return nil, fmt.Errorf("signal provider: %w", err)
	}
	store, err := infraresults.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("result store: %w", err)
	}
	sink, err := coremetrics.NewFromConfigs(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metric sinks: %w", err)
	}
	var publisher coremqtt.ResultPublisher
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		publisher = pub
	}
	profile, err := cfg.Household.Profile()
	if err != nil {
		return nil, err
	}
	strategies, err := cfg.Scenario.StrategyList()
	if err != nil {
		return nil, err
	}
	from, to, err := cfg.Scenario.Range()
	if err != nil {
		return nil, err
	}

	engine := scenario.NewEngine(logger.New("engine"))
	return &Service{
		Provider:    provider,
		Store:       store,
		Sink:        sink,
		Publisher:   publisher,
		runner:      scenario.NewRunner(engine, cfg.Scenario.Workers, logger.New("runner")),
		bus:         eventbus.New[coremetrics.DayEvent](),
		profile:     profile,
		strategies:  strategies,
		targetHours: cfg.Scenario.TargetHours,
		from:        from,
		to:          to,
		promAddr:    cfg.Metrics.PromAddr,
		log:         logg,
	}, nil
}

// Start launches the background pieces bound to ctx: the day event
// collector feeding the sinks and, when an address is configured, the
// Prometheus endpoint. It returns immediately.
func (s *Service) Start(ctx context.Context) {
	metrics.StartEventCollector(ctx, s.bus, s.Sink)
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
}

// Run executes one sweep over the configured date range: fetch signals,
// simulate every (day, strategy) pair, persist the rows, publish them and
// record the run on the sinks.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	start := time.Now()

	days, err := s.Provider.Days(ctx, s.from, s.to)
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"module": "griddata", "run_id": runID})
		return nil, fmt.Errorf("fetch signals: %w", err)
	}
	if len(days) == 0 {
		s.log.Warnf("no complete days between %s and %s",
			s.from.Format("2006-01-02"), s.to.Format("2006-01-02"))
		return &Report{RunID: runID, Duration: time.Since(start)}, nil
	}

	rows, err := s.runner.Run(ctx, days, s.profile, s.strategies, s.targetHours)
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"module": "scenario", "run_id": runID})
		return nil, err
	}
	if err := s.Store.Append(ctx, rows); err != nil {
		monitoring.CaptureException(err, map[string]string{"module": "results", "run_id": runID})
		return nil, fmt.Errorf("persist results: %w", err)
	}

	now := time.Now()
	for _, row := range rows {
		s.bus.Publish(coremetrics.DayEvent{Result: row, RunID: runID, Time: now})
	}
	s.publish(ctx, rows)

	summaries := scenario.Summarize(rows)
	report := &Report{
		RunID:     runID,
		Rows:      rows,
		Summaries: summaries,
		Days:      len(days),
		Duration:  time.Since(start),
	}
	if rec, ok := s.Sink.(coremetrics.RunRecorder); ok {
		ev := coremetrics.RunEvent{
			RunID:     runID,
			Summaries: summaries,
			Days:      len(days),
			Duration:  report.Duration,
			Time:      time.Now(),
		}
		if err := rec.RecordRun(ev); err != nil {
			s.log.Errorf("record run: %v", err)
		}
	}
	s.log.Infof("run %s: %d days, %d rows in %s", runID, len(days), len(rows), report.Duration)
	return report, nil
}

// publish sends every row to the configured publisher. Publish failures are
// logged and do not fail the run; the publisher reports them to monitoring
// once its retries are exhausted.
func (s *Service) publish(ctx context.Context, rows []results.DayResult) {
	if s.Publisher == nil {
		return
	}
	for _, row := range rows {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Publisher.PublishResult(row); err != nil {
			s.log.Errorf("publish %s %s: %v", row.Date.Format("2006-01-02"), row.Strategy, err)
		}
	}
}

// Close releases the store, the sinks and the publisher connection.
func (s *Service) Close() error {
	s.bus.Close()
	if p, ok := s.Publisher.(*mqtt.PahoPublisher); ok && p != nil {
		p.Disconnect()
	}
	err := s.Store.Close()
	if serr := s.Sink.Close(); err == nil {
		err = serr
	}
	monitoring.Flush(2 * time.Second)
	return err
}
