package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ewoodward/gridshift/core/metrics"
	"github.com/ewoodward/gridshift/infra/logger"
)

// InfluxSink writes simulation events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying InfluxDB client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

// RecordDay writes the day result as a line protocol point timestamped at
// the simulated day's midnight.
func (s *InfluxSink) RecordDay(ev coremetrics.DayEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r := ev.Result
	ts := r.Date
	if ts.IsZero() {
		ts = ev.Time
	}
	p := write.NewPointWithMeasurement("day_result").
		AddTag("strategy", r.Strategy).
		AddTag("run_id", ev.RunID).
		AddTag("valid", strconv.FormatBool(r.Valid)).
		AddField("baseline_g", round3(r.BaselineG)).
		AddField("shifted_g", round3(r.ShiftedG)).
		AddField("reduction_pct", round3(r.ReductionPct)).
		AddField("target_hours", len(r.TargetHours)).
		SetTime(ts)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRun writes one summary point per strategy.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, sum := range ev.Summaries {
		p := write.NewPointWithMeasurement("run_summary").
			AddTag("strategy", sum.Strategy).
			AddTag("run_id", ev.RunID).
			AddField("days", sum.Days).
			AddField("skipped", sum.Skipped).
			AddField("mean_pct", round3(sum.MeanPct)).
			AddField("std_pct", round3(sum.StdPct)).
			AddField("min_pct", round3(sum.MinPct)).
			AddField("max_pct", round3(sum.MaxPct)).
			SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
