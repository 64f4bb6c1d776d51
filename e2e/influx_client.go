// Package e2e exercises the InfluxDB sink against a real server started via
// testcontainers.
package e2e

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient is a small helper around the official InfluxDB v2 client. It
// exposes the query helpers the round-trip assertions need and hides the
// org/bucket plumbing.
type InfluxClient struct {
	bucket string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a client for a running, initialized server.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{bucket: bucket, client: c, query: c.QueryAPI(org)}
}

// CountPoints returns the number of stored points carrying the given
// measurement and field. Simulated days are timestamped at their historical
// date, so the range starts far in the past.
func (c *InfluxClient) CountPoints(ctx context.Context, measurement, field string) (int, error) {
	flux := fmt.Sprintf(`from(bucket:%q)
 |> range(start: 2000-01-01T00:00:00Z)
 |> filter(fn: (r) => r._measurement == %q and r._field == %q)`, c.bucket, measurement, field)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	n := 0
	for res.Next() {
		n++
	}
	return n, res.Err()
}

// ValidReduction returns the reduction_pct of the single valid day_result
// point stored for the strategy.
func (c *InfluxClient) ValidReduction(ctx context.Context, strategy string) (float64, error) {
	flux := fmt.Sprintf(`from(bucket:%q)
 |> range(start: 2000-01-01T00:00:00Z)
 |> filter(fn: (r) => r._measurement == "day_result" and r._field == "reduction_pct")
 |> filter(fn: (r) => r.strategy == %q and r.valid == "true")`, c.bucket, strategy)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	for res.Next() {
		if v, ok := res.Record().Value().(float64); ok {
			return v, nil
		}
	}
	if err := res.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("no valid reduction_pct point for %s", strategy)
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
