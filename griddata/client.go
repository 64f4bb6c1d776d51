package griddata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/griddata/auth"
	"github.com/ewoodward/gridshift/infra/logger"
)

// apiRecord is one hourly record as served by the carbon intensity API.
type apiRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	CarbonIntensity float64   `json:"carbon_intensity"`
	RenewableShare  float64   `json:"renewable_share"`
}

// APIClient fetches hourly grid records from a remote carbon intensity API.
// Authentication is optional; when client credentials are configured every
// request carries a bearer token from the shared token holder.
type APIClient struct {
	base   string
	client *http.Client
	cred   *auth.ClientCred
	log    logger.Logger
}

// NewAPIClient creates a client for the API rooted at cfg.URL.
func NewAPIClient(cfg config.APISignalConfig, log logger.Logger) *APIClient {
	if log == nil {
		log = logger.New("signal-api")
	}
	var cred *auth.ClientCred
	if cfg.Auth.ClientID != "" {
		cred = auth.NewClientCred(cfg.Auth)
	}
	return &APIClient{
		base:   strings.TrimRight(cfg.URL, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
		cred:   cred,
		log:    log,
	}
}

// Days queries GET {base}/signal?from=&to= and assembles the response into
// complete UTC days. The API contract matches the CSV table: hourly records,
// no padding of gaps on either side.
func (c *APIClient) Days(ctx context.Context, from, to time.Time) ([]model.DaySignal, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.UTC().Format("2006-01-02"))
	}
	if !to.IsZero() {
		q.Set("to", to.UTC().Format("2006-01-02"))
	}
	endpoint := c.base + "/signal"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build signal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cred != nil {
		if err := c.cred.SetAuthHeader(req); err != nil {
			return nil, fmt.Errorf("authorize signal request: %w", err)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch signal: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("signal api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var records []apiRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode signal response: %w", err)
	}
	c.log.Debugf("fetched %d hourly records from %s", len(records), endpoint)

	points := make([]hourlyPoint, 0, len(records))
	for _, rec := range records {
		points = append(points, hourlyPoint{
			ts:        rec.Timestamp,
			intensity: rec.CarbonIntensity,
			renewable: rec.RenewableShare,
		})
	}
	return buildDays(points, from, to, c.log), nil
}
