package griddata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/griddata/auth"
	"github.com/ewoodward/gridshift/infra/logger"
)

func hourlyRecords(date time.Time, hours int) []apiRecord {
	records := make([]apiRecord, 0, hours)
	for h := 0; h < hours; h++ {
		records = append(records, apiRecord{
			Timestamp:       date.Add(time.Duration(h) * time.Hour),
			CarbonIntensity: 100 + float64(h),
			RenewableShare:  0.4,
		})
	}
	return records
}

func TestAPIClientDays(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signal" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		records := hourlyRecords(day, 24)
		// A trailing partial day must be dropped by the client.
		records = append(records, hourlyRecords(day.AddDate(0, 0, 1), 3)...)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			t.Errorf("encode records: %v", err)
		}
	}))
	defer server.Close()

	c := NewAPIClient(config.APISignalConfig{URL: server.URL + "/"}, logger.NopLogger{})
	days, err := c.Days(context.Background(), day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Days returned error: %v", err)
	}
	if want := "from=2024-03-01&to=2024-03-02"; gotQuery != want {
		t.Errorf("query %q, want %q", gotQuery, want)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 complete day, got %d", len(days))
	}
	if days[0].Intensity[7] != 107 || days[0].Renewable[7] != 0.4 {
		t.Errorf("unexpected day values: %v %v", days[0].Intensity[7], days[0].Renewable[7])
	}
}

func TestAPIClientAuth(t *testing.T) {
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"token123","token_type":"bearer","expires_in":3600}`)
	}))
	defer tokens.Close()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hourlyRecords(day, 24)); err != nil {
			t.Errorf("encode records: %v", err)
		}
	}))
	defer api.Close()

	cfg := config.APISignalConfig{
		URL: api.URL,
		Auth: auth.Conf{
			ClientID:     "id",
			ClientSecret: "secret",
			AuthURL:      tokens.URL,
		},
	}
	c := NewAPIClient(cfg, logger.NopLogger{})
	days, err := c.Days(context.Background(), day, day)
	if err != nil {
		t.Fatalf("Days returned error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if gotAuth != "Bearer token123" {
		t.Errorf("Authorization header %q", gotAuth)
	}
}

func TestAPIClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewAPIClient(config.APISignalConfig{URL: server.URL}, logger.NopLogger{})
	if _, err := c.Days(context.Background(), day, day); err == nil {
		t.Error("expected error for status 500")
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	}))
	defer bad.Close()
	c = NewAPIClient(config.APISignalConfig{URL: bad.URL}, logger.NopLogger{})
	if _, err := c.Days(context.Background(), day, day); err == nil {
		t.Error("expected error for malformed body")
	}
}
