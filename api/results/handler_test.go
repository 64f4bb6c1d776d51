package results

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	coreresults "github.com/ewoodward/gridshift/core/results"
	"github.com/ewoodward/gridshift/infra/logger"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func seedStore(t *testing.T) coreresults.Store {
	t.Helper()
	store := coreresults.NewMemoryStore()
	rows := []coreresults.DayResult{
		{Date: day(1), Strategy: "low_intensity", BaselineG: 2800, ShiftedG: 2170, ReductionPct: 22.5, TargetHours: []int{2, 3, 4, 5}, Valid: true},
		{Date: day(1), Strategy: "max_renewable", BaselineG: 2800, ShiftedG: 2400, ReductionPct: 14.3, TargetHours: []int{11, 12, 13, 14}, Valid: true},
		{Date: day(2), Strategy: "low_intensity", BaselineG: 2600, ShiftedG: 2100, ReductionPct: 19.2, TargetHours: []int{1, 2, 3, 4}, Valid: true},
	}
	if err := store.Append(context.Background(), rows); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestHandlerAuthAndFilters(t *testing.T) {
	h := NewHandler(seedStore(t), "tok", logger.NopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/results?strategy=low_intensity", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := serve(h, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var rows []row
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Strategy != "low_intensity" {
			t.Errorf("strategy filter leaked %s", r.Strategy)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/api/results", nil)
	rr = serve(h, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestHandlerDateRange(t *testing.T) {
	h := NewHandler(seedStore(t), "", logger.NopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/results?from=2024-03-02&to=2024-03-02", nil)
	rr := serve(h, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var rows []row
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 1 || rows[0].Date != "2024-03-02" {
		t.Fatalf("range filter failed: %+v", rows)
	}
}

func TestHandlerOmitsCurves(t *testing.T) {
	h := NewHandler(seedStore(t), "", logger.NopLogger{})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	var raw []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected rows")
	}
	for _, key := range []string{"baseline_curve", "shifted_curve"} {
		if _, ok := raw[0][key]; ok {
			t.Errorf("listing carries %s", key)
		}
	}
}

func TestHandlerBadParams(t *testing.T) {
	h := NewHandler(seedStore(t), "", logger.NopLogger{})

	cases := []string{
		"/api/results?from=march",
		"/api/results?to=2024-13-77",
		"/api/results?strategy=cheapest",
	}
	for _, url := range cases {
		rr := serve(h, httptest.NewRequest(http.MethodGet, url, nil))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, rr.Code)
		}
	}

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/results", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}
