// Package results exposes stored day results via GET /api/results.
package results

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ewoodward/gridshift/core/logger"
	"github.com/ewoodward/gridshift/core/model"
	coreresults "github.com/ewoodward/gridshift/core/results"
)

const dateLayout = "2006-01-02"

// Handler serves query access to the result store. Requests must carry
// "Bearer <token>" when token is non-empty.
type Handler struct {
	store coreresults.Store
	token string
	log   logger.Logger
}

// NewHandler creates a Handler over the given store.
func NewHandler(store coreresults.Store, token string, log logger.Logger) *Handler {
	return &Handler{store: store, token: token, log: log}
}

// RegisterRoutes attaches the handler's routes to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/results", h.handleList)
}

// row is the wire form of a day result. Hourly curves are omitted; the
// scenario day endpoint serves full detail for a single day.
type row struct {
	Date         string  `json:"date"`
	Strategy     string  `json:"strategy"`
	BaselineG    float64 `json:"baseline_g"`
	ShiftedG     float64 `json:"shifted_g"`
	ReductionPct float64 `json:"reduction_pct"`
	TargetHours  []int   `json:"target_hours"`
	EVTargets    []int   `json:"ev_targets,omitempty"`
	Valid        bool    `json:"valid"`
	Note         string  `json:"note,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.token != "" && r.Header.Get("Authorization") != "Bearer "+h.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var f coreresults.Filter
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		f.From = model.Day(t)
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		f.To = model.Day(t)
	}
	if s := q.Get("strategy"); s != "" {
		if _, err := model.ParseStrategy(s); err != nil {
			http.Error(w, "unknown strategy", http.StatusBadRequest)
			return
		}
		f.Strategy = s
	}

	records, err := h.store.Query(r.Context(), f)
	if err != nil {
		h.log.Errorf("query results: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rows := make([]row, len(records))
	for i, rec := range records {
		rows[i] = row{
			Date:         rec.Date.Format(dateLayout),
			Strategy:     rec.Strategy,
			BaselineG:    rec.BaselineG,
			ShiftedG:     rec.ShiftedG,
			ReductionPct: rec.ReductionPct,
			TargetHours:  rec.TargetHours,
			EVTargets:    rec.EVTargets,
			Valid:        rec.Valid,
			Note:         rec.Note,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		h.log.Errorf("encode results: %v", err)
	}
}
