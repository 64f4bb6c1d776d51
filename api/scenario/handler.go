// Package scenario exposes on-demand single day simulation via
// GET /api/scenario/day, serving the full curve detail the results listing
// omits.
package scenario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ewoodward/gridshift/core/logger"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/core/results"
	corescenario "github.com/ewoodward/gridshift/core/scenario"
	"github.com/ewoodward/gridshift/griddata"
)

const dateLayout = "2006-01-02"

// Handler simulates one (date, strategy) pair per request.
type Handler struct {
	provider griddata.SignalProvider
	engine   *corescenario.Engine
	profile  model.HouseholdProfile
	hours    int
	token    string
	log      logger.Logger
}

// NewHandler creates a Handler. hours is the default target hour count used
// when the request does not carry one.
func NewHandler(provider griddata.SignalProvider, engine *corescenario.Engine, profile model.HouseholdProfile, hours int, token string, log logger.Logger) *Handler {
	return &Handler{
		provider: provider,
		engine:   engine,
		profile:  profile,
		hours:    hours,
		token:    token,
		log:      log,
	}
}

// RegisterRoutes attaches the handler's routes to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/scenario/day", h.handleDay)
}

// dayResponse pairs the simulated result with the signal that produced it,
// enough for a dashboard to render both curves against the grid mix.
type dayResponse struct {
	Signal model.DaySignal   `json:"signal"`
	Result results.DayResult `json:"result"`
}

func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.token != "" && r.Header.Get("Authorization") != "Bearer "+h.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	date, err := time.Parse(dateLayout, q.Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	strategy := model.StrategyLowIntensity
	if s := q.Get("strategy"); s != "" {
		strategy, err = model.ParseStrategy(s)
		if err != nil {
			http.Error(w, "unknown strategy", http.StatusBadRequest)
			return
		}
	}
	hours := h.hours
	if s := q.Get("hours"); s != "" {
		hours, err = strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid hours", http.StatusBadRequest)
			return
		}
	}

	day := model.Day(date)
	days, err := h.provider.Days(r.Context(), day, day)
	if err != nil {
		h.log.Errorf("fetch signal for %s: %v", day.Format(dateLayout), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(days) == 0 {
		http.Error(w, "no signal for date", http.StatusNotFound)
		return
	}

	res, err := h.engine.SimulateDay(days[0], h.profile, strategy, hours)
	if err != nil {
		if errors.Is(err, corescenario.ErrConfig) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Errorf("simulate %s: %v", day.Format(dateLayout), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dayResponse{Signal: days[0], Result: res}); err != nil {
		h.log.Errorf("encode day response: %v", err)
	}
}
