// Package export renders day results and run summaries for files and stdout.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/ewoodward/gridshift/core/results"
)

// WriteJSON writes the rows to w as a JSON array.
func WriteJSON(w io.Writer, rows []results.DayResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteCSV writes one line per (date, strategy) row. Hourly curves are left
// out; target hours are joined with semicolons inside the one column.
func WriteCSV(w io.Writer, rows []results.DayResult) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "strategy", "baseline_g", "shifted_g", "reduction_pct", "target_hours", "valid", "note"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.Format("2006-01-02"),
			r.Strategy,
			strconv.FormatFloat(r.BaselineG, 'f', -1, 64),
			strconv.FormatFloat(r.ShiftedG, 'f', -1, 64),
			strconv.FormatFloat(r.ReductionPct, 'f', -1, 64),
			joinHours(r.TargetHours),
			strconv.FormatBool(r.Valid),
			r.Note,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes per-strategy aggregate statistics.
func WriteSummaryCSV(w io.Writer, summaries []results.Summary) error {
	cw := csv.NewWriter(w)
	header := []string{"strategy", "days", "skipped", "mean_pct", "std_pct", "min_pct", "max_pct"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		rec := []string{
			s.Strategy,
			strconv.Itoa(s.Days),
			strconv.Itoa(s.Skipped),
			strconv.FormatFloat(s.MeanPct, 'f', -1, 64),
			strconv.FormatFloat(s.StdPct, 'f', -1, 64),
			strconv.FormatFloat(s.MinPct, 'f', -1, 64),
			strconv.FormatFloat(s.MaxPct, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ";")
}
