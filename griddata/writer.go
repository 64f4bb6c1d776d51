package griddata

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/ewoodward/gridshift/core/model"
)

// syntheticGenerationMW is the assumed grid-wide generation when a signal is
// exported as a table. Shares survive a read-back because the csv provider
// divides renewable_mw by the same figure.
const syntheticGenerationMW = 32000.0

// WriteTable writes day signals as the hourly table the csv provider reads.
// The single intensity series fills both the actual and forecast columns.
func WriteTable(w io.Writer, days []model.DaySignal) error {
	cw := csv.NewWriter(w)
	header := []string{"timestamp", "ci_actual", "ci_forecast", "renewable_mw", "generation_mw"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, day := range days {
		for h := 0; h < model.HoursPerDay; h++ {
			ts := day.Date.Add(time.Duration(h) * time.Hour)
			ci := strconv.FormatFloat(day.Intensity[h], 'f', -1, 64)
			ren := strconv.FormatFloat(day.Renewable[h]*syntheticGenerationMW, 'f', -1, 64)
			gen := strconv.FormatFloat(syntheticGenerationMW, 'f', -1, 64)
			row := []string{ts.UTC().Format(time.RFC3339), ci, ci, ren, gen}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
