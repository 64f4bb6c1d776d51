package griddata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/core/model"
	"github.com/ewoodward/gridshift/infra/logger"
)

// csvTimeLayouts are tried in order when parsing the timestamp column.
// Exports from grid data portals come in RFC3339 or bare datetime form.
var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// CSVProvider reads hourly grid records from a local table with header
// timestamp, ci_actual, ci_forecast, renewable_mw, generation_mw. The
// intensity column is picked by cfg.Source ("actual" or "forecast"); the
// renewable share is derived as renewable_mw over generation_mw.
type CSVProvider struct {
	path   string
	source string
	log    logger.Logger
}

// NewCSVProvider creates a provider reading cfg.Path on every Days call.
func NewCSVProvider(cfg config.CSVSignalConfig, log logger.Logger) *CSVProvider {
	source := strings.ToLower(cfg.Source)
	if source == "" {
		source = "actual"
	}
	if log == nil {
		log = logger.New("csv-provider")
	}
	return &CSVProvider{path: cfg.Path, source: source, log: log}
}

// Days reads the table and assembles complete UTC days inside [from, to].
// Rows that fail to parse are skipped with a warning; days left incomplete
// by skipped or missing rows are dropped.
func (p *CSVProvider) Days(ctx context.Context, from, to time.Time) ([]model.DaySignal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open grid data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read grid data header: %w", err)
	}
	cols, err := p.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var points []hourlyPoint
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.log.Warnf("%s line %d: %v", p.path, line, err)
			continue
		}
		pt, err := p.parseRecord(record, cols)
		if err != nil {
			p.log.Warnf("%s line %d: %v", p.path, line, err)
			continue
		}
		points = append(points, pt)
	}
	return buildDays(points, from, to, p.log), nil
}

// csvColumns holds the resolved index of each required column.
type csvColumns struct {
	timestamp  int
	intensity  int
	renewable  int
	generation int
}

func (p *CSVProvider) resolveColumns(header []string) (csvColumns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cols := csvColumns{timestamp: -1, intensity: -1, renewable: -1, generation: -1}
	lookup := func(name string, dst *int) error {
		i, ok := idx[name]
		if !ok {
			return fmt.Errorf("grid data %s: missing column %q", p.path, name)
		}
		*dst = i
		return nil
	}
	if err := lookup("timestamp", &cols.timestamp); err != nil {
		return cols, err
	}
	if err := lookup("ci_"+p.source, &cols.intensity); err != nil {
		return cols, err
	}
	if err := lookup("renewable_mw", &cols.renewable); err != nil {
		return cols, err
	}
	if err := lookup("generation_mw", &cols.generation); err != nil {
		return cols, err
	}
	return cols, nil
}

func (p *CSVProvider) parseRecord(record []string, cols csvColumns) (hourlyPoint, error) {
	max := cols.timestamp
	for _, i := range []int{cols.intensity, cols.renewable, cols.generation} {
		if i > max {
			max = i
		}
	}
	if len(record) <= max {
		return hourlyPoint{}, fmt.Errorf("short record: %d fields", len(record))
	}
	ts, err := parseTimestamp(record[cols.timestamp])
	if err != nil {
		return hourlyPoint{}, err
	}
	ci, err := strconv.ParseFloat(strings.TrimSpace(record[cols.intensity]), 64)
	if err != nil {
		return hourlyPoint{}, fmt.Errorf("ci_%s: %w", p.source, err)
	}
	ren, err := strconv.ParseFloat(strings.TrimSpace(record[cols.renewable]), 64)
	if err != nil {
		return hourlyPoint{}, fmt.Errorf("renewable_mw: %w", err)
	}
	gen, err := strconv.ParseFloat(strings.TrimSpace(record[cols.generation]), 64)
	if err != nil {
		return hourlyPoint{}, fmt.Errorf("generation_mw: %w", err)
	}
	share := 0.0
	if gen > 0 {
		share = model.ClampShare(ren / gen)
	}
	return hourlyPoint{ts: ts, intensity: ci, renewable: share}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range csvTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
