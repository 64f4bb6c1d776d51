package griddata

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ewoodward/gridshift/config"
	"github.com/ewoodward/gridshift/infra/logger"
)

// A synthetic table written out must survive a read through the csv provider.
func TestWriteTableRoundTrip(t *testing.T) {
	s := NewSynthetic(config.SyntheticConfig{Seed: 42}, logger.NopLogger{})
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	days, err := s.Days(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Days returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, days); err != nil {
		t.Fatalf("WriteTable returned error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "timestamp,ci_actual,ci_forecast,renewable_mw,generation_mw\n") {
		t.Fatalf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	path := filepath.Join(t.TempDir(), "grid.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	p := NewCSVProvider(config.CSVSignalConfig{Path: path}, logger.NopLogger{})
	got, err := p.Days(context.Background(), from, to)
	if err != nil {
		t.Fatalf("read table back: %v", err)
	}
	if len(got) != len(days) {
		t.Fatalf("round trip lost days: %d != %d", len(got), len(days))
	}
	for i := range days {
		if !got[i].Date.Equal(days[i].Date) {
			t.Fatalf("day %d date mismatch: %s != %s", i, got[i].Date, days[i].Date)
		}
		for h := 0; h < 24; h++ {
			if got[i].Intensity[h] != days[i].Intensity[h] {
				t.Errorf("day %d hour %d intensity %v != %v", i, h, got[i].Intensity[h], days[i].Intensity[h])
			}
			if math.Abs(got[i].Renewable[h]-days[i].Renewable[h]) > 1e-12 {
				t.Errorf("day %d hour %d share %v != %v", i, h, got[i].Renewable[h], days[i].Renewable[h])
			}
		}
	}
}
