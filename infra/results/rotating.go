package results

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	coreresults "github.com/ewoodward/gridshift/core/results"
)

// RotatingJSONLStore is a JSONL store with automatic file rotation, suited
// to long-lived daemons that resimulate daily.
type RotatingJSONLStore struct {
	logger *lumberjack.Logger
	path   string
	mu     sync.Mutex
}

// NewRotatingJSONLStore creates a store with rotation options in megabytes
// and days.
func NewRotatingJSONLStore(path string, maxSizeMB, maxBackups, maxAgeDays int) (*RotatingJSONLStore, error) {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   false,
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &RotatingJSONLStore{logger: lj, path: path}, nil
}

// Append writes the rows and triggers rotation if needed.
func (s *RotatingJSONLStore) Append(ctx context.Context, rows []coreresults.DayResult) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.logger)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// Query reads all files including rotated ones. Backup files sort before
// the live file and chronologically among themselves, so replaying them in
// glob order preserves last-write-wins.
func (s *RotatingJSONLStore) Query(ctx context.Context, q coreresults.Filter) ([]coreresults.DayResult, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	files, err := filepath.Glob(s.path + "*")
	if err != nil {
		return nil, err
	}
	latest := newUpsertSet()
	for _, f := range files {
		file, err := os.Open(f)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			var r coreresults.DayResult
			if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
				continue
			}
			latest.put(r)
		}
		_ = file.Close()
	}
	return latest.sorted(q), nil
}

// Close closes the underlying writer.
func (s *RotatingJSONLStore) Close() error {
	return s.logger.Close()
}
