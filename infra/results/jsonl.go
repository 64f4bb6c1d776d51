package results

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	coreresults "github.com/ewoodward/gridshift/core/results"
)

// JSONLStore persists day results as one JSON document per line. Re-appended
// (date, strategy) rows are written as new lines; Query keeps the last one.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the file when missing and returns the store.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes each row as a JSON line.
func (s *JSONLStore) Append(ctx context.Context, rows []coreresults.DayResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	enc := json.NewEncoder(f)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// Query replays the file, keeping the last row per (date, strategy).
func (s *JSONLStore) Query(ctx context.Context, q coreresults.Filter) ([]coreresults.DayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	latest := newUpsertSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r coreresults.DayResult
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		latest.put(r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return latest.sorted(q), nil
}

// Close is a no-op; the file is reopened per operation.
func (s *JSONLStore) Close() error { return nil }
