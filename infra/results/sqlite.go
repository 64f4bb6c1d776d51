package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	coreresults "github.com/ewoodward/gridshift/core/results"
)

const dayFormat = "2006-01-02"

// SQLiteStore persists day results to a SQLite database. Rows are keyed by
// (date, strategy) and upserted, with the full record stored as JSON next
// to the indexed columns.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS day_results (
        date TEXT NOT NULL,
        strategy TEXT NOT NULL,
        valid INTEGER NOT NULL,
        record TEXT NOT NULL,
        PRIMARY KEY (date, strategy)
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append upserts each row.
func (s *SQLiteStore) Append(ctx context.Context, rows []coreresults.DayResult) error {
	for _, r := range rows {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO day_results (date, strategy, valid, record) VALUES (?, ?, ?, ?)
             ON CONFLICT(date, strategy) DO UPDATE SET valid = excluded.valid, record = excluded.record`,
			r.Date.UTC().Format(dayFormat), r.Strategy, boolToInt(r.Valid), string(b))
		if err != nil {
			return err
		}
	}
	return nil
}

// Query returns rows matching q ordered by date, then strategy. ISO dates
// compare correctly as text.
func (s *SQLiteStore) Query(ctx context.Context, q coreresults.Filter) ([]coreresults.DayResult, error) {
	var args []any
	query := `SELECT record FROM day_results WHERE 1=1`
	if !q.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, q.From.UTC().Format(dayFormat))
	}
	if !q.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, q.To.UTC().Format(dayFormat))
	}
	if q.Strategy != "" {
		query += ` AND strategy = ?`
		args = append(args, q.Strategy)
	}
	query += ` ORDER BY date, strategy`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []coreresults.DayResult
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r coreresults.DayResult
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
