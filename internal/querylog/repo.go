package querylog

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/torii/internal/query"
)

// Entry is one logged query.
type Entry struct {
	State       query.State
	ResultCount int
	Source      string // "http", "html" or "mcp"
	CreatedAt   time.Time
}

// TermCount is a search term with the number of times it was submitted.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Recorder is the write side of the query log.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Verify *DB satisfies Recorder at compile time.
var _ Recorder = (*DB)(nil)

// Record appends a query to the log.
func (db *DB) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Source == "" {
		e.Source = "http"
	}
	filter := e.State.ActiveFilter
	if filter == "" {
		filter = query.FilterAll
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO queries (search_term, filter, result_count, source, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.State.SearchTerm, string(filter), e.ResultCount, e.Source, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("querylog: record: %w", err)
	}
	return nil
}

// Popular returns the most frequent non-empty search terms, most frequent
// first. Ties are broken alphabetically.
func (db *DB) Popular(ctx context.Context, limit int) ([]TermCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT search_term, COUNT(*) AS n
		FROM queries
		WHERE search_term <> ''
		GROUP BY search_term
		ORDER BY n DESC, search_term ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querylog: popular: %w", err)
	}
	defer rows.Close()

	out := []TermCount{}
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// ZeroResultTerms returns recent search terms that matched nothing, newest
// first.
func (db *DB) ZeroResultTerms(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT search_term
		FROM queries
		WHERE result_count = 0 AND search_term <> ''
		GROUP BY search_term
		ORDER BY MAX(id) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querylog: zero results: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
