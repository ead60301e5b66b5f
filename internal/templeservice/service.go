// Package templeservice answers map queries by running the filter and view
// synchronizer against the current record store.
package templeservice

import (
	"context"
	"log/slog"

	"github.com/starford/torii/internal/models"
	"github.com/starford/torii/internal/query"
	"github.com/starford/torii/internal/querylog"
	"github.com/starford/torii/internal/records"
	"github.com/starford/torii/internal/view"
)

// Query sources recorded in the query log.
const (
	SourceHTTP = "http"
	SourceHTML = "html"
	SourceMCP  = "mcp"
)

// Results is the reconciled display for one query state.
type Results struct {
	State      query.State      `json:"state"`
	Count      int              `json:"count"`
	CountLabel string           `json:"count_label"`
	Markers    []view.Marker    `json:"markers"`
	Items      []view.ListEntry `json:"items"`
}

// QueryLog stores submitted queries. It is optional.
type QueryLog interface {
	Record(ctx context.Context, e querylog.Entry) error
	Popular(ctx context.Context, limit int) ([]querylog.TermCount, error)
	ZeroResultTerms(ctx context.Context, limit int) ([]string, error)
}

// Service coordinates the record store, view reconciliation and query log.
type Service struct {
	holder *records.Holder
	log    QueryLog
}

// NewService creates a new temple service. log may be nil.
func NewService(holder *records.Holder, log QueryLog) *Service {
	return &Service{holder: holder, log: log}
}

// Search reconciles a fresh display against st and returns what it shows.
func (s *Service) Search(ctx context.Context, st query.State, source string) *Results {
	sess, snap := view.NewSnapshotSession(s.holder)
	sess.Refresh(st)

	res := &Results{
		State:      st,
		Count:      snap.Count(),
		CountLabel: snap.CountLabel(),
		Markers:    snap.Markers(),
		Items:      snap.Items(),
	}

	if s.log != nil {
		if err := s.log.Record(ctx, querylog.Entry{State: st, ResultCount: res.Count, Source: source}); err != nil {
			slog.Warn("query log write failed", slog.String("error", err.Error()))
		}
	}
	return res
}

// Temple returns the record the detail view would show for id.
func (s *Service) Temple(_ context.Context, id int) (models.Temple, error) {
	sess, snap := view.NewSnapshotSession(s.holder)
	if err := sess.Activate(id); err != nil {
		return models.Temple{}, err
	}
	t, _ := snap.Detail()
	return t, nil
}

// Popular returns the most submitted search terms. Without a query log it
// returns an empty list.
func (s *Service) Popular(ctx context.Context, limit int) ([]querylog.TermCount, error) {
	if s.log == nil {
		return []querylog.TermCount{}, nil
	}
	return s.log.Popular(ctx, limit)
}

// Unmatched returns recent search terms that found no temple, which hints at
// records missing from the dataset.
func (s *Service) Unmatched(ctx context.Context, limit int) ([]string, error) {
	if s.log == nil {
		return []string{}, nil
	}
	return s.log.ZeroResultTerms(ctx, limit)
}

// Len returns the number of records in the current store.
func (s *Service) Len() int {
	return s.holder.Load().Len()
}
