// Package slog provides logging decorators for gallery services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gallery"
	gurl "github.com/fwojciec/gallery/url"
)

// Ensure LoggingSearchService implements gallery.SearchService.
var _ gallery.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   gallery.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next gallery.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query in its URL form.
func (s *LoggingSearchService) Search(ctx context.Context, q gallery.Query) (result *gallery.SearchResult, err error) {
	defer func(begin time.Time) {
		total := 0
		if result != nil {
			total = result.Total
		}
		s.logger.Debug("search",
			"query", gurl.Format(q),
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, q)
}

// FindObjectByID delegates to the wrapped service and logs the lookup.
func (s *LoggingSearchService) FindObjectByID(ctx context.Context, id int) (obj *gallery.ArtObject, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find object",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindObjectByID(ctx, id)
}

// FindDepartments delegates to the wrapped service and logs the count.
func (s *LoggingSearchService) FindDepartments(ctx context.Context) (departments []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find departments",
			"count", len(departments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDepartments(ctx)
}
