package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/ErlanBelekov/bookstore/internal/metrics"
	"github.com/robfig/cron/v3"
)

type bookLister interface {
	List(ctx context.Context) ([]*domain.Book, error)
}

// StatsRefresher periodically recomputes the catalog gauges from the store.
type StatsRefresher struct {
	books    bookLister
	logger   *slog.Logger
	schedule cron.Schedule
	spec     string
}

// NewStatsRefresher accepts standard 5-field cron expressions and descriptors
// such as "@every 1m" or "@hourly".
func NewStatsRefresher(books bookLister, logger *slog.Logger, spec string) (*StatsRefresher, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse catalog stats schedule %q: %w", spec, err)
	}
	return &StatsRefresher{
		books:    books,
		logger:   logger.With("component", "catalog_stats"),
		schedule: schedule,
		spec:     spec,
	}, nil
}

// Start refreshes once immediately, then on every tick until ctx is done.
func (r *StatsRefresher) Start(ctx context.Context) {
	c := cron.New()
	c.Schedule(r.schedule, cron.FuncJob(func() { r.Refresh(ctx) }))

	r.Refresh(ctx)
	c.Start()
	r.logger.Info("catalog stats refresher started", "schedule", r.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("catalog stats refresher shut down")
}

// Refresh reads every book and updates the catalog gauges.
func (r *StatsRefresher) Refresh(ctx context.Context) {
	books, err := r.books.List(ctx)
	if err != nil {
		metrics.CatalogRefreshFailuresTotal.Inc()
		r.logger.ErrorContext(ctx, "list books for stats", "error", err)
		return
	}

	stock := 0
	for _, b := range books {
		stock += b.Stock
	}
	metrics.CatalogBooks.Set(float64(len(books)))
	metrics.CatalogStockUnits.Set(float64(stock))
	r.logger.Debug("catalog stats refreshed", "books", len(books), "stock", stock)
}
