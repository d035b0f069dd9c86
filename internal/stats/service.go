// Package stats computes the monthly sales aggregates served by the API.
package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"salesdash/internal/core"
	applog "salesdash/internal/log"
)

// Reader is the read side of the product store.
type Reader interface {
	MonthStatistics(ctx context.Context, month core.Month) (core.Statistics, error)
	MonthPriceRanges(ctx context.Context, month core.Month) ([]core.PriceRangeCount, error)
	MonthCategories(ctx context.Context, month core.Month) ([]core.CategoryCount, error)
}

// Service exposes the aggregations as plain method calls so the combined view
// can reuse them without another HTTP round trip.
type Service struct {
	store Reader
}

func NewService(store Reader) *Service {
	return &Service{store: store}
}

// Statistics returns totals for month. The sale amount is rounded to cents and stays
// nil when nothing priced matched.
func (s *Service) Statistics(ctx context.Context, month core.Month) (core.Statistics, error) {
	st, err := s.store.MonthStatistics(ctx, month)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	if st.TotalSaleAmount != nil {
		rounded := roundAmount(*st.TotalSaleAmount)
		st.TotalSaleAmount = &rounded
	}
	return st, nil
}

// BarChart returns the non-empty price ranges for month.
func (s *Service) BarChart(ctx context.Context, month core.Month) ([]core.PriceRangeCount, error) {
	ranges, err := s.store.MonthPriceRanges(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	if ranges == nil {
		ranges = []core.PriceRangeCount{}
	}
	return ranges, nil
}

// PieChart returns item counts per category for month.
func (s *Service) PieChart(ctx context.Context, month core.Month) ([]core.CategoryCount, error) {
	cats, err := s.store.MonthCategories(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("pie chart: %w", err)
	}
	if cats == nil {
		cats = []core.CategoryCount{}
	}
	return cats, nil
}

// Combined runs the three aggregations concurrently. Any failure discards the
// other results.
func (s *Service) Combined(ctx context.Context, month core.Month) (core.MonthOverview, error) {
	var overview core.MonthOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.Statistics(gctx, month)
		overview.Statistics = st
		return err
	})
	g.Go(func() error {
		bars, err := s.BarChart(gctx, month)
		overview.BarChart = bars
		return err
	})
	g.Go(func() error {
		pie, err := s.PieChart(gctx, month)
		overview.PieChart = pie
		return err
	})

	if err := g.Wait(); err != nil {
		applog.Default(applog.ComponentStats).WarnContext(ctx, "Combined aggregation failed",
			applog.NewFields().WithOperation(applog.OpCombined).WithMonth(month.String()).WithError(err).ToSlice()...)
		return core.MonthOverview{}, fmt.Errorf("combined data: %w", err)
	}
	return overview, nil
}

func roundAmount(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
