// Package seed loads the product dataset into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"salesdash/internal/core"
	applog "salesdash/internal/log"
)

func seedLog() *applog.Logger { return applog.Default(applog.ComponentSeed) }

// Source yields the full dataset.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]core.ProductSale, error)
}

// Store is the write side of the product store used during import.
type Store interface {
	CountProducts(ctx context.Context) (int64, error)
	InsertProducts(ctx context.Context, products []core.ProductSale) (int, error)
}

// Publisher announces a finished import. Optional.
type Publisher interface {
	PublishImportCompleted(ctx context.Context, source string, fetched, inserted int) error
}

// Result describes one SeedIfEmpty call.
type Result struct {
	Source   string
	Skipped  bool // store already had rows
	Existing int64
	Fetched  int
	Inserted int
	Duration time.Duration
}

type Seeder struct {
	store     Store
	source    Source
	publisher Publisher
}

func NewSeeder(store Store, source Source, publisher Publisher) *Seeder {
	return &Seeder{store: store, source: source, publisher: publisher}
}

// SeedIfEmpty imports the dataset when the store holds no rows. A populated store
// is never touched. Publishing failures are logged and do not fail the import.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Source: s.source.Name()}

	existing, err := s.store.CountProducts(ctx)
	if err != nil {
		return res, fmt.Errorf("check existing products: %w", err)
	}
	if existing > 0 {
		res.Skipped = true
		res.Existing = existing
		seedLog().InfoContext(ctx, "Products already present, skipping seed", "existing", existing)
		return res, nil
	}

	products, err := s.source.Fetch(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch seed data from %s: %w", res.Source, err)
	}
	res.Fetched = len(products)

	inserted, err := s.store.InsertProducts(ctx, products)
	if err != nil {
		return res, fmt.Errorf("insert seed data: %w", err)
	}
	res.Inserted = inserted
	res.Duration = time.Since(start)

	seedLog().InfoContext(ctx, "Database initialized with seed data",
		applog.FieldSeedSource, res.Source,
		"fetched", res.Fetched,
		applog.FieldInserted, res.Inserted,
		"duration_ms", res.Duration.Milliseconds())

	if s.publisher != nil {
		if err := s.publisher.PublishImportCompleted(ctx, res.Source, res.Fetched, res.Inserted); err != nil {
			seedLog().ErrorContext(ctx, "Failed to publish import event", applog.FieldError, err)
		}
	}

	return res, nil
}
