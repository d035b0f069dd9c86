package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"salesdash/internal/core"
	applog "salesdash/internal/log"

	_ "modernc.org/sqlite"
)

func storageLog() *applog.Logger { return applog.Default(applog.ComponentStorage) }

type SQLiteRepository struct {
	db            *sql.DB
	queries       *Queries
	schemaApplied bool
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	applied, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if applied {
		storageLog().Info("Products schema created", "path", dbPath)
	} else {
		storageLog().Info("Products schema already present, skipping creation", "path", dbPath)
	}

	return &SQLiteRepository{
		db:            db,
		queries:       New(db),
		schemaApplied: applied,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SchemaApplied reports whether this process created the schema.
func (r *SQLiteRepository) SchemaApplied() bool {
	return r.schemaApplied
}

// Ping checks the database connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CountProducts returns the number of stored rows.
func (r *SQLiteRepository) CountProducts(ctx context.Context) (int64, error) {
	n, err := r.queries.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// InsertProducts stores products in a single transaction. Ids already present are left
// untouched; the returned count only includes new rows.
func (r *SQLiteRepository) InsertProducts(ctx context.Context, products []core.ProductSale) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	inserted := 0
	for _, p := range products {
		res, err := qtx.InsertProduct(ctx, insertParams(p))
		if err != nil {
			return 0, fmt.Errorf("insert product %d: %w", p.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit products: %w", err)
	}

	storageLog().InfoContext(ctx, "Products stored",
		"received", len(products),
		"inserted", inserted)

	return inserted, nil
}

func insertParams(p core.ProductSale) InsertProductParams {
	arg := InsertProductParams{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		DateOfSale:  p.DateOfSale,
	}
	if p.Price != nil {
		arg.Price = sql.NullFloat64{Float64: *p.Price, Valid: true}
	}
	if p.Sold {
		arg.Sold = 1
	}
	if m, ok := core.SaleMonth(p.DateOfSale); ok {
		arg.SaleMonth = sql.NullInt64{Int64: int64(m), Valid: true}
	}
	return arg
}

// MonthStatistics returns the aggregates for month. The sale amount is not rounded.
func (r *SQLiteRepository) MonthStatistics(ctx context.Context, month core.Month) (core.Statistics, error) {
	row, err := r.queries.MonthStatistics(ctx, int64(month))
	if err != nil {
		return core.Statistics{}, fmt.Errorf("month statistics (month=%d): %w", month, err)
	}

	stats := core.Statistics{
		TotalItems:        row.TotalItems,
		TotalSoldItems:    row.TotalSoldItems,
		TotalNotSoldItems: row.TotalNotSoldItems,
	}
	if row.TotalSaleAmount.Valid {
		amount := row.TotalSaleAmount.Float64
		stats.TotalSaleAmount = &amount
	}
	return stats, nil
}

// MonthPriceRanges returns the non-empty price buckets for month, ordered by label.
func (r *SQLiteRepository) MonthPriceRanges(ctx context.Context, month core.Month) ([]core.PriceRangeCount, error) {
	rows, err := r.queries.MonthPriceRanges(ctx, int64(month))
	if err != nil {
		return nil, fmt.Errorf("month price ranges (month=%d): %w", month, err)
	}

	out := make([]core.PriceRangeCount, len(rows))
	for i, row := range rows {
		out[i] = core.PriceRangeCount{PriceRange: row.PriceRange, ItemCount: row.ItemCount}
	}
	return out, nil
}

// MonthCategories returns item counts per category for month.
func (r *SQLiteRepository) MonthCategories(ctx context.Context, month core.Month) ([]core.CategoryCount, error) {
	rows, err := r.queries.MonthCategories(ctx, int64(month))
	if err != nil {
		return nil, fmt.Errorf("month categories (month=%d): %w", month, err)
	}

	out := make([]core.CategoryCount, len(rows))
	for i, row := range rows {
		out[i] = core.CategoryCount{Category: row.Category, ItemCount: row.ItemCount}
	}
	return out, nil
}
