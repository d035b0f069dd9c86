package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"salesdash/internal/core"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const countProducts = `SELECT COUNT(*) FROM products`

func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProducts).Scan(&n)
	return n, err
}

const insertProduct = `INSERT OR IGNORE INTO products (
    id, title, price, description, category, image, sold, dateOfSale, sale_month
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

type InsertProductParams struct {
	ID          int64
	Title       string
	Price       sql.NullFloat64
	Description string
	Category    string
	Image       string
	Sold        int64
	DateOfSale  string
	SaleMonth   sql.NullInt64
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertProduct,
		arg.ID,
		arg.Title,
		arg.Price,
		arg.Description,
		arg.Category,
		arg.Image,
		arg.Sold,
		arg.DateOfSale,
		arg.SaleMonth,
	)
}

const monthStatistics = `SELECT
    COUNT(*),
    SUM(price),
    COALESCE(SUM(CASE WHEN sold = 1 THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN sold = 0 THEN 1 ELSE 0 END), 0)
FROM products
WHERE sale_month = ?`

type MonthStatisticsRow struct {
	TotalItems        int64
	TotalSaleAmount   sql.NullFloat64
	TotalSoldItems    int64
	TotalNotSoldItems int64
}

func (q *Queries) MonthStatistics(ctx context.Context, month int64) (MonthStatisticsRow, error) {
	var i MonthStatisticsRow
	err := q.db.QueryRowContext(ctx, monthStatistics, month).Scan(
		&i.TotalItems,
		&i.TotalSaleAmount,
		&i.TotalSoldItems,
		&i.TotalNotSoldItems,
	)
	return i, err
}

// monthPriceRanges is derived from core.PriceRanges so SQL and Go agree on bucket edges.
var monthPriceRanges = `SELECT ` + priceRangeCase("price") + ` AS priceRange, COUNT(*) AS itemCount
FROM products
WHERE sale_month = ?
GROUP BY priceRange
ORDER BY priceRange`

func priceRangeCase(col string) string {
	var b strings.Builder
	b.WriteString("CASE")
	for _, r := range core.PriceRanges {
		if r.Min == 0 {
			fmt.Fprintf(&b, " WHEN %s >= 0 AND %s <= %g THEN '%s'", col, col, r.Max, r.Label)
			continue
		}
		fmt.Fprintf(&b, " WHEN %s > %g AND %s <= %g THEN '%s'", col, r.Min, col, r.Max, r.Label)
	}
	fmt.Fprintf(&b, " ELSE '%s' END", core.OverflowLabel)
	return b.String()
}

type MonthPriceRangeRow struct {
	PriceRange string
	ItemCount  int64
}

func (q *Queries) MonthPriceRanges(ctx context.Context, month int64) ([]MonthPriceRangeRow, error) {
	rows, err := q.db.QueryContext(ctx, monthPriceRanges, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MonthPriceRangeRow
	for rows.Next() {
		var i MonthPriceRangeRow
		if err := rows.Scan(&i.PriceRange, &i.ItemCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const monthCategories = `SELECT COALESCE(category, '') AS category_label, COUNT(*)
FROM products
WHERE sale_month = ?
GROUP BY category_label
ORDER BY category_label`

type MonthCategoryRow struct {
	Category  string
	ItemCount int64
}

func (q *Queries) MonthCategories(ctx context.Context, month int64) ([]MonthCategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, monthCategories, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MonthCategoryRow
	for rows.Next() {
		var i MonthCategoryRow
		if err := rows.Scan(&i.Category, &i.ItemCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
