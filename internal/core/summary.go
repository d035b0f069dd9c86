package core

// Statistics summarises the sales of one month.
// TotalSaleAmount is nil when no priced row matched.
type Statistics struct {
	TotalItems        int64    `json:"totalItems"`
	TotalSaleAmount   *float64 `json:"totalSaleAmount"`
	TotalSoldItems    int64    `json:"totalSoldItems"`
	TotalNotSoldItems int64    `json:"totalNotSoldItems"`
}

// PriceRangeCount is one bar of the price-range chart.
type PriceRangeCount struct {
	PriceRange string `json:"priceRange"`
	ItemCount  int64  `json:"itemCount"`
}

// CategoryCount is one slice of the category chart.
type CategoryCount struct {
	Category  string `json:"category"`
	ItemCount int64  `json:"itemCount"`
}

// MonthOverview is the combined view returned by /api/combined-data.
type MonthOverview struct {
	Statistics Statistics        `json:"statistics"`
	BarChart   []PriceRangeCount `json:"barChart"`
	PieChart   []CategoryCount   `json:"pieChart"`
}
