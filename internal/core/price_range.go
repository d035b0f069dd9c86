package core

// PriceRange is one labelled bucket of the bar chart. Lower bounds are exclusive
// except for the first bucket, which starts at 0 inclusive.
type PriceRange struct {
	Label string
	Min   float64
	Max   float64
}

// OverflowLabel collects every price outside the bounded ranges, including
// missing and negative prices.
const OverflowLabel = "901 - above"

// PriceRanges lists the bounded buckets in ascending order.
var PriceRanges = []PriceRange{
	{Label: "0 - 100", Min: 0, Max: 100},
	{Label: "101 - 200", Min: 100, Max: 200},
	{Label: "201 - 300", Min: 200, Max: 300},
	{Label: "301 - 400", Min: 300, Max: 400},
	{Label: "401 - 500", Min: 400, Max: 500},
	{Label: "501 - 600", Min: 500, Max: 600},
	{Label: "601 - 700", Min: 600, Max: 700},
	{Label: "701 - 800", Min: 700, Max: 800},
	{Label: "801 - 900", Min: 800, Max: 900},
}
