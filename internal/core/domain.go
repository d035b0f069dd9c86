package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// ProductSale is one imported product transaction. Rows are immutable after import.
	ProductSale struct {
		ID          int64
		Title       string
		Price       *float64 // nil when the source carried no usable price
		Description string
		Category    string
		Image       string
		Sold        bool
		DateOfSale  string // kept verbatim, see SaleMonth
	}

	// Month is a calendar month 1-12. The zero value matches no rows.
	Month int
)

var (
	ErrNoID = errors.New("product has no id")
)

// saleDateLayouts are tried in order when extracting the month of a sale.
var saleDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseMonth parses the two-digit month filter used by the API ("01".."12").
// Anything else yields the zero Month and false.
func ParseMonth(s string) (Month, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '1' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	m := Month(int(s[0]-'0')*10 + int(s[1]-'0'))
	if !m.Valid() {
		return 0, false
	}
	return m, true
}

// Valid reports whether m is a calendar month.
func (m Month) Valid() bool {
	return m >= 1 && m <= 12
}

// String returns the two-digit form, or "" for an invalid month.
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return string([]byte{byte('0' + int(m)/10), byte('0' + int(m)%10)})
}

// SaleMonth parses dateOfSale and returns its calendar month in the timestamp's own offset.
func SaleMonth(dateOfSale string) (Month, bool) {
	s := strings.TrimSpace(dateOfSale)
	if s == "" {
		return 0, false
	}
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Month(t.Month()), true
		}
	}
	return prefixMonth(s)
}

// prefixMonth reads MM from a "YYYY-MM..." prefix, for timestamps none of the
// layouts accept.
func prefixMonth(s string) (Month, bool) {
	if len(s) < 7 || s[4] != '-' {
		return 0, false
	}
	for _, c := range s[:4] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	if len(s) > 7 && s[7] >= '0' && s[7] <= '9' {
		return 0, false
	}
	return ParseMonth(s[5:7])
}

// Validate checks the only invariant the store relies on: a dataset-supplied id.
func (p ProductSale) Validate() error {
	if p.ID == 0 {
		return ErrNoID
	}
	return nil
}
