package seed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"salesdash/internal/core"
	applog "salesdash/internal/log"
)

// record mirrors one element of the seed dataset. Fields are decoded leniently:
// a field of the wrong type becomes its zero value instead of failing the element.
type record struct {
	ID          json.RawMessage `json:"id"`
	Title       json.RawMessage `json:"title"`
	Price       json.RawMessage `json:"price"`
	Description json.RawMessage `json:"description"`
	Category    json.RawMessage `json:"category"`
	Image       json.RawMessage `json:"image"`
	Sold        json.RawMessage `json:"sold"`
	DateOfSale  json.RawMessage `json:"dateOfSale"`
}

func (r record) product() (core.ProductSale, error) {
	id, ok := rawInt(r.ID)
	if !ok {
		return core.ProductSale{}, core.ErrNoID
	}
	p := core.ProductSale{
		ID:          id,
		Title:       rawString(r.Title),
		Price:       rawFloat(r.Price),
		Description: rawString(r.Description),
		Category:    rawString(r.Category),
		Image:       rawString(r.Image),
		Sold:        rawTruthy(r.Sold),
		DateOfSale:  rawString(r.DateOfSale),
	}
	return p, p.Validate()
}

// DecodeProducts parses a JSON array of products. Elements that are not objects or
// carry no id are skipped and counted; the array itself must be well formed.
func DecodeProducts(data []byte) ([]core.ProductSale, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, 0, fmt.Errorf("decode product array: %w", err)
	}

	products := make([]core.ProductSale, 0, len(elems))
	skipped := 0
	for i, raw := range elems {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			seedLog().Warn("Skipping malformed product", "index", i, applog.FieldError, err)
			skipped++
			continue
		}
		p, err := rec.product()
		if err != nil {
			seedLog().Warn("Skipping product", "index", i, applog.FieldError, err)
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func rawFloat(raw json.RawMessage) *float64 {
	var f *float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &v
		}
	}
	return nil
}

func rawInt(raw json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	return 0, false
}

func rawTruthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return truthy(v)
}

// truthy is the sold rule shared by every source: true, any non-zero number
// and any non-empty string count as sold.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}
