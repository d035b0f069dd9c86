package seed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSheetRows(t *testing.T) {
	values := [][]interface{}{
		{"id", "title", "price", "description", "category", "image", "sold", "dateOfSale"},
		{float64(1), "Backpack", 329.85, "bag", "men's clothing", "https://example.com/1.jpg", false, "2021-11-27T20:29:54+05:30"},
		{"2", "Shirt", "44.6", "", "men's clothing", "", "TRUE", "2021-10-27"},
		{float64(3), "Short row", float64(12)},
		{"x", "bad id"},
		{},
		{1.5, "fractional id"},
		{float64(4), "Yes cell", float64(5), "", "", "", "yes", ""},
		{float64(5), "Empty cell", float64(5), "", "", "", "", ""},
	}

	products, skipped := parseSheetRows(values)
	assert.Equal(t, 2, skipped)
	require.Len(t, products, 5)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, 329.85, *products[0].Price)
	assert.False(t, products[0].Sold)
	assert.Equal(t, "2021-11-27T20:29:54+05:30", products[0].DateOfSale)

	assert.Equal(t, int64(2), products[1].ID)
	assert.Equal(t, 44.6, *products[1].Price)
	assert.True(t, products[1].Sold)

	assert.Equal(t, int64(3), products[2].ID)
	assert.Empty(t, products[2].Category)
	assert.Empty(t, products[2].DateOfSale)
	assert.False(t, products[2].Sold)

	assert.True(t, products[3].Sold)
	assert.False(t, products[4].Sold)
}

func TestSoldRuleMatchesJSON(t *testing.T) {
	cells := []interface{}{true, false, float64(1), float64(0), "yes", "x", "", nil}
	for _, c := range cells {
		raw, err := json.Marshal(map[string]any{"id": 1, "sold": c})
		require.NoError(t, err)
		fromJSON, _, err := DecodeProducts([]byte("[" + string(raw) + "]"))
		require.NoError(t, err)
		require.Len(t, fromJSON, 1)

		fromSheet, _ := parseSheetRows([][]interface{}{{float64(1), "", "", "", "", "", c}})
		require.Len(t, fromSheet, 1)

		assert.Equal(t, fromJSON[0].Sold, fromSheet[0].Sold, "sold cell %#v", c)
	}
}

func TestLoadCredentials(t *testing.T) {
	b, err := loadCredentials(SheetsConfig{CredentialsJSON: `{"type":"service_account"}`})
	require.NoError(t, err)
	assert.Contains(t, string(b), "service_account")

	_, err = loadCredentials(SheetsConfig{CredentialsFile: "/does/not/exist.json"})
	require.Error(t, err)

	_, err = loadCredentials(SheetsConfig{})
	require.Error(t, err)
}
