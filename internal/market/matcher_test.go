package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCommodities = []string{"Maize", "Tomato", "Potato", "Bean", "Rice", "Cabbage", "Peanut"}

func TestMatchCommodityExact(t *testing.T) {
	result := MatchCommodity("maize", testCommodities)

	assert.True(t, result.Found)
	assert.Equal(t, "Maize", result.Commodity)
	assert.Equal(t, "exact", result.Method)
	assert.Equal(t, 100.0, result.Similarity)
}

func TestMatchCommodityAlias(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"corn", "Maize"},
		{"mahindi", "Maize"},
		{"paddy", "Rice"},
		{"maharagwe", "Bean"},
	}

	for _, tt := range tests {
		result := MatchCommodity(tt.query, testCommodities)
		assert.True(t, result.Found, "query %q", tt.query)
		assert.Equal(t, tt.want, result.Commodity, "query %q", tt.query)
		assert.Equal(t, "alias", result.Method, "query %q", tt.query)
	}
}

func TestMatchCommodityPluralAndQualifiers(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Tomatoes", "Tomato"},
		{"dried beans", "Bean"},
		{"Fresh Cabbage", "Cabbage"},
		{"groundnuts", "Peanut"},
	}

	for _, tt := range tests {
		result := MatchCommodity(tt.query, testCommodities)
		assert.True(t, result.Found, "query %q", tt.query)
		assert.Equal(t, tt.want, result.Commodity, "query %q", tt.query)
	}
}

func TestMatchCommodityFuzzyTypo(t *testing.T) {
	result := MatchCommodity("cabage", testCommodities)

	assert.True(t, result.Found)
	assert.Equal(t, "Cabbage", result.Commodity)
	assert.Equal(t, "fuzzy", result.Method)
	assert.GreaterOrEqual(t, result.Similarity, 70.0)
}

func TestMatchCommodityNotFound(t *testing.T) {
	tests := []string{"", "   ", "xylophone", "!!"}

	for _, query := range tests {
		result := MatchCommodity(query, testCommodities)
		assert.False(t, result.Found, "query %q", query)
		assert.Equal(t, "not_found", result.Method, "query %q", query)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("maize", "maize"))
	assert.Equal(t, 1, levenshteinDistance("maize", "maiz"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}
