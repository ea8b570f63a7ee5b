package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPageLimit(t *testing.T) {
	for _, n := range PageLimits {
		assert.True(t, ValidPageLimit(n), "limit %d", n)
	}
	for _, n := range []int{0, 1, 15, 100, -5} {
		assert.False(t, ValidPageLimit(n), "limit %d", n)
	}
}

func TestDefaultBrowseQuery(t *testing.T) {
	q := DefaultBrowseQuery(true)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageLimit, q.Limit)
	assert.Equal(t, SearchDescription, q.SearchField)
	assert.Empty(t, q.SearchValue)
	assert.False(t, q.SearchActive)
	assert.True(t, q.IncludeDeleted)
}

func TestValidateSearch(t *testing.T) {
	assert.NoError(t, ValidateSearch(SearchDescription, "coffee"))
	assert.NoError(t, ValidateSearch(SearchDate, "2024-01-31"))
	assert.NoError(t, ValidateSearch(SearchAmount, "12.50"))
	assert.NoError(t, ValidateSearch(SearchCurrency, "usd"))

	// Blank values never reach the network.
	assert.Error(t, ValidateSearch(SearchDescription, "   "))
	assert.Error(t, ValidateSearch(SearchDescription, ""))

	assert.Error(t, ValidateSearch(SearchField("amountInINR"), "5"))
	assert.Error(t, ValidateSearch(SearchDate, "31-01-2024"))
	assert.Error(t, ValidateSearch(SearchAmount, "ten"))
	assert.Error(t, ValidateSearch(SearchCurrency, "doubloons"))
}
