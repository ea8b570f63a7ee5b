package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchField enumerates the record attributes the search box can match on.
type SearchField string

const (
	SearchDescription SearchField = "description"
	SearchDate        SearchField = "date"
	SearchAmount      SearchField = "amount"
	SearchCurrency    SearchField = "currency"
)

// ValidSearchField reports whether f is one of the enumerated fields.
func ValidSearchField(f SearchField) bool {
	switch f {
	case SearchDescription, SearchDate, SearchAmount, SearchCurrency:
		return true
	}
	return false
}

// PageLimits are the allowed page sizes, as offered by the entries dropdown.
var PageLimits = []int{5, 10, 20, 25, 30, 50}

// DefaultPageLimit is the page size a fresh browser starts with.
const DefaultPageLimit = 10

// ValidPageLimit reports whether n is one of the enumerated page sizes.
func ValidPageLimit(n int) bool {
	for _, l := range PageLimits {
		if n == l {
			return true
		}
	}
	return false
}

// BrowseQuery is the pagination + search tuple sent to the listing
// endpoints. SearchField and SearchValue are only meaningful while
// SearchActive is set; clearing search resets them to their defaults.
type BrowseQuery struct {
	Page           int
	Limit          int
	SearchField    SearchField
	SearchValue    string
	SearchActive   bool
	IncludeDeleted bool
}

// DefaultBrowseQuery returns the initial query state for a browser view.
func DefaultBrowseQuery(includeDeleted bool) BrowseQuery {
	return BrowseQuery{
		Page:           1,
		Limit:          DefaultPageLimit,
		SearchField:    SearchDescription,
		IncludeDeleted: includeDeleted,
	}
}

// ValidateSearch checks a search predicate before any network call:
// the field must be enumerated, the value non-blank, and typed fields
// (date, amount, currency) must carry a value of the right shape.
func ValidateSearch(field SearchField, value string) error {
	if !ValidSearchField(field) {
		return fmt.Errorf("unknown search field %q", field)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("please enter a value to search")
	}
	switch field {
	case SearchDate:
		if _, err := ParseDate(value); err != nil {
			return err
		}
	case SearchAmount:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("amount %q is not numeric", value)
		}
	case SearchCurrency:
		if !ValidCurrency(strings.ToUpper(value)) {
			return fmt.Errorf("unknown currency code %q", value)
		}
	}
	return nil
}
