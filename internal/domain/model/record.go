package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the calendar-date wire format used by the transactions API.
const DateLayout = "2006-01-02"

// MinRecordDate is the earliest date the add-transaction form accepts.
var MinRecordDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

// Record is a financial transaction as served by the remote API.
// AmountInINR is computed server-side and is read-only here.
type Record struct {
	ID             int64   `json:"id"`
	Description    string  `json:"description"`
	OriginalAmount float64 `json:"originalAmount"`
	Date           string  `json:"date"`
	Currency       string  `json:"currency"`
	AmountInINR    float64 `json:"amountInINR"`
}

// ListResult is the paged response shape of the remote listing endpoints.
type ListResult struct {
	Transactions []Record `json:"transactions"`
	Pages        int      `json:"pages"`
	Message      string   `json:"message,omitempty"`
}

// RecordFields are the writable fields of a record, shared by the add and
// update requests.
type RecordFields struct {
	Description    string  `json:"description"`
	OriginalAmount float64 `json:"originalAmount"`
	Date           string  `json:"date"`
	Currency       string  `json:"currency"`
}

var (
	errEmptyDescription = errors.New("description is required")
	errBadAmount        = errors.New("amount must be a positive number")
	errBadCurrency      = errors.New("unknown currency code")
)

// Validate checks the type/range constraints the original form fields
// enforced: non-empty description, positive amount, parseable calendar
// date, currency from the fixed set.
func (f *RecordFields) Validate() error {
	if strings.TrimSpace(f.Description) == "" {
		return errEmptyDescription
	}
	if f.OriginalAmount <= 0 {
		return errBadAmount
	}
	if _, err := ParseDate(f.Date); err != nil {
		return err
	}
	if !ValidCurrency(f.Currency) {
		return fmt.Errorf("%w: %q", errBadCurrency, f.Currency)
	}
	return nil
}

// Normalize rewrites the description into canonical form.
func (f *RecordFields) Normalize() {
	f.Description = NormalizeDescription(f.Description)
	f.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
}

// NewRecordRequest is the body of an add-transaction call.
type NewRecordRequest struct {
	RecordFields
}

// Validate applies the shared field checks plus the add form's date range
// (1990-01-01 through today).
func (r *NewRecordRequest) Validate(now time.Time) error {
	if err := r.RecordFields.Validate(); err != nil {
		return err
	}
	d, err := ParseDate(r.Date)
	if err != nil {
		return err
	}
	if d.Before(MinRecordDate) {
		return fmt.Errorf("date %s is before %s", r.Date, MinRecordDate.Format(DateLayout))
	}
	if d.After(now) {
		return fmt.Errorf("date %s is in the future", r.Date)
	}
	return nil
}

// UpdateRecordRequest is the body of an update-transaction call.
type UpdateRecordRequest struct {
	RecordFields
}

// ParseDate parses a yyyy-mm-dd calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want %s", s, DateLayout)
	}
	return d, nil
}

var (
	descDisallowed = regexp.MustCompile(`[^\w\s-]`)
	descWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizeDescription trims, Unicode-normalizes (NFKC), strips characters
// outside word/space/hyphen, and collapses internal whitespace.
func NormalizeDescription(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	s = descDisallowed.ReplaceAllString(s, "")
	s = descWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
