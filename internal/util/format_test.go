package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "no expiry", FormatRemaining(time.Time{}, now))
	assert.Equal(t, "expired", FormatRemaining(now.Add(-time.Minute), now))
	assert.Equal(t, "expired", FormatRemaining(now, now))
	assert.Equal(t, "1h30m0s", FormatRemaining(now.Add(90*time.Minute+300*time.Millisecond), now))
}
