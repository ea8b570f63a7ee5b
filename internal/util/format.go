package util //nolint:revive // package name util hosts shared formatting helpers used by the CLIs

import "time"

// FormatRemaining formats the time left until a deadline for display.
// Returns "expired" for past deadlines and "no expiry" for a zero deadline,
// truncating to seconds for readability.
func FormatRemaining(deadline, now time.Time) string {
	switch {
	case deadline.IsZero():
		return "no expiry"
	case !deadline.After(now):
		return "expired"
	default:
		return deadline.Sub(now).Truncate(time.Second).String()
	}
}
