package auth

// Package auth contains domain-level types for the session lifecycle.
// It is pure and free of framework/adapter concerns.

import "time"

// Status is the tri-state authentication status of a browser session.
// Unknown is the initial state before any persisted credential has been
// checked; it is distinct from Unauthenticated and must never be treated
// as a denial.
type Status string

const (
	StatusUnknown         Status = "unknown"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Resolved returns true once the status is no longer Unknown.
func (s Status) Resolved() bool { return s != StatusUnknown }

// Identity is the user identity derived from a valid credential.
// It is never constructed independently of a decode (or the fixed
// privileged fallback) and exists if and only if the owning session
// is authenticated.
type Identity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`

	// ExpiresAt is the credential's embedded expiry claim. Zero for the
	// privileged fallback identity, which has no backing credential.
	ExpiresAt time.Time `json:"-"`
}

// Expired reports whether the identity's credential expiry has passed.
// Identities without an embedded expiry never expire on their own; the
// idle-expiry clock still applies.
func (id Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt)
}
