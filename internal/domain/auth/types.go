package auth

// Package auth contains domain-level types for federated login and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// ExternalIdentity is the assertion returned by the workforce directory after a code exchange.
// It only lives for the duration of one callback.
type ExternalIdentity struct {
	Email string
}

// Session is the decoded content of a session credential.
// The JSON names match the claims the mobile app already reads.
type Session struct {
	SubjectID string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
