package domain

import "time"

// Session is the server-side state behind a client-held session handle.
// Multiple concurrent sessions per subject are allowed.
type Session struct {
	SessionID string
	SubjectID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its TTL at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
