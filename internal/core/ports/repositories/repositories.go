package repositories

import (
	"context"

	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
)

// UserRepository defines the persistence operations for per-subject user
// records. All writes use merge semantics: a write touches exactly the named
// fields and leaves the rest of the record intact. Find methods return
// (nil, nil) when no record exists.
type UserRepository interface {
	// FindUser retrieves the record for a subject, or nil if none exists.
	FindUser(ctx context.Context, subjectID string) (*domain.UserRecord, error)

	// SaveTokens upserts the access/refresh token pair for a subject.
	SaveTokens(ctx context.Context, subjectID, accessToken, refreshToken string) error

	// ClearTokens removes exactly the access and refresh tokens, leaving
	// sheet_id and external_path untouched.
	ClearTokens(ctx context.Context, subjectID string) error

	// SaveParam upserts a single publishing parameter (sheet_id or
	// external_path) for a subject.
	SaveParam(ctx context.Context, subjectID, param, value string) error

	// ListPublishable returns every user with a non-empty sheet_id.
	ListPublishable(ctx context.Context) ([]domain.PublishTarget, error)
}

// SessionRepository defines the persistence operations for server-side
// sessions.
type SessionRepository interface {
	// SaveSession persists a new session.
	SaveSession(ctx context.Context, session domain.Session) error

	// FindSession retrieves a session by id, or nil if none exists.
	FindSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// DeleteSession removes a session. Deleting a missing session is not an
	// error.
	DeleteSession(ctx context.Context, sessionID string) error
}

// FeedRepository defines the persistence operations for published feeds.
// A feed is stored as one whole JSON document per public path; ReplaceFeed
// swaps the entire document in a single operation so readers never observe a
// partially written feed.
type FeedRepository interface {
	// ReplaceFeed overwrites the feed document at path with the given entries.
	ReplaceFeed(ctx context.Context, path string, entries []domain.BookEntry) error

	// FindFeed returns the last published entries at path, or an empty slice
	// if the path has never been published.
	FindFeed(ctx context.Context, path string) ([]domain.BookEntry, error)
}
