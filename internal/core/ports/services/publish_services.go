package services

import (
	"context"

	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
)

// SpreadsheetSvcFacade fetches a rectangular range of string cells from the
// external spreadsheet provider on behalf of a user.
type SpreadsheetSvcFacade interface {
	// FetchRange reads the configured row range from the given sheet using the
	// user's credentials. Transport, permission and timeout failures wrap
	// apperrors.ErrUpstreamFetch. Rows are not padded: a row may be shorter
	// than the mapped columns.
	FetchRange(ctx context.Context, accessToken, refreshToken, sheetID string) ([][]string, error)
}

// PublishSvcFacade runs the publish pipeline.
type PublishSvcFacade interface {
	// Publish fetches the user's sheet, filters publishable rows and replaces
	// the feed at externalPath. Missing credentials return
	// apperrors.ErrNotAuthorized; provider failures wrap
	// apperrors.ErrUpstreamFetch. Neither is retried within the call.
	Publish(ctx context.Context, subjectID, sheetID, externalPath string) error

	// PublishAll runs Publish for every publishable user with a non-empty
	// external_path. Per-user failures are logged and collected; they never
	// abort processing of the remaining users.
	PublishAll(ctx context.Context) error
}

// FeedSvcFacade is the unauthenticated read side of published feeds.
type FeedSvcFacade interface {
	// GetFeed returns the most recently published entries at externalPath, or
	// an empty slice if the path has never been published. No filtering is
	// applied at read time.
	GetFeed(ctx context.Context, externalPath string) ([]domain.BookEntry, error)
}
