package services

import (
	"context"

	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
)

// TokenSvcFacade is the token-lifecycle surface: stored credential access,
// publishing parameters and silent renewal.
type TokenSvcFacade interface {
	// GetToken returns the stored token of the given kind, or "" when absent.
	GetToken(ctx context.Context, subjectID string, kind domain.TokenKind) (string, error)

	// StoreTokens upserts the credential pair with merge semantics.
	StoreTokens(ctx context.Context, subjectID, accessToken, refreshToken string) error

	// ClearTokens removes the credential pair, leaving the publishing
	// parameters intact.
	ClearTokens(ctx context.Context, subjectID string) error

	// GetParam returns a publishing parameter (sheet_id or external_path),
	// or "" when absent.
	GetParam(ctx context.Context, subjectID, param string) (string, error)

	// StoreParam upserts a publishing parameter with merge semantics.
	// Unknown param names return apperrors.ErrValidation.
	StoreParam(ctx context.Context, subjectID, param, value string) error

	// Refresh exchanges the stored refresh token for a new access token and
	// stores it. Absent or rejected refresh tokens clear the stored credential
	// pair and return apperrors.ErrNoRefreshToken or apperrors.ErrRefreshRejected.
	Refresh(ctx context.Context, subjectID string) error
}
