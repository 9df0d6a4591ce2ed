package services

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// GoogleAuthSvcFacade wraps the identity provider: ID token verification,
// authorization-code exchange and refresh-token exchange.
type GoogleAuthSvcFacade interface {
	// VerifyIDToken validates the signature, audience and expiry of an
	// externally-issued identity assertion and returns its payload. Any
	// structural or cryptographic failure wraps apperrors.ErrInvalidCredential.
	VerifyIDToken(ctx context.Context, credential string) (*idtoken.Payload, error)

	// ExchangeCode exchanges an OAuth authorization code for a token pair.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// RefreshAccessToken exchanges a refresh token for a new access token.
	// A non-success outcome from the provider wraps apperrors.ErrRefreshRejected.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
}

// SessionSvcFacade maps opaque client-held handles to verified subject
// identifiers.
type SessionSvcFacade interface {
	// Create opens a new session for subject and returns the signed handle.
	Create(ctx context.Context, subjectID string) (string, error)

	// Lookup resolves a handle to its subject. Invalid, unknown or expired
	// handles return apperrors.ErrNotFound.
	Lookup(ctx context.Context, handle string) (string, error)

	// Destroy ends the session behind handle. Destroying an already-dead
	// session is not an error.
	Destroy(ctx context.Context, handle string) error
}
