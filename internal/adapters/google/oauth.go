package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	sheets "google.golang.org/api/sheets/v4"
)

// authService implements GoogleAuthSvcFacade against Google's OAuth2/OpenID
// endpoints. The oauth2 config is built once at construction time.
type authService struct {
	clientID string
	conf     *oauth2.Config
	timeout  time.Duration
}

// NewAuthService creates the Google identity/OAuth adapter.
// The redirect URI is the literal "postmessage" because the frontend obtains
// the authorization code via the GIS popup flow, not a redirect.
func NewAuthService(cfg *config.Config) portssvc.GoogleAuthSvcFacade {
	return &authService{
		clientID: cfg.GoogleClientID,
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  "postmessage",
			Scopes:       []string{"openid", sheets.SpreadsheetsReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		timeout: cfg.UpstreamTimeout,
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*authService)(nil)

// VerifyIDToken validates the signed identity assertion against Google's
// certificates and the configured client id.
func (s *authService) VerifyIDToken(ctx context.Context, credential string) (*idtoken.Payload, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := idtoken.Validate(ctx, credential, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCredential, err)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: subject claim missing", apperrors.ErrInvalidCredential)
	}
	return payload, nil
}

// ExchangeCode exchanges an OAuth authorization code for a token pair.
func (s *authService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// RefreshAccessToken mints a new access token from a stored refresh token.
// Every non-success outcome maps to ErrRefreshRejected: the caller clears the
// stored credential pair and forces re-authorization, never retries.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ts := s.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRefreshRejected, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: provider returned no access token", apperrors.ErrRefreshRejected)
	}
	return token.AccessToken, nil
}
