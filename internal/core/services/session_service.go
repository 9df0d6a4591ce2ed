package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
	"github.com/shelfpub/shelfpub_backend/internal/utils"
)

// sessionService implements SessionSvcFacade. The handle given to the client
// is an HS256 JWT whose subject is the server-side session id; the signing
// key is process-wide configuration loaded once at startup.
type sessionService struct {
	sessionRepo portsrepo.SessionRepository
	secret      string
	ttl         time.Duration
	issuer      string
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo portsrepo.SessionRepository, cfg *config.Config) portssvc.SessionSvcFacade {
	return &sessionService{
		sessionRepo: sessionRepo,
		secret:      cfg.SessionSecret,
		ttl:         cfg.SessionTTL,
		issuer:      cfg.SessionIssuer,
	}
}

func (s *sessionService) Create(ctx context.Context, subjectID string) (string, error) {
	now := time.Now().UTC()
	session := domain.Session{
		SessionID: uuid.NewString(),
		SubjectID: subjectID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	handle, err := utils.GenerateJWT(session.SessionID, s.secret, s.ttl, s.issuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign session handle: %w", err)
	}

	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return "", err
	}
	return handle, nil
}

func (s *sessionService) Lookup(ctx context.Context, handle string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(handle, s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: invalid session handle", apperrors.ErrNotFound)
	}

	session, err := s.sessionRepo.FindSession(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", fmt.Errorf("%w: session does not exist", apperrors.ErrNotFound)
	}
	if session.Expired(time.Now().UTC()) {
		// Expired rows are reaped lazily on lookup.
		_ = s.sessionRepo.DeleteSession(ctx, session.SessionID)
		return "", fmt.Errorf("%w: session expired", apperrors.ErrNotFound)
	}
	return session.SubjectID, nil
}

// Destroy ends the session behind handle. Handles that no longer parse or
// point at a missing row are treated as already destroyed.
func (s *sessionService) Destroy(ctx context.Context, handle string) error {
	claims, err := utils.ParseAndValidateJWT(handle, s.secret)
	if err != nil {
		return nil
	}
	return s.sessionRepo.DeleteSession(ctx, claims.Subject)
}
