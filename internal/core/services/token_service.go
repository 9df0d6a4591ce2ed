package services

import (
	"context"
	"fmt"

	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
)

// tokenService implements the TokenSvcFacade over the user record store.
// Refresh is the only path that mutates the access token outside of the
// initial OAuth code exchange.
type tokenService struct {
	userRepo portsrepo.UserRepository
	provider portssvc.GoogleAuthSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(userRepo portsrepo.UserRepository, provider portssvc.GoogleAuthSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		userRepo: userRepo,
		provider: provider,
	}
}

func (s *tokenService) GetToken(ctx context.Context, subjectID string, kind domain.TokenKind) (string, error) {
	record, err := s.userRepo.FindUser(ctx, subjectID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", nil
	}
	switch kind {
	case domain.TokenAccess:
		return record.AccessToken, nil
	case domain.TokenRefresh:
		return record.RefreshToken, nil
	default:
		return "", fmt.Errorf("%w: unknown token kind %q", apperrors.ErrValidation, kind)
	}
}

func (s *tokenService) StoreTokens(ctx context.Context, subjectID, accessToken, refreshToken string) error {
	return s.userRepo.SaveTokens(ctx, subjectID, accessToken, refreshToken)
}

func (s *tokenService) ClearTokens(ctx context.Context, subjectID string) error {
	return s.userRepo.ClearTokens(ctx, subjectID)
}

func (s *tokenService) GetParam(ctx context.Context, subjectID, param string) (string, error) {
	record, err := s.userRepo.FindUser(ctx, subjectID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", nil
	}
	switch param {
	case domain.ParamSheetID:
		return record.SheetID, nil
	case domain.ParamExternalPath:
		return record.ExternalPath, nil
	default:
		return "", fmt.Errorf("%w: unknown param %q", apperrors.ErrValidation, param)
	}
}

func (s *tokenService) StoreParam(ctx context.Context, subjectID, param, value string) error {
	if param != domain.ParamSheetID && param != domain.ParamExternalPath {
		return fmt.Errorf("%w: unknown param %q", apperrors.ErrValidation, param)
	}
	return s.userRepo.SaveParam(ctx, subjectID, param, value)
}

// Refresh exchanges the stored refresh token for a new access token.
// An absent refresh token and a provider rejection both clear the stored
// credential pair: the user must re-authorize, there is no retry.
func (s *tokenService) Refresh(ctx context.Context, subjectID string) error {
	refreshToken, err := s.GetToken(ctx, subjectID, domain.TokenRefresh)
	if err != nil {
		return err
	}
	if refreshToken == "" {
		if err := s.userRepo.ClearTokens(ctx, subjectID); err != nil {
			return err
		}
		return apperrors.ErrNoRefreshToken
	}

	accessToken, err := s.provider.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		if clearErr := s.userRepo.ClearTokens(ctx, subjectID); clearErr != nil {
			return fmt.Errorf("failed to clear tokens after rejected refresh: %w", clearErr)
		}
		return err
	}

	return s.userRepo.SaveTokens(ctx, subjectID, accessToken, refreshToken)
}
