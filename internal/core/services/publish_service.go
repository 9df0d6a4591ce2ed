package services

import (
	"context"
	"log/slog"

	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
)

// publishService implements the publish pipeline: fetch the linked sheet,
// filter publishable rows, replace the feed document.
type publishService struct {
	userRepo portsrepo.UserRepository
	feedRepo portsrepo.FeedRepository
	sheets   portssvc.SpreadsheetSvcFacade
	spec     *domain.SheetSpec
	logger   *slog.Logger
}

// NewPublishService creates a new instance of publishService.
func NewPublishService(
	userRepo portsrepo.UserRepository,
	feedRepo portsrepo.FeedRepository,
	sheets portssvc.SpreadsheetSvcFacade,
	spec *domain.SheetSpec,
	logger *slog.Logger,
) portssvc.PublishSvcFacade {
	return &publishService{
		userRepo: userRepo,
		feedRepo: feedRepo,
		sheets:   sheets,
		spec:     spec,
		logger:   logger,
	}
}

func (s *publishService) Publish(ctx context.Context, subjectID, sheetID, externalPath string) error {
	record, err := s.userRepo.FindUser(ctx, subjectID)
	if err != nil {
		return err
	}
	if record == nil || record.AccessToken == "" || record.RefreshToken == "" {
		return apperrors.ErrNotAuthorized
	}

	rows, err := s.sheets.FetchRange(ctx, record.AccessToken, record.RefreshToken, sheetID)
	if err != nil {
		return err
	}

	// Rows are mapped in fetch order so republishing unchanged sheet content
	// yields a byte-identical feed.
	entries := []domain.BookEntry{}
	for i, row := range rows {
		if !s.spec.IsPublic(row) {
			continue
		}
		entries = append(entries, domain.NewBookEntry(i, row, s.spec))
	}

	return s.feedRepo.ReplaceFeed(ctx, externalPath, entries)
}

// PublishAll runs the pipeline for every user with a non-empty sheet_id and
// external_path. One user's failure never aborts the others: it is logged and
// the batch moves on. Only a failure to list users is returned.
func (s *publishService) PublishAll(ctx context.Context) error {
	targets, err := s.userRepo.ListPublishable(ctx)
	if err != nil {
		return err
	}

	published, failed := 0, 0
	for _, target := range targets {
		if target.ExternalPath == "" {
			continue
		}
		if err := s.Publish(ctx, target.SubjectID, target.SheetID, target.ExternalPath); err != nil {
			failed++
			s.logger.Error("Failed to publish feed",
				slog.String("subject_id", target.SubjectID),
				slog.String("external_path", target.ExternalPath),
				slog.String("error", err.Error()),
			)
			continue
		}
		published++
	}

	s.logger.Info("Publish batch completed",
		slog.Int("published", published),
		slog.Int("failed", failed),
		slog.Int("candidates", len(targets)),
	)
	return nil
}
