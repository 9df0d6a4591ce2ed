package services

import (
	"context"

	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
)

// feedService is the unauthenticated read side of published feeds.
// Filtering happened at publish time; reads hand back the document as stored.
type feedService struct {
	feedRepo portsrepo.FeedRepository
}

// NewFeedService creates a new instance of feedService.
func NewFeedService(feedRepo portsrepo.FeedRepository) portssvc.FeedSvcFacade {
	return &feedService{feedRepo: feedRepo}
}

func (s *feedService) GetFeed(ctx context.Context, externalPath string) ([]domain.BookEntry, error) {
	return s.feedRepo.FindFeed(ctx, externalPath)
}
