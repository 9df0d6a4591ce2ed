package services_test

import (
	"context"
	"testing"

	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	"github.com/shelfpub/shelfpub_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeedHandsBackStoredDocument(t *testing.T) {
	mockFeeds := new(MockFeedRepository)
	service := services.NewFeedService(mockFeeds)
	ctx := context.Background()

	stored := []domain.BookEntry{{Ordinal: 0, Title: "Dune"}}
	mockFeeds.On("FindFeed", ctx, "alice").Return(stored, nil)

	entries, err := service.GetFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stored, entries)
}

func TestGetFeedNeverPublished(t *testing.T) {
	mockFeeds := new(MockFeedRepository)
	service := services.NewFeedService(mockFeeds)
	ctx := context.Background()

	mockFeeds.On("FindFeed", ctx, "nobody").Return([]domain.BookEntry{}, nil)

	entries, err := service.GetFeed(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
