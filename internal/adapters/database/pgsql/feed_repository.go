package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
)

// FeedRepository stores each published feed as one whole JSON document keyed
// by public path. The document is replaced in a single upsert, so readers
// never observe a partially written feed.
type FeedRepository struct {
	db *pgxpool.Pool
}

func NewFeedRepository(db *pgxpool.Pool) *FeedRepository {
	return &FeedRepository{db: db}
}

// Ensure FeedRepository implements the port.
var _ portsrepo.FeedRepository = (*FeedRepository)(nil)

func (r *FeedRepository) ReplaceFeed(ctx context.Context, path string, entries []domain.BookEntry) error {
	if entries == nil {
		entries = []domain.BookEntry{} // marshal as [], not null
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal feed for %s: %w", path, err)
	}

	query := `
        INSERT INTO published_feeds (path, body, published_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (path) DO UPDATE SET
            body = EXCLUDED.body,
            published_at = EXCLUDED.published_at;
    `
	if _, err := r.db.Exec(ctx, query, path, body, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to replace feed at %s: %w", path, err)
	}
	return nil
}

func (r *FeedRepository) FindFeed(ctx context.Context, path string) ([]domain.BookEntry, error) {
	query := `SELECT body FROM published_feeds WHERE path = $1;`

	var body []byte
	err := r.db.QueryRow(ctx, query, path).Scan(&body)
	if err != nil {
		if err == pgx.ErrNoRows {
			return []domain.BookEntry{}, nil // never published, not an error
		}
		return nil, fmt.Errorf("failed to find feed at %s: %w", path, err)
	}

	entries := []domain.BookEntry{}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed at %s: %w", path, err)
	}
	return entries, nil
}
