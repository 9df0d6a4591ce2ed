package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Ensure SessionRepository implements the port.
var _ portsrepo.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	query := `
        INSERT INTO sessions (session_id, subject_id, created_at, expires_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.db.Exec(ctx, query,
		session.SessionID,
		session.SubjectID,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `
        SELECT session_id, subject_id, created_at, expires_at
        FROM sessions
        WHERE session_id = $1;
    `
	var session domain.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.SessionID,
		&session.SubjectID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Indicate not found explicitly
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session row. Deleting a missing session is a no-op.
func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1;`
	if _, err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
