package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portsrepo "github.com/shelfpub/shelfpub_backend/internal/core/ports/repositories"
)

// paramColumns whitelists the updatable parameter columns. The param name is
// interpolated into the upsert statement, so it must never come from user
// input without passing through this map.
var paramColumns = map[string]string{
	domain.ParamSheetID:      "sheet_id",
	domain.ParamExternalPath: "external_path",
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements the port.
var _ portsrepo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindUser(ctx context.Context, subjectID string) (*domain.UserRecord, error) {
	query := `
        SELECT subject_id, COALESCE(token, ''), COALESCE(refresh_token, ''),
               COALESCE(sheet_id, ''), COALESCE(external_path, '')
        FROM users
        WHERE subject_id = $1;
    `
	var record domain.UserRecord
	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&record.SubjectID,
		&record.AccessToken,
		&record.RefreshToken,
		&record.SheetID,
		&record.ExternalPath,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Indicate not found explicitly
		}
		return nil, fmt.Errorf("failed to find user record: %w", err)
	}
	return &record, nil
}

// SaveTokens upserts the credential pair. Merge semantics: sheet_id and
// external_path are untouched whether or not the record already exists.
func (r *UserRepository) SaveTokens(ctx context.Context, subjectID, accessToken, refreshToken string) error {
	query := `
        INSERT INTO users (subject_id, token, refresh_token)
        VALUES ($1, $2, $3)
        ON CONFLICT (subject_id) DO UPDATE SET
            token = EXCLUDED.token,
            refresh_token = EXCLUDED.refresh_token;
    `
	_, err := r.db.Exec(ctx, query, subjectID, accessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// ClearTokens nulls exactly the token columns. Clearing a missing record is a
// no-op, not an error.
func (r *UserRepository) ClearTokens(ctx context.Context, subjectID string) error {
	query := `
        UPDATE users
        SET token = NULL, refresh_token = NULL
        WHERE subject_id = $1;
    `
	if _, err := r.db.Exec(ctx, query, subjectID); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

func (r *UserRepository) SaveParam(ctx context.Context, subjectID, param, value string) error {
	column, ok := paramColumns[param]
	if !ok {
		return fmt.Errorf("%w: unknown param %q", apperrors.ErrValidation, param)
	}
	query := fmt.Sprintf(`
        INSERT INTO users (subject_id, %[1]s)
        VALUES ($1, $2)
        ON CONFLICT (subject_id) DO UPDATE SET
            %[1]s = EXCLUDED.%[1]s;
    `, column)
	if _, err := r.db.Exec(ctx, query, subjectID, value); err != nil {
		return fmt.Errorf("failed to save param %s: %w", param, err)
	}
	return nil
}

func (r *UserRepository) ListPublishable(ctx context.Context) ([]domain.PublishTarget, error) {
	query := `
        SELECT subject_id, sheet_id, COALESCE(external_path, '')
        FROM users
        WHERE sheet_id IS NOT NULL AND sheet_id <> '';
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query publishable users: %w", err)
	}
	defer rows.Close()

	targets := []domain.PublishTarget{}
	for rows.Next() {
		var target domain.PublishTarget
		if err := rows.Scan(&target.SubjectID, &target.SheetID, &target.ExternalPath); err != nil {
			return nil, fmt.Errorf("failed to scan publishable user row: %w", err)
		}
		targets = append(targets, target)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating publishable user rows: %w", rows.Err())
	}
	return targets, nil
}
