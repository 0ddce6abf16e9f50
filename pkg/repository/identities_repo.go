package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// IdentitiesRepository handles chat identity persistence.
type IdentitiesRepository struct {
	db *sql.DB
}

// NewIdentitiesRepository creates a new identities repository.
func NewIdentitiesRepository(db *sql.DB) *IdentitiesRepository {
	return &IdentitiesRepository{db: db}
}

// Create links a platform identity to a user.
// The (platform, platform_user_id) pair is unique across all users.
func (r *IdentitiesRepository) Create(ctx context.Context, identity *domain.ChatIdentity) error {
	query := `
		INSERT INTO chat_identities (id, user_id, platform, platform_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (platform, platform_user_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		identity.ID, identity.UserID, identity.Platform, identity.PlatformUserID, identity.CreatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrIdentityAlreadyLinked
	}
	return nil
}

// GetByPlatformID retrieves an identity by platform and platform user id.
func (r *IdentitiesRepository) GetByPlatformID(ctx context.Context, platform domain.ChatPlatform, platformUserID string) (*domain.ChatIdentity, error) {
	query := `
		SELECT id, user_id, platform, platform_user_id, created_at
		FROM chat_identities
		WHERE platform = $1 AND platform_user_id = $2
	`
	identity := &domain.ChatIdentity{}
	err := r.db.QueryRowContext(ctx, query, platform, platformUserID).Scan(
		&identity.ID, &identity.UserID, &identity.Platform, &identity.PlatformUserID, &identity.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnknownIdentity
	}
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// GetByUserID retrieves all linked identities for a user.
func (r *IdentitiesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.ChatIdentity, error) {
	query := `
		SELECT id, user_id, platform, platform_user_id, created_at
		FROM chat_identities
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identities []*domain.ChatIdentity
	for rows.Next() {
		identity := &domain.ChatIdentity{}
		err := rows.Scan(
			&identity.ID, &identity.UserID, &identity.Platform, &identity.PlatformUserID, &identity.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}
	return identities, rows.Err()
}
