package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// CredentialsRepository handles password credential persistence.
type CredentialsRepository struct {
	db *sql.DB
}

// NewCredentialsRepository creates a new credentials repository.
func NewCredentialsRepository(db *sql.DB) *CredentialsRepository {
	return &CredentialsRepository{db: db}
}

// Create stores credentials for a user.
func (r *CredentialsRepository) Create(ctx context.Context, cred *domain.UserCredential) error {
	return r.CreateTx(ctx, r.db, cred)
}

// CreateTx stores credentials for a user within a transaction.
func (r *CredentialsRepository) CreateTx(ctx context.Context, q Querier, cred *domain.UserCredential) error {
	query := `
		INSERT INTO user_credentials (user_id, password_hash, password_updated_at)
		VALUES ($1, $2, $3)
	`
	_, err := q.ExecContext(ctx, query, cred.UserID, cred.PasswordHash, cred.PasswordUpdatedAt)
	return err
}

// GetByUserID retrieves credentials for a user.
func (r *CredentialsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserCredential, error) {
	query := `
		SELECT user_id, password_hash, password_updated_at
		FROM user_credentials
		WHERE user_id = $1
	`
	cred := &domain.UserCredential{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&cred.UserID, &cred.PasswordHash, &cred.PasswordUpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return cred, nil
}
