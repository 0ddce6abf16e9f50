package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
	"github.com/shiftlog/shiftlog/pkg/repository"
)

const minPasswordLen = 8

// PasswordService handles registration and password authentication for the
// provisioning API.
type PasswordService struct {
	db    *sql.DB
	users *repository.UsersRepository
	creds *repository.CredentialsRepository
}

// NewPasswordService creates a new password service.
func NewPasswordService(db *sql.DB, users *repository.UsersRepository, creds *repository.CredentialsRepository) *PasswordService {
	return &PasswordService{
		db:    db,
		users: users,
		creds: creds,
	}
}

// Register creates a new user with password credentials.
func (s *PasswordService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if len(password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cred := &domain.UserCredential{
		UserID:            user.ID,
		PasswordHash:      hash,
		PasswordUpdatedAt: now,
	}

	// Create user and credentials in a transaction.
	err = repository.Tx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.creds.CreateTx(ctx, tx, cred)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email and password and returns the user on success.
func (s *PasswordService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	cred, err := s.creds.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if !VerifyPassword(password, cred.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
