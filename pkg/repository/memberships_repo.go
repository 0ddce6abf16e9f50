package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// MembershipsRepository handles membership persistence.
type MembershipsRepository struct {
	db *sql.DB
}

// NewMembershipsRepository creates a new memberships repository.
func NewMembershipsRepository(db *sql.DB) *MembershipsRepository {
	return &MembershipsRepository{db: db}
}

// MembershipWithOrganization combines a membership with its organization for listing.
type MembershipWithOrganization struct {
	Membership   domain.Membership
	Organization domain.Organization
}

// Create creates a new membership.
func (r *MembershipsRepository) Create(ctx context.Context, membership *domain.Membership) error {
	return r.CreateTx(ctx, r.db, membership)
}

// CreateTx creates a new membership within a transaction.
// Memberships are unique per (user, organization).
func (r *MembershipsRepository) CreateTx(ctx context.Context, q Querier, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (id, organization_id, user_id, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (organization_id, user_id) DO NOTHING
	`
	result, err := q.ExecContext(ctx, query,
		membership.ID,
		membership.OrganizationID,
		membership.UserID,
		membership.Role,
		membership.Status,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMembershipExists
	}
	return nil
}

// GetByUserAndOrganization retrieves a membership for a user in an organization.
func (r *MembershipsRepository) GetByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT id, organization_id, user_id, role, status, created_at, updated_at, deleted_at
		FROM memberships
		WHERE user_id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`
	var membership domain.Membership
	err := r.db.QueryRowContext(ctx, query, userID, orgID).Scan(
		&membership.ID,
		&membership.OrganizationID,
		&membership.UserID,
		&membership.Role,
		&membership.Status,
		&membership.CreatedAt,
		&membership.UpdatedAt,
		&membership.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

// GetActiveWithOrganizations retrieves active memberships with organization
// details for a user, ordered by membership creation. The first entry is the
// implicit target organization for chat commands.
func (r *MembershipsRepository) GetActiveWithOrganizations(ctx context.Context, userID uuid.UUID) ([]*MembershipWithOrganization, error) {
	query := `
		SELECT
			m.id, m.organization_id, m.user_id, m.role, m.status, m.created_at, m.updated_at, m.deleted_at,
			o.id, o.name, o.slug, o.created_at, o.updated_at, o.deleted_at
		FROM memberships m
		INNER JOIN organizations o ON m.organization_id = o.id
		WHERE m.user_id = $1
			AND m.status = 'active'
			AND m.deleted_at IS NULL
			AND o.deleted_at IS NULL
		ORDER BY m.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*MembershipWithOrganization
	for rows.Next() {
		var result MembershipWithOrganization
		err := rows.Scan(
			&result.Membership.ID,
			&result.Membership.OrganizationID,
			&result.Membership.UserID,
			&result.Membership.Role,
			&result.Membership.Status,
			&result.Membership.CreatedAt,
			&result.Membership.UpdatedAt,
			&result.Membership.DeletedAt,
			&result.Organization.ID,
			&result.Organization.Name,
			&result.Organization.Slug,
			&result.Organization.CreatedAt,
			&result.Organization.UpdatedAt,
			&result.Organization.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// ActiveOrganizations retrieves the organizations the user is an active
// member of, ordered by membership creation.
func (r *MembershipsRepository) ActiveOrganizations(ctx context.Context, userID uuid.UUID) ([]*domain.Organization, error) {
	results, err := r.GetActiveWithOrganizations(ctx, userID)
	if err != nil {
		return nil, err
	}

	orgs := make([]*domain.Organization, 0, len(results))
	for _, result := range results {
		org := result.Organization
		orgs = append(orgs, &org)
	}
	return orgs, nil
}

// Update updates the role and status of a membership.
func (r *MembershipsRepository) Update(ctx context.Context, id uuid.UUID, role domain.MembershipRole, status domain.MembershipStatus) error {
	query := `
		UPDATE memberships
		SET role = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, role, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}
