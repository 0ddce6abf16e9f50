package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// VacationsRepository handles vacation persistence.
type VacationsRepository struct {
	db *sql.DB
}

// NewVacationsRepository creates a new vacations repository.
func NewVacationsRepository(db *sql.DB) *VacationsRepository {
	return &VacationsRepository{db: db}
}

// Create records a vacation day.
func (r *VacationsRepository) Create(ctx context.Context, vacation *domain.Vacation) error {
	query := `
		INSERT INTO vacations (id, user_id, organization_id, date, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		vacation.ID, vacation.UserID, vacation.OrganizationID,
		vacation.Date, vacation.Reason, vacation.CreatedAt,
	)
	return err
}

// ListByOrganization retrieves vacations in the organization with dates
// within [from, to], ordered by date.
func (r *VacationsRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]*domain.Vacation, error) {
	query := `
		SELECT id, user_id, organization_id, date, reason, created_at
		FROM vacations
		WHERE organization_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, orgID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vacations []*domain.Vacation
	for rows.Next() {
		vacation := &domain.Vacation{}
		err := rows.Scan(
			&vacation.ID, &vacation.UserID, &vacation.OrganizationID,
			&vacation.Date, &vacation.Reason, &vacation.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		vacations = append(vacations, vacation)
	}
	return vacations, rows.Err()
}
