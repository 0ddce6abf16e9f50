package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/attendance"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// WorkSessionsRepository handles work session persistence. The open-session
// invariant is enforced in Postgres: a partial unique index on
// (user_id, organization_id) WHERE ended_at IS NULL makes concurrent checkins
// for the same pair race safely, and checkout is a single guarded UPDATE.
type WorkSessionsRepository struct {
	db *sql.DB
}

var _ attendance.SessionStore = (*WorkSessionsRepository)(nil)

// NewWorkSessionsRepository creates a new work sessions repository.
func NewWorkSessionsRepository(db *sql.DB) *WorkSessionsRepository {
	return &WorkSessionsRepository{db: db}
}

// CreateSession inserts a new open session. Returns
// domain.ErrAlreadyCheckedIn when an open session already exists for the
// (user, organization) pair.
func (r *WorkSessionsRepository) CreateSession(ctx context.Context, session *domain.WorkSession) error {
	query := `
		INSERT INTO work_sessions (id, user_id, organization_id, started_at, ended_at, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, organization_id) WHERE ended_at IS NULL DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.OrganizationID,
		session.StartedAt, session.EndedAt, session.Note, session.CreatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlreadyCheckedIn
	}
	return nil
}

// FindOpenSession retrieves the single open session for the pair.
// Returns domain.ErrNotCheckedIn when there is none.
func (r *WorkSessionsRepository) FindOpenSession(ctx context.Context, userID, orgID uuid.UUID) (*domain.WorkSession, error) {
	query := `
		SELECT id, user_id, organization_id, started_at, ended_at, note, created_at
		FROM work_sessions
		WHERE user_id = $1 AND organization_id = $2 AND ended_at IS NULL
	`
	session := &domain.WorkSession{}
	err := r.db.QueryRowContext(ctx, query, userID, orgID).Scan(
		&session.ID, &session.UserID, &session.OrganizationID,
		&session.StartedAt, &session.EndedAt, &session.Note, &session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CloseOpenSession sets the end time on the pair's open session in one
// guarded UPDATE. A non-nil note replaces the stored note. Returns
// domain.ErrNotCheckedIn when no session is open.
func (r *WorkSessionsRepository) CloseOpenSession(ctx context.Context, userID, orgID uuid.UUID, endedAt time.Time, note *string) (*domain.WorkSession, error) {
	query := `
		UPDATE work_sessions
		SET ended_at = $1, note = COALESCE($2, note)
		WHERE user_id = $3 AND organization_id = $4 AND ended_at IS NULL
		RETURNING id, user_id, organization_id, started_at, ended_at, note, created_at
	`
	session := &domain.WorkSession{}
	err := r.db.QueryRowContext(ctx, query, endedAt, note, userID, orgID).Scan(
		&session.ID, &session.UserID, &session.OrganizationID,
		&session.StartedAt, &session.EndedAt, &session.Note, &session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListOpenSessions retrieves every open session in the organization with its
// owning user, ordered by session start.
func (r *WorkSessionsRepository) ListOpenSessions(ctx context.Context, orgID uuid.UUID) ([]attendance.RosterEntry, error) {
	query := `
		SELECT
			s.id, s.user_id, s.organization_id, s.started_at, s.ended_at, s.note, s.created_at,
			u.id, u.email, u.name, u.created_at, u.updated_at, u.deleted_at
		FROM work_sessions s
		INNER JOIN users u ON s.user_id = u.id
		WHERE s.organization_id = $1 AND s.ended_at IS NULL
		ORDER BY s.started_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []attendance.RosterEntry
	for rows.Next() {
		var entry attendance.RosterEntry
		err := rows.Scan(
			&entry.Session.ID, &entry.Session.UserID, &entry.Session.OrganizationID,
			&entry.Session.StartedAt, &entry.Session.EndedAt, &entry.Session.Note, &entry.Session.CreatedAt,
			&entry.User.ID, &entry.User.Email, &entry.User.Name,
			&entry.User.CreatedAt, &entry.User.UpdatedAt, &entry.User.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListSessionsInRange retrieves the user's sessions whose start falls within
// [from, to], ordered by start ascending.
func (r *WorkSessionsRepository) ListSessionsInRange(ctx context.Context, userID, orgID uuid.UUID, from, to time.Time) ([]*domain.WorkSession, error) {
	query := `
		SELECT id, user_id, organization_id, started_at, ended_at, note, created_at
		FROM work_sessions
		WHERE user_id = $1 AND organization_id = $2
			AND started_at >= $3 AND started_at <= $4
		ORDER BY started_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, orgID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		session := &domain.WorkSession{}
		err := rows.Scan(
			&session.ID, &session.UserID, &session.OrganizationID,
			&session.StartedAt, &session.EndedAt, &session.Note, &session.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
