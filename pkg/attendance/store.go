package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// RosterEntry is an open session enriched with its owning user for display.
type RosterEntry struct {
	Session domain.WorkSession
	User    domain.User
}

// SessionStore persists work sessions. Implementations must enforce the
// open-session invariant atomically: CreateSession fails with
// domain.ErrAlreadyCheckedIn when an open session already exists for the
// (user, organization) pair, and CloseOpenSession fails with
// domain.ErrNotCheckedIn when none does. Two concurrent checkins for the same
// pair must never both succeed.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.WorkSession) error
	FindOpenSession(ctx context.Context, userID, orgID uuid.UUID) (*domain.WorkSession, error)
	CloseOpenSession(ctx context.Context, userID, orgID uuid.UUID, endedAt time.Time, note *string) (*domain.WorkSession, error)
	ListOpenSessions(ctx context.Context, orgID uuid.UUID) ([]RosterEntry, error)
	ListSessionsInRange(ctx context.Context, userID, orgID uuid.UUID, from, to time.Time) ([]*domain.WorkSession, error)
}
