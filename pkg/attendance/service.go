package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// Service owns the checkin/checkout state machine. It holds no session state
// of its own: every operation reads current state through the store, and the
// open-session invariant is enforced by the store's atomic operations.
type Service struct {
	sessions SessionStore
	now      func() time.Time
}

// NewService creates a new attendance service.
func NewService(sessions SessionStore) *Service {
	return &Service{
		sessions: sessions,
		now:      time.Now,
	}
}

// NewServiceWithClock creates a service with an injected clock, for tests.
func NewServiceWithClock(sessions SessionStore, now func() time.Time) *Service {
	return &Service{
		sessions: sessions,
		now:      now,
	}
}

// CheckIn opens a new work session for the user in the organization.
// Returns domain.ErrAlreadyCheckedIn if one is already open.
func (s *Service) CheckIn(ctx context.Context, userID, orgID uuid.UUID, note *string) (*domain.WorkSession, error) {
	now := s.now()
	session := &domain.WorkSession{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		StartedAt:      now,
		Note:           note,
		CreatedAt:      now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CheckOut closes the user's open session in the organization. A supplied
// note replaces the checkin note; a nil note keeps it. Returns
// domain.ErrNotCheckedIn if no session is open.
func (s *Service) CheckOut(ctx context.Context, userID, orgID uuid.UUID, note *string) (*domain.WorkSession, error) {
	return s.sessions.CloseOpenSession(ctx, userID, orgID, s.now(), note)
}

// ActiveSession returns the user's open session in the organization, or nil
// if the user is not checked in.
func (s *Service) ActiveSession(ctx context.Context, userID, orgID uuid.UUID) (*domain.WorkSession, error) {
	session, err := s.sessions.FindOpenSession(ctx, userID, orgID)
	if errors.Is(err, domain.ErrNotCheckedIn) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Roster returns every currently open session in the organization, each with
// its owning user.
func (s *Service) Roster(ctx context.Context, orgID uuid.UUID) ([]RosterEntry, error) {
	return s.sessions.ListOpenSessions(ctx, orgID)
}

// SessionsInRange returns the user's sessions whose start falls within
// [from, to], ordered by start ascending.
func (s *Service) SessionsInRange(ctx context.Context, userID, orgID uuid.UUID, from, to time.Time) ([]*domain.WorkSession, error) {
	if to.Before(from) {
		return nil, errors.New("range end precedes range start")
	}
	return s.sessions.ListSessionsInRange(ctx, userID, orgID, from, to)
}
