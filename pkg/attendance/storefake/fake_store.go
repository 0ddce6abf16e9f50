// Package storefake provides an in-memory SessionStore for tests.
package storefake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/attendance"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

var _ attendance.SessionStore = (*FakeSessionStore)(nil)

// FakeSessionStore keeps sessions in memory behind a mutex, mirroring the
// atomicity the Postgres store gets from its partial unique index.
type FakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.WorkSession
	users    map[uuid.UUID]*domain.User

	// Err, when set, is returned by every operation. Simulates an
	// unavailable store.
	Err error
}

// NewFakeSessionStore creates an empty fake store.
func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		sessions: make(map[uuid.UUID]*domain.WorkSession),
		users:    make(map[uuid.UUID]*domain.User),
	}
}

// AddUser registers a user so ListOpenSessions can enrich roster entries.
func (f *FakeSessionStore) AddUser(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *FakeSessionStore) CreateSession(ctx context.Context, session *domain.WorkSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	for _, existing := range f.sessions {
		if existing.UserID == session.UserID &&
			existing.OrganizationID == session.OrganizationID &&
			existing.EndedAt == nil {
			return domain.ErrAlreadyCheckedIn
		}
	}

	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *FakeSessionStore) FindOpenSession(ctx context.Context, userID, orgID uuid.UUID) (*domain.WorkSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	for _, session := range f.sessions {
		if session.UserID == userID && session.OrganizationID == orgID && session.EndedAt == nil {
			copied := *session
			return &copied, nil
		}
	}
	return nil, domain.ErrNotCheckedIn
}

func (f *FakeSessionStore) CloseOpenSession(ctx context.Context, userID, orgID uuid.UUID, endedAt time.Time, note *string) (*domain.WorkSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	for _, session := range f.sessions {
		if session.UserID == userID && session.OrganizationID == orgID && session.EndedAt == nil {
			ended := endedAt
			session.EndedAt = &ended
			if note != nil {
				session.Note = note
			}
			copied := *session
			return &copied, nil
		}
	}
	return nil, domain.ErrNotCheckedIn
}

func (f *FakeSessionStore) ListOpenSessions(ctx context.Context, orgID uuid.UUID) ([]attendance.RosterEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	var entries []attendance.RosterEntry
	for _, session := range f.sessions {
		if session.OrganizationID != orgID || session.EndedAt != nil {
			continue
		}
		entry := attendance.RosterEntry{Session: *session}
		if user, ok := f.users[session.UserID]; ok {
			entry.User = *user
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Session.StartedAt.Before(entries[j].Session.StartedAt)
	})
	return entries, nil
}

func (f *FakeSessionStore) ListSessionsInRange(ctx context.Context, userID, orgID uuid.UUID, from, to time.Time) ([]*domain.WorkSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	var sessions []*domain.WorkSession
	for _, session := range f.sessions {
		if session.UserID != userID || session.OrganizationID != orgID {
			continue
		}
		if session.StartedAt.Before(from) || session.StartedAt.After(to) {
			continue
		}
		copied := *session
		sessions = append(sessions, &copied)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions, nil
}
