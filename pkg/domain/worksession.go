package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkSession represents one work period for a user within an organization.
// A session with no end time is "open": the user is currently checked in.
// At most one open session may exist per (user, organization) at any time.
type WorkSession struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	StartedAt      time.Time
	EndedAt        *time.Time
	Note           *string
	CreatedAt      time.Time
}

// IsOpen returns true while the user has not checked out.
func (s *WorkSession) IsOpen() bool {
	return s.EndedAt == nil
}

// Hours returns the elapsed wall-clock duration in hours.
// Open sessions contribute zero; rounding is left to the presentation layer.
func (s *WorkSession) Hours() float64 {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt).Hours()
}
