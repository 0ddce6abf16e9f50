package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vacation represents a day off for a user within an organization.
// Calendar synchronization is not implemented yet; the chat command replies
// with a stub until it is.
type Vacation struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Date           time.Time
	Reason         *string
	CreatedAt      time.Time
}
