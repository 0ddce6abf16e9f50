package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a company or team whose members track attendance.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
