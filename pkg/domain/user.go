package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered person.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// UserCredential stores password credentials separately from the user profile.
type UserCredential struct {
	UserID            uuid.UUID
	PasswordHash      string
	PasswordUpdatedAt time.Time
}

// ChatPlatform identifies a supported chat integration.
type ChatPlatform string

const (
	PlatformSlack    ChatPlatform = "slack"
	PlatformChatwork ChatPlatform = "chatwork"
)

// IsValid reports whether the platform is one we integrate with.
func (p ChatPlatform) IsValid() bool {
	return p == PlatformSlack || p == PlatformChatwork
}

// ChatIdentity links a platform-specific user id to a user.
// A platform user id is unique across all users for that platform.
type ChatIdentity struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Platform       ChatPlatform
	PlatformUserID string
	CreatedAt      time.Time
}
