package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipRole represents a member's role within an organization.
type MembershipRole string

const (
	MembershipRoleOwner  MembershipRole = "owner"
	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleMember MembershipRole = "member"
)

// IsValid reports whether the role is a known one.
func (r MembershipRole) IsValid() bool {
	return r == MembershipRoleOwner || r == MembershipRoleAdmin || r == MembershipRoleMember
}

// CanManageMembers reports whether the role may add or update members.
func (r MembershipRole) CanManageMembers() bool {
	return r == MembershipRoleOwner || r == MembershipRoleAdmin
}

// MembershipStatus represents the state of a user's membership.
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusInvited   MembershipStatus = "invited"
	MembershipStatusSuspended MembershipStatus = "suspended"
	MembershipStatusLeft      MembershipStatus = "left"
)

// IsValid reports whether the status is a known one.
func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusInvited, MembershipStatusSuspended, MembershipStatusLeft:
		return true
	}
	return false
}

// Membership represents a user's membership in an organization.
// Unique per (user, organization).
type Membership struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           MembershipRole
	Status         MembershipStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// IsActive returns true if the membership counts for attendance and listing.
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive && m.DeletedAt == nil
}
