// Package identity maps platform-specific chat handles to registered users
// and their organizations.
package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// IdentityStore looks up chat identity links.
type IdentityStore interface {
	GetByPlatformID(ctx context.Context, platform domain.ChatPlatform, platformUserID string) (*domain.ChatIdentity, error)
}

// UserStore looks up user records.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// MembershipStore lists a user's active organizations.
type MembershipStore interface {
	ActiveOrganizations(ctx context.Context, userID uuid.UUID) ([]*domain.Organization, error)
}

// Resolver resolves chat platform identities to users and organizations.
type Resolver struct {
	identities  IdentityStore
	users       UserStore
	memberships MembershipStore
}

// NewResolver creates a new resolver.
func NewResolver(identities IdentityStore, users UserStore, memberships MembershipStore) *Resolver {
	return &Resolver{
		identities:  identities,
		users:       users,
		memberships: memberships,
	}
}

// ResolveUser returns the user linked to the platform identity. Lookup is an
// exact match on (platform, platform user id); returns
// domain.ErrUnknownIdentity when no link exists.
func (r *Resolver) ResolveUser(ctx context.Context, platform domain.ChatPlatform, platformUserID string) (*domain.User, error) {
	link, err := r.identities.GetByPlatformID(ctx, platform, platformUserID)
	if err != nil {
		return nil, err
	}
	return r.users.GetByID(ctx, link.UserID)
}

// OrganizationsOf returns the user's active organizations ordered by
// membership creation. Callers treat the first entry as the implicit target
// for chat commands when the user belongs to several organizations; an empty
// result means the user is not provisioned for attendance.
func (r *Resolver) OrganizationsOf(ctx context.Context, userID uuid.UUID) ([]*domain.Organization, error) {
	return r.memberships.ActiveOrganizations(ctx, userID)
}
