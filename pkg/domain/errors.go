package domain

import "errors"

// Attendance errors
var (
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrNotCheckedIn     = errors.New("not checked in")
)

// Identity and membership errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnknownIdentity       = errors.New("chat identity not linked to a user")
	ErrIdentityAlreadyLinked = errors.New("chat identity already linked to another user")
	ErrNoActiveMembership    = errors.New("user has no active organization membership")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrSlugAlreadyExists     = errors.New("organization slug already exists")
	ErrMembershipNotFound    = errors.New("membership not found")
	ErrMembershipExists      = errors.New("membership already exists")
	ErrNotAuthorized         = errors.New("not authorized")
)
