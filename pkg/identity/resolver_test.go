package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

type fakeIdentityStore struct {
	links map[string]*domain.ChatIdentity // platform:id -> link
}

func (f *fakeIdentityStore) GetByPlatformID(ctx context.Context, platform domain.ChatPlatform, platformUserID string) (*domain.ChatIdentity, error) {
	link, ok := f.links[string(platform)+":"+platformUserID]
	if !ok {
		return nil, domain.ErrUnknownIdentity
	}
	return link, nil
}

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeMembershipStore struct {
	orgs map[uuid.UUID][]*domain.Organization
}

func (f *fakeMembershipStore) ActiveOrganizations(ctx context.Context, userID uuid.UUID) ([]*domain.Organization, error) {
	return f.orgs[userID], nil
}

func newTestResolver() (*Resolver, *domain.User, []*domain.Organization) {
	user := &domain.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice"}
	orgs := []*domain.Organization{
		{ID: uuid.New(), Name: "First", Slug: "first"},
		{ID: uuid.New(), Name: "Second", Slug: "second"},
	}

	identities := &fakeIdentityStore{links: map[string]*domain.ChatIdentity{
		"slack:U123": {ID: uuid.New(), UserID: user.ID, Platform: domain.PlatformSlack, PlatformUserID: "U123"},
	}}
	users := &fakeUserStore{users: map[uuid.UUID]*domain.User{user.ID: user}}
	memberships := &fakeMembershipStore{orgs: map[uuid.UUID][]*domain.Organization{user.ID: orgs}}

	return NewResolver(identities, users, memberships), user, orgs
}

func TestResolveUser(t *testing.T) {
	resolver, user, _ := newTestResolver()

	got, err := resolver.ResolveUser(context.Background(), domain.PlatformSlack, "U123")
	if err != nil {
		t.Fatalf("ResolveUser() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ResolveUser() = %v, want %v", got.ID, user.ID)
	}
}

func TestResolveUser_UnknownIdentity(t *testing.T) {
	resolver, _, _ := newTestResolver()

	// Exact match only: the right id on the wrong platform does not resolve.
	_, err := resolver.ResolveUser(context.Background(), domain.PlatformChatwork, "U123")
	if !errors.Is(err, domain.ErrUnknownIdentity) {
		t.Errorf("ResolveUser() error = %v, want ErrUnknownIdentity", err)
	}

	_, err = resolver.ResolveUser(context.Background(), domain.PlatformSlack, "U999")
	if !errors.Is(err, domain.ErrUnknownIdentity) {
		t.Errorf("ResolveUser() error = %v, want ErrUnknownIdentity", err)
	}
}

func TestOrganizationsOf_PreservesMembershipOrder(t *testing.T) {
	resolver, user, orgs := newTestResolver()

	got, err := resolver.OrganizationsOf(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("OrganizationsOf() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("OrganizationsOf() returned %d orgs, want 2", len(got))
	}
	if got[0].ID != orgs[0].ID || got[1].ID != orgs[1].ID {
		t.Error("OrganizationsOf() should preserve membership creation order")
	}
}

func TestOrganizationsOf_Unprovisioned(t *testing.T) {
	resolver, _, _ := newTestResolver()

	got, err := resolver.OrganizationsOf(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("OrganizationsOf() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("OrganizationsOf() returned %d orgs for unprovisioned user, want 0", len(got))
	}
}
