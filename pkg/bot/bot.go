// Package bot dispatches normalized chat commands against the attendance
// service and formats plain-text replies. Both channel adapters (Slack and
// Chatwork) are thin shells around one shared Bot so the state-machine logic
// and its invariants live in a single place.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/attendance"
	"github.com/shiftlog/shiftlog/pkg/command"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// Resolver maps chat identities to users and organizations.
type Resolver interface {
	ResolveUser(ctx context.Context, platform domain.ChatPlatform, platformUserID string) (*domain.User, error)
	OrganizationsOf(ctx context.Context, userID uuid.UUID) ([]*domain.Organization, error)
}

// Bot executes chat commands for any channel adapter.
type Bot struct {
	resolver   Resolver
	attendance *attendance.Service
	location   *time.Location
	logger     *slog.Logger
}

// New creates a bot. Reply timestamps are formatted in loc.
func New(resolver Resolver, svc *attendance.Service, loc *time.Location, logger *slog.Logger) *Bot {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		resolver:   resolver,
		attendance: svc,
		location:   loc,
		logger:     logger,
	}
}

// HandleMessage processes one inbound message and returns the reply text.
// An empty reply means the message was not a command and should be ignored.
// Business-rule violations and store failures are rendered as reply text;
// the transport always acknowledges the event.
func (b *Bot) HandleMessage(ctx context.Context, platform domain.ChatPlatform, platformUserID, text string) string {
	cmd, ok := command.Parse(text)
	if !ok {
		return ""
	}

	user, err := b.resolver.ResolveUser(ctx, platform, platformUserID)
	if errors.Is(err, domain.ErrUnknownIdentity) || errors.Is(err, domain.ErrUserNotFound) {
		return MsgRegistrationRequired
	}
	if err != nil {
		b.logger.Error("identity resolution failed", "platform", platform, "error", err)
		return MsgSomethingWrong
	}

	orgs, err := b.resolver.OrganizationsOf(ctx, user.ID)
	if err != nil {
		b.logger.Error("organization lookup failed", "user_id", user.ID, "error", err)
		return MsgSomethingWrong
	}
	if len(orgs) == 0 {
		return MsgNoOrganization
	}
	// When the user belongs to several organizations the first one, ordered
	// by membership creation, is the implicit target.
	org := orgs[0]

	switch cmd.Name {
	case command.CheckIn:
		return b.checkIn(ctx, user, org, cmd)
	case command.CheckOut:
		return b.checkOut(ctx, user, org, cmd)
	case command.Status:
		return b.status(ctx, org)
	case command.Vacation:
		return MsgVacationComingSoon
	}
	return ""
}

func (b *Bot) checkIn(ctx context.Context, user *domain.User, org *domain.Organization, cmd *command.Command) string {
	session, err := b.attendance.CheckIn(ctx, user.ID, org.ID, noteParam(cmd))
	if errors.Is(err, domain.ErrAlreadyCheckedIn) {
		return MsgAlreadyCheckedIn
	}
	if err != nil {
		b.logger.Error("checkin failed", "user_id", user.ID, "org_id", org.ID, "error", err)
		return MsgSomethingWrong
	}
	return b.formatCheckIn(session)
}

func (b *Bot) checkOut(ctx context.Context, user *domain.User, org *domain.Organization, cmd *command.Command) string {
	session, err := b.attendance.CheckOut(ctx, user.ID, org.ID, noteParam(cmd))
	if errors.Is(err, domain.ErrNotCheckedIn) {
		return MsgNotCheckedIn
	}
	if err != nil {
		b.logger.Error("checkout failed", "user_id", user.ID, "org_id", org.ID, "error", err)
		return MsgSomethingWrong
	}
	return b.formatCheckOut(session)
}

func (b *Bot) status(ctx context.Context, org *domain.Organization) string {
	roster, err := b.attendance.Roster(ctx, org.ID)
	if err != nil {
		b.logger.Error("roster lookup failed", "org_id", org.ID, "error", err)
		return MsgSomethingWrong
	}
	return b.formatRoster(org, roster)
}

func noteParam(cmd *command.Command) *string {
	if !cmd.HasParam() {
		return nil
	}
	note := cmd.Param
	return &note
}
