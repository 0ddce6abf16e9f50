package bot

import (
	"fmt"
	"strings"

	"github.com/shiftlog/shiftlog/pkg/attendance"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// Fixed reply texts. The wording is presentation detail; the categories are
// the contract shared by every channel adapter.
const (
	MsgRegistrationRequired = "Your chat account isn't linked to a user yet. Ask an administrator to register you."
	MsgNoOrganization       = "You don't belong to an organization yet, so attendance can't be recorded."
	MsgAlreadyCheckedIn     = "You're already checked in. Check out first if you want to start over."
	MsgNotCheckedIn         = "You're not checked in."
	MsgVacationComingSoon   = "Vacation booking isn't available yet. Coming soon!"
	MsgSomethingWrong       = "Something went wrong. Please try again in a moment."
)

const clockFormat = "15:04"

func (b *Bot) formatCheckIn(session *domain.WorkSession) string {
	reply := fmt.Sprintf("Checked in at %s.", session.StartedAt.In(b.location).Format(clockFormat))
	if session.Note != nil {
		reply += fmt.Sprintf(" Note: %s", *session.Note)
	}
	return reply
}

func (b *Bot) formatCheckOut(session *domain.WorkSession) string {
	reply := fmt.Sprintf("Checked out at %s. You worked %.2f hours.",
		session.EndedAt.In(b.location).Format(clockFormat), session.Hours())
	if session.Note != nil {
		reply += fmt.Sprintf(" Note: %s", *session.Note)
	}
	return reply
}

func (b *Bot) formatRoster(org *domain.Organization, roster []attendance.RosterEntry) string {
	if len(roster) == 0 {
		return fmt.Sprintf("No one is working at %s right now.", org.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Working at %s now:", org.Name)
	for _, entry := range roster {
		name := entry.User.Name
		if name == "" {
			name = entry.User.Email
		}
		fmt.Fprintf(&sb, "\n- %s since %s", name, entry.Session.StartedAt.In(b.location).Format(clockFormat))
		if entry.Session.Note != nil {
			fmt.Fprintf(&sb, " (%s)", *entry.Session.Note)
		}
	}
	return sb.String()
}
