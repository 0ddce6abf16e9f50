package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// Report summarizes a user's sessions for one calendar month.
// TotalHours sums closed sessions only; open sessions appear in Sessions but
// contribute zero hours.
type Report struct {
	Year       int
	Month      time.Month
	TotalHours float64
	Sessions   []*domain.WorkSession
}

// MonthlyReport builds the attendance report for a calendar month. The month
// runs from the first instant of day 1 through the last instant of its final
// day, in the given location.
func (s *Service) MonthlyReport(ctx context.Context, userID, orgID uuid.UUID, year int, month time.Month, loc *time.Location) (*Report, error) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	sessions, err := s.sessions.ListSessionsInRange(ctx, userID, orgID, from, to)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, session := range sessions {
		total += session.Hours()
	}

	return &Report{
		Year:       year,
		Month:      month,
		TotalHours: total,
		Sessions:   sessions,
	}, nil
}
