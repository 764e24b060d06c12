package checkin

import (
	"github.com/pulsecheck/pulse/internal/constants"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/nudge"
	"github.com/pulsecheck/pulse/internal/rewards"
)

// Status is a read-only snapshot of a user's escalation and rewards.
type Status struct {
	Record       models.NudgeRecord         `json:"record"`
	History      []models.NudgeHistoryEntry `json:"history"`
	Dismissed    int                        `json:"dismissed"` // current escalation only
	Streak       int                        `json:"streak"`
	Tier         rewards.Tier               `json:"tier"`
	NextTier     *rewards.Tier              `json:"next_tier,omitempty"`
	DaysToNext   int                        `json:"days_to_next,omitempty"`
	Upcoming     *models.Appointment        `json:"upcoming,omitempty"`
	CheckedToday bool                       `json:"checked_in_today"`
}

// Status reports the user's state without changing it.
func (s *Service) Status(userID string) (Status, error) {
	c, err := s.clock()
	if err != nil {
		return Status{}, err
	}

	var st Status
	if st.Record, err = s.ledger.Get(userID); err != nil {
		return Status{}, err
	}
	if st.History, err = s.ledger.History(userID); err != nil {
		return Status{}, err
	}
	days, err := s.store.GetCheckinDays(userID)
	if err != nil {
		return Status{}, err
	}
	st.Streak = rewards.Streak(days, c.today)
	st.Tier = rewards.TierFor(st.Streak)
	if next, toGo, ok := rewards.NextTier(st.Streak); ok {
		st.NextTier, st.DaysToNext = &next, toGo
	}
	for _, d := range days {
		if d == c.today {
			st.CheckedToday = true
		}
	}

	appts, err := s.store.GetAppointments(userID)
	if err != nil {
		return Status{}, err
	}
	escalation, err := s.escalation(userID, appts)
	if err != nil {
		return Status{}, err
	}
	st.Dismissed = nudge.DismissedCount(escalation)
	for i := range appts {
		if appts[i].IsActive() {
			st.Upcoming = &appts[i]
			break
		}
	}
	return st, nil
}

// Entries returns the user's check-ins from the last days days, oldest first.
// days <= 0 returns everything.
func (s *Service) Entries(userID string, days int) ([]models.HealthEntry, error) {
	if days <= 0 {
		return s.store.GetHealthEntries(userID, "", "")
	}
	c, err := s.clock()
	if err != nil {
		return nil, err
	}
	start := c.now.AddDate(0, 0, -(days - 1)).Format(constants.DateFormat)
	return s.store.GetHealthEntries(userID, start, c.today)
}
