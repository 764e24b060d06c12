// Package checkin runs the evaluation cycle behind every check-in: persist
// the entry, look for concerning patterns, escalate nudges and, at the top
// reward tier, book a checkup on the user's behalf.
package checkin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pulsecheck/pulse/internal/booking"
	"github.com/pulsecheck/pulse/internal/constants"
	"github.com/pulsecheck/pulse/internal/logger"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/notifier"
	"github.com/pulsecheck/pulse/internal/nudge"
	"github.com/pulsecheck/pulse/internal/rewards"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/utils"
	"github.com/pulsecheck/pulse/internal/validation"
)

var (
	ErrInvalidTransition = errors.New("appointment cannot move to that status")
	ErrNotModifiable     = errors.New("appointment can no longer be changed")
	ErrNoClinic          = errors.New("no clinic configured")
)

// Service is safe for concurrent use; cycles and appointment changes are
// serialized so the ledger never sees interleaved updates.
type Service struct {
	store    storage.Provider
	ledger   *nudge.Ledger
	notifier notifier.Notifier
	now      func() time.Time

	mu sync.Mutex
}

func NewService(store storage.Provider, n notifier.Notifier) *Service {
	if n == nil {
		n = notifier.Nop{}
	}
	return &Service{
		store:    store,
		ledger:   nudge.NewLedger(store),
		notifier: n,
		now:      time.Now,
	}
}

// SetClock replaces the time source for the service and its ledger.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
	s.ledger.SetClock(now)
}

// Result is the outcome of one evaluation cycle.
type Result struct {
	Entry       *models.HealthEntry `json:"entry,omitempty"`
	Decision    nudge.Decision      `json:"decision"`
	Record      models.NudgeRecord  `json:"record"`
	Streak      int                 `json:"streak"`
	Tier        rewards.Tier        `json:"tier"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// clock is "now" resolved against the user's timezone setting.
type clock struct {
	settings models.Settings
	now      time.Time
	today    string
}

func (s *Service) clock() (clock, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return clock{}, fmt.Errorf("failed to load settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return clock{}, err
	}
	now := s.now().In(loc)
	return clock{settings: settings, now: now, today: now.Format(constants.DateFormat)}, nil
}

// Submit validates and stores a check-in, then runs the evaluation cycle.
// A second check-in for the same day replaces the first.
func (s *Service) Submit(entry models.HealthEntry) (Result, error) {
	if err := validation.ValidateEntry(entry).Err(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.store.SaveHealthEntry(entry)
	if err != nil {
		return Result{}, err
	}
	logger.Info("Check-in saved", "user", saved.UserID, "day", saved.Day)

	res, err := s.cycle(saved.UserID)
	if err != nil {
		return Result{}, err
	}
	res.Entry = &saved
	return res, nil
}

// Evaluate runs the cycle on the stored history without adding an entry.
func (s *Service) Evaluate(userID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle(userID)
}

func (s *Service) cycle(userID string) (Result, error) {
	c, err := s.clock()
	if err != nil {
		return Result{}, err
	}

	window, err := s.store.GetRecentHealthEntries(userID, constants.NudgeWindowSize)
	if err != nil {
		return Result{}, err
	}
	rec, err := s.ledger.Get(userID)
	if err != nil {
		return Result{}, err
	}

	res := Result{Decision: nudge.Evaluate(window, rec.LastNudgeDate, c.today)}
	if res.Decision.ShouldNudge {
		if rec, err = s.ledger.Increment(userID, c.today, res.Decision); err != nil {
			return Result{}, err
		}
		s.notify(c.settings, notifier.KindNudge, res.Decision.Message)
	}
	res.Record = rec

	if res.Streak, res.Tier, err = s.tier(userID, c.today); err != nil {
		return Result{}, err
	}
	if res.Appointment, err = s.autoBook(userID, c, res.Tier); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Service) tier(userID, today string) (int, rewards.Tier, error) {
	days, err := s.store.GetCheckinDays(userID)
	if err != nil {
		return 0, rewards.Tier{}, err
	}
	streak := rewards.Streak(days, today)
	return streak, rewards.TierFor(streak), nil
}

// autoBook books at most one appointment per escalation: dismissals made
// before the last checkup or the last auto-booking do not count again, and
// nothing is booked while an appointment is still upcoming.
func (s *Service) autoBook(userID string, c clock, tier rewards.Tier) (*models.Appointment, error) {
	if !c.settings.AutoBookEnabled || tier.Percent != constants.AutoBookRequiredDiscount {
		return nil, nil
	}

	appts, err := s.store.GetAppointments(userID)
	if err != nil {
		return nil, err
	}
	for _, a := range appts {
		if a.IsActive() {
			return nil, nil
		}
	}

	eligible, err := s.escalation(userID, appts)
	if err != nil {
		return nil, err
	}
	if nudge.DismissedCount(eligible) < constants.AutoBookDismissThreshold {
		return nil, nil
	}

	clinics, err := s.store.GetAllClinics()
	if err != nil {
		return nil, err
	}
	clinic, ok := booking.Nearest(clinics)
	if !ok {
		logger.Warn("Auto-booking skipped, no clinic configured", "user", userID)
		return nil, nil
	}

	appt, ok := booking.AttemptAutoBook(eligible, tier.Percent, clinic, c.now)
	if !ok {
		return nil, nil
	}
	appt.UserID = userID
	if err := s.store.AddAppointment(*appt); err != nil {
		return nil, err
	}
	logger.Info("Auto-booked checkup", "user", userID, "clinic", clinic.Name, "day", appt.Day, "dismissed", appt.NudgeCount)
	s.notify(c.settings, notifier.KindBooking, fmt.Sprintf(
		"You've put off a checkup %d times, so we booked one at %s on %s at %s. It's free with your %s tier.",
		appt.NudgeCount, appt.ClinicName, appt.Day, appt.Time, tier.Name,
	))
	return appt, nil
}

// escalation returns the nudges of the current escalation: those issued
// after the last checkup and after the last auto-booking.
func (s *Service) escalation(userID string, appts []models.Appointment) ([]models.NudgeHistoryEntry, error) {
	var lastAuto time.Time
	for _, a := range appts {
		if a.AutoBooked && a.CreatedAt.After(lastAuto) {
			lastAuto = a.CreatedAt
		}
	}

	rec, err := s.ledger.Get(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.History(userID)
	if err != nil {
		return nil, err
	}
	eligible := history[:0:0]
	for _, h := range history {
		if rec.LastCheckupDate != nil && h.Day <= *rec.LastCheckupDate {
			continue
		}
		if !h.CreatedAt.After(lastAuto) {
			continue
		}
		eligible = append(eligible, h)
	}
	return eligible, nil
}

// Dismiss declines the user's latest nudge. Dismissing can cross the
// auto-booking threshold, so the booking step runs afterwards. ok is false
// when the user has never been nudged.
func (s *Service) Dismiss(userID string) (ok bool, appt *models.Appointment, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err = s.ledger.Dismiss(userID)
	if err != nil || !ok {
		return ok, nil, err
	}

	c, err := s.clock()
	if err != nil {
		return true, nil, err
	}
	_, tier, err := s.tier(userID, c.today)
	if err != nil {
		return true, nil, err
	}
	appt, err = s.autoBook(userID, c, tier)
	return true, appt, err
}

func (s *Service) notify(settings models.Settings, kind notifier.Kind, text string) {
	if !settings.NotificationsEnabled {
		return
	}
	if err := s.notifier.Notify(kind, text); err != nil {
		logger.Warn("Notification not delivered", "kind", kind, "error", err)
	}
}
