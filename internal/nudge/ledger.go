package nudge

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulse/internal/logger"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

// Store is the persistence the ledger needs.
type Store interface {
	GetNudgeRecord(userID string) (models.NudgeRecord, error)
	SaveNudgeRecord(models.NudgeRecord) error
	AddNudgeHistory(models.NudgeHistoryEntry) error
	GetNudgeHistory(userID string) ([]models.NudgeHistoryEntry, error)
	UpdateNudgeHistory(models.NudgeHistoryEntry) error
}

// Ledger persists nudge records and their history, one record per user.
type Ledger struct {
	store Store
	now   func() time.Time
}

// NewLedger creates a Ledger backed by store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// SetClock replaces the time source used for UpdatedAt and CreatedAt stamps.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// Get returns the user's record, or the zero record if the user was never nudged.
func (l *Ledger) Get(userID string) (models.NudgeRecord, error) {
	rec, err := l.store.GetNudgeRecord(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ZeroRecord(userID), nil
		}
		return models.NudgeRecord{}, fmt.Errorf("failed to get nudge record: %w", err)
	}
	return rec, nil
}

// Increment records a nudge issued on day for decision, creating the record if needed.
func (l *Ledger) Increment(userID, day string, decision Decision) (models.NudgeRecord, error) {
	rec, err := l.Get(userID)
	if err != nil {
		return models.NudgeRecord{}, err
	}

	now := l.now()
	rec = Increment(rec, day)
	rec.UpdatedAt = now
	if err := l.store.SaveNudgeRecord(rec); err != nil {
		return models.NudgeRecord{}, fmt.Errorf("failed to save nudge record: %w", err)
	}

	entry := models.NudgeHistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Day:       day,
		Reason:    decision.Reason,
		Message:   decision.Message,
		CreatedAt: now,
	}
	if err := l.store.AddNudgeHistory(entry); err != nil {
		return models.NudgeRecord{}, fmt.Errorf("failed to append nudge history: %w", err)
	}

	logger.Debug("Nudge issued", "user", userID, "reason", decision.Reason, "count", rec.Count)
	return rec, nil
}

// Dismiss marks the user's latest nudge as dismissed. It returns false, and
// creates nothing, when the user has no record yet. Dismissing an already
// dismissed nudge changes nothing.
func (l *Ledger) Dismiss(userID string) (bool, error) {
	rec, err := l.store.GetNudgeRecord(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get nudge record: %w", err)
	}
	if rec.Dismissed {
		return true, nil
	}

	rec = Dismiss(rec)
	rec.UpdatedAt = l.now()
	if err := l.store.SaveNudgeRecord(rec); err != nil {
		return false, fmt.Errorf("failed to save nudge record: %w", err)
	}

	history, err := l.store.GetNudgeHistory(userID)
	if err != nil {
		return false, fmt.Errorf("failed to get nudge history: %w", err)
	}
	// history is oldest first; only the newest nudge is ever declined
	if n := len(history); n > 0 && !history[n-1].Dismissed {
		latest := history[n-1]
		latest.Dismissed = true
		if err := l.store.UpdateNudgeHistory(latest); err != nil {
			return false, fmt.Errorf("failed to update nudge history: %w", err)
		}
	}

	logger.Debug("Nudge dismissed", "user", userID, "count", rec.Count)
	return true, nil
}

// Reset zeroes the user's escalation after a checkup on checkupDay. It is a
// no-op returning false when the user has no record.
func (l *Ledger) Reset(userID, checkupDay string) (bool, error) {
	rec, err := l.store.GetNudgeRecord(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get nudge record: %w", err)
	}

	rec = Reset(rec, checkupDay)
	rec.UpdatedAt = l.now()
	if err := l.store.SaveNudgeRecord(rec); err != nil {
		return false, fmt.Errorf("failed to save nudge record: %w", err)
	}
	logger.Debug("Nudge ledger reset", "user", userID, "checkup", checkupDay)
	return true, nil
}

// History returns every nudge issued to the user, oldest first.
func (l *Ledger) History(userID string) ([]models.NudgeHistoryEntry, error) {
	history, err := l.store.GetNudgeHistory(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get nudge history: %w", err)
	}
	return history, nil
}

// DismissedCount counts dismissed entries in history.
func DismissedCount(history []models.NudgeHistoryEntry) int {
	n := 0
	for _, h := range history {
		if h.Dismissed {
			n++
		}
	}
	return n
}
