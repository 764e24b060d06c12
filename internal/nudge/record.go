package nudge

import "github.com/pulsecheck/pulse/internal/models"

// The transitions below are the whole nudge state machine. They never mutate
// their input; callers persist the returned record.

// Increment records a newly issued nudge on day.
func Increment(rec models.NudgeRecord, day string) models.NudgeRecord {
	rec.Count++
	rec.LastNudgeDate = &day
	rec.Dismissed = false
	return rec
}

// Dismiss marks the latest nudge as declined by the user.
func Dismiss(rec models.NudgeRecord) models.NudgeRecord {
	rec.Dismissed = true
	return rec
}

// Reset clears the escalation after the user booked or completed a checkup.
func Reset(rec models.NudgeRecord, checkupDay string) models.NudgeRecord {
	rec.Count = 0
	rec.LastCheckupDate = &checkupDay
	rec.Dismissed = false
	return rec
}

// ZeroRecord is what Get reports for a user that was never nudged.
func ZeroRecord(userID string) models.NudgeRecord {
	return models.NudgeRecord{UserID: userID}
}
