package models

import "time"

// ReasonCode identifies which pattern produced a nudge
type ReasonCode string

const (
	ReasonNone             ReasonCode = ""
	ReasonLowEnergy        ReasonCode = "low_energy"
	ReasonRecurringSymptom ReasonCode = "recurring_symptom"
	ReasonFever            ReasonCode = "fever"
	ReasonPoorSleep        ReasonCode = "poor_sleep"
)

// NudgeRecord is the per-user nudge escalation state.
// The zero value (with a UserID) is the "never nudged" state.
type NudgeRecord struct {
	UserID          string    `json:"user_id"`
	Count           int       `json:"count"`
	LastNudgeDate   *string   `json:"last_nudge_date,omitempty"`   // YYYY-MM-DD
	LastCheckupDate *string   `json:"last_checkup_date,omitempty"` // YYYY-MM-DD
	Dismissed       bool      `json:"dismissed"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NudgeHistoryEntry is one issued nudge. Entries are only ever appended, and
// Dismissed only ever goes from false to true.
type NudgeHistoryEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Day       string     `json:"day"`
	Reason    ReasonCode `json:"reason"`
	Message   string     `json:"message"`
	Dismissed bool       `json:"dismissed"`
	CreatedAt time.Time  `json:"created_at"`
}
