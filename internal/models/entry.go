package models

import (
	"strconv"
	"strings"
	"time"
)

// SleepQuality is the self-reported quality of the previous night's sleep
type SleepQuality string

// FeverStatus is the self-reported fever answer from the check-in form
type FeverStatus string

const (
	SleepPoor SleepQuality = "poor"
	SleepOkay SleepQuality = "okay"
	SleepGood SleepQuality = "good"

	FeverNo     FeverStatus = "no"
	FeverUnsure FeverStatus = "unsure"
	FeverYes    FeverStatus = "yes"
)

// sleepBuckets maps the check-in form's hour buckets to a representative value.
var sleepBuckets = map[string]float64{
	"<5":  4,
	"5-6": 5.5,
	"7-8": 7.5,
	"9+":  9,
}

// Sleep holds the sleep card of a check-in
type Sleep struct {
	Hours   string       `json:"hours,omitempty"` // numeric ("6.5") or a form bucket ("<5", "5-6", "7-8", "9+")
	Quality SleepQuality `json:"quality,omitempty"`
}

// HoursValue resolves Hours to a number. The second return is false when
// Hours is empty or unrecognised.
func (s Sleep) HoursValue() (float64, bool) {
	h := strings.TrimSpace(s.Hours)
	if h == "" {
		return 0, false
	}
	if v, ok := sleepBuckets[h]; ok {
		return v, true
	}
	v, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Symptoms holds the symptom card of a check-in
type Symptoms struct {
	None      bool   `json:"none"`
	Location  string `json:"location,omitempty"`
	Type      string `json:"type,omitempty"`
	Intensity int    `json:"intensity,omitempty"` // 1-10, 0 when not given
}

// Reported is true when the user reported an actual symptom with a location.
func (s Symptoms) Reported() bool {
	return !s.None && strings.TrimSpace(s.Location) != ""
}

// Temperature holds the fever card of a check-in
type Temperature struct {
	Fever   FeverStatus `json:"fever,omitempty"`
	Reading string      `json:"reading,omitempty"` // degrees Fahrenheit, optional
}

// ReadingValue parses Reading. The second return is false when no usable
// reading was given.
func (t Temperature) ReadingValue() (float64, bool) {
	r := strings.TrimSpace(t.Reading)
	if r == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(r, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Lifestyle is informational only; none of it feeds pattern detection.
type Lifestyle struct {
	Water    string `json:"water,omitempty"`
	Exercise string `json:"exercise,omitempty"`
	Alcohol  string `json:"alcohol,omitempty"`
}

// HealthEntry is one user's check-in for one calendar day
type HealthEntry struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Day         string       `json:"day"` // YYYY-MM-DD format, unique per user
	Energy      *int         `json:"energy,omitempty"`
	Mood        int          `json:"mood"`
	Sleep       *Sleep       `json:"sleep,omitempty"`
	Symptoms    *Symptoms    `json:"symptoms,omitempty"`
	Temperature *Temperature `json:"temperature,omitempty"`
	Lifestyle   *Lifestyle   `json:"lifestyle,omitempty"`
	Note        string       `json:"note,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IntPtr is a small helper for building entries with an optional energy value.
func IntPtr(v int) *int {
	return &v
}
