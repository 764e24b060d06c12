// Package validation checks check-ins and appointment edits at the boundary,
// before anything reaches the pattern detector or the store.
package validation

import (
	"fmt"
	"strings"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/utils"
)

// Field names used in ValidationError.Field.
const (
	FieldUser        = "user_id"
	FieldDay         = "day"
	FieldEnergy      = "energy"
	FieldMood        = "mood"
	FieldSleepHours  = "sleep.hours"
	FieldSleepQual   = "sleep.quality"
	FieldSymptoms    = "symptoms"
	FieldIntensity   = "symptoms.intensity"
	FieldFever       = "temperature.fever"
	FieldReading     = "temperature.reading"
	FieldTime        = "time"
	FieldAppointment = "appointment"
)

// Plausible body temperature readings in °F; anything outside is a typo.
const (
	MinReadingF = 90.0
	MaxReadingF = 110.0
)

// ValidationError describes one problem with one field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the full list of problems found; it is itself an error.
type Errors []ValidationError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "invalid check-in: " + strings.Join(msgs, "; ")
}

// Err returns es as an error, or nil when it is empty.
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

func (es *Errors) add(field, format string, args ...any) {
	*es = append(*es, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateEntry checks a check-in. Optional cards may be nil; only what is
// present is checked.
func ValidateEntry(e models.HealthEntry) Errors {
	var errs Errors

	if strings.TrimSpace(e.UserID) == "" {
		errs.add(FieldUser, "is required")
	}
	if !utils.ValidateDateFormat(e.Day) {
		errs.add(FieldDay, "must be YYYY-MM-DD, got %q", e.Day)
	}
	if e.Energy != nil && (*e.Energy < 1 || *e.Energy > 5) {
		errs.add(FieldEnergy, "must be between 1 and 5, got %d", *e.Energy)
	}
	if e.Mood < 1 || e.Mood > 5 {
		errs.add(FieldMood, "must be between 1 and 5, got %d", e.Mood)
	}

	if s := e.Sleep; s != nil {
		if s.Hours != "" {
			if h, ok := s.HoursValue(); !ok || h < 0 || h > 24 {
				errs.add(FieldSleepHours, "must be a number of hours or one of <5, 5-6, 7-8, 9+, got %q", s.Hours)
			}
		}
		switch s.Quality {
		case "", models.SleepPoor, models.SleepOkay, models.SleepGood:
		default:
			errs.add(FieldSleepQual, "must be poor, okay or good, got %q", s.Quality)
		}
	}

	if s := e.Symptoms; s != nil {
		if s.None && (s.Location != "" || s.Type != "" || s.Intensity != 0) {
			errs.add(FieldSymptoms, "cannot report no symptoms and a symptom at once")
		}
		if s.Intensity < 0 || s.Intensity > 10 {
			errs.add(FieldIntensity, "must be between 1 and 10, got %d", s.Intensity)
		}
	}

	if t := e.Temperature; t != nil {
		switch t.Fever {
		case "", models.FeverNo, models.FeverUnsure, models.FeverYes:
		default:
			errs.add(FieldFever, "must be no, unsure or yes, got %q", t.Fever)
		}
		if t.Reading != "" {
			r, ok := t.ReadingValue()
			if !ok {
				errs.add(FieldReading, "must be a number, got %q", t.Reading)
			} else if r < MinReadingF || r > MaxReadingF {
				errs.add(FieldReading, "%.1f°F is outside %.0f-%.0f", r, MinReadingF, MaxReadingF)
			}
		}
	}

	return errs
}

// ValidateSlot checks an appointment day and time.
func ValidateSlot(day, hhmm string) Errors {
	var errs Errors
	if !utils.ValidateDateFormat(day) {
		errs.add(FieldDay, "must be YYYY-MM-DD, got %q", day)
	}
	if !utils.ValidateTimeFormat(hhmm) {
		errs.add(FieldTime, "must be HH:MM, got %q", hhmm)
	}
	return errs
}
