// Package booking creates clinic appointments on the user's behalf once
// nudges have been dismissed often enough.
package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulse/internal/constants"
	"github.com/pulsecheck/pulse/internal/models"
)

// newID returns a time-ordered UUIDv7, falling back to a random UUID if the
// clock-based generator fails.
var newID = func() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// AttemptAutoBook returns a pending appointment at clinic when the user has
// at least AutoBookDismissThreshold dismissed nudges in history and holds the
// top discount tier. now is the evaluation time; the appointment is dated
// AutoBookLeadDays after now's calendar day in now's location.
//
// It has no side effects: persisting and announcing the booking is up to the
// caller.
func AttemptAutoBook(history []models.NudgeHistoryEntry, discountPercent int, clinic models.Clinic, now time.Time) (*models.Appointment, bool) {
	if discountPercent != constants.AutoBookRequiredDiscount {
		return nil, false
	}

	dismissed := 0
	for _, h := range history {
		if h.Dismissed {
			dismissed++
		}
	}
	if dismissed < constants.AutoBookDismissThreshold {
		return nil, false
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, constants.AutoBookLeadDays)

	return &models.Appointment{
		ID:              newID(),
		ClinicID:        clinic.ID,
		ClinicName:      clinic.Name,
		Day:             day.Format(constants.DateFormat),
		Time:            constants.AutoBookTime,
		Status:          models.AppointmentPending,
		CanModify:       true,
		NudgeCount:      dismissed,
		AutoBooked:      true,
		DiscountPercent: discountPercent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, true
}

// Nearest picks the closest clinic, breaking ties by name. ok is false when
// clinics is empty.
func Nearest(clinics []models.Clinic) (models.Clinic, bool) {
	if len(clinics) == 0 {
		return models.Clinic{}, false
	}
	best := clinics[0]
	for _, c := range clinics[1:] {
		if c.DistanceKm < best.DistanceKm || (c.DistanceKm == best.DistanceKm && c.Name < best.Name) {
			best = c
		}
	}
	return best, true
}
