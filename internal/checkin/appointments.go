package checkin

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulse/internal/booking"
	"github.com/pulsecheck/pulse/internal/logger"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/validation"
)

// Book creates a user-chosen appointment and resets the nudge escalation.
// An empty clinicID books the nearest clinic.
func (s *Service) Book(userID, clinicID, day, hhmm string) (models.Appointment, error) {
	if err := validation.ValidateSlot(day, hhmm).Err(); err != nil {
		return models.Appointment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clinic, err := s.clinic(clinicID)
	if err != nil {
		return models.Appointment{}, err
	}
	c, err := s.clock()
	if err != nil {
		return models.Appointment{}, err
	}
	_, tier, err := s.tier(userID, c.today)
	if err != nil {
		return models.Appointment{}, err
	}

	appt := models.Appointment{
		ID:              uuid.New().String(),
		UserID:          userID,
		ClinicID:        clinic.ID,
		ClinicName:      clinic.Name,
		Day:             day,
		Time:            hhmm,
		Status:          models.AppointmentConfirmed,
		CanModify:       true,
		DiscountPercent: tier.Percent,
		CreatedAt:       c.now,
		UpdatedAt:       c.now,
	}
	if rec, err := s.ledger.Get(userID); err == nil {
		appt.NudgeCount = rec.Count
	}
	if err := s.store.AddAppointment(appt); err != nil {
		return models.Appointment{}, err
	}
	if _, err := s.ledger.Reset(userID, c.today); err != nil {
		return models.Appointment{}, err
	}
	logger.Info("Appointment booked", "user", userID, "clinic", clinic.Name, "day", day)
	return appt, nil
}

func (s *Service) clinic(id string) (models.Clinic, error) {
	if id != "" {
		return s.store.GetClinic(id)
	}
	clinics, err := s.store.GetAllClinics()
	if err != nil {
		return models.Clinic{}, err
	}
	c, ok := booking.Nearest(clinics)
	if !ok {
		return models.Clinic{}, ErrNoClinic
	}
	return c, nil
}

// Confirm accepts a pending appointment.
func (s *Service) Confirm(userID, id string) (models.Appointment, error) {
	return s.transition(userID, id, false, func(a *models.Appointment) error {
		if a.Status != models.AppointmentPending {
			return fmt.Errorf("%w: %s is %s", ErrInvalidTransition, shortID(a.ID), a.Status)
		}
		a.Status = models.AppointmentConfirmed
		return nil
	})
}

// Cancel drops an upcoming appointment. The escalation is left as is.
func (s *Service) Cancel(userID, id string) (models.Appointment, error) {
	return s.transition(userID, id, false, func(a *models.Appointment) error {
		if !a.IsActive() {
			return fmt.Errorf("%w: %s is %s", ErrInvalidTransition, shortID(a.ID), a.Status)
		}
		a.Status = models.AppointmentCancelled
		a.CanModify = false
		return nil
	})
}

// Complete records that the checkup happened and resets the escalation as
// of the appointment's day.
func (s *Service) Complete(userID, id string) (models.Appointment, error) {
	return s.transition(userID, id, true, func(a *models.Appointment) error {
		if !a.IsActive() {
			return fmt.Errorf("%w: %s is %s", ErrInvalidTransition, shortID(a.ID), a.Status)
		}
		a.Status = models.AppointmentCompleted
		a.CanModify = false
		return nil
	})
}

// Reschedule moves an upcoming appointment that still allows changes.
func (s *Service) Reschedule(userID, id, day, hhmm string) (models.Appointment, error) {
	if err := validation.ValidateSlot(day, hhmm).Err(); err != nil {
		return models.Appointment{}, err
	}
	return s.transition(userID, id, false, func(a *models.Appointment) error {
		if !a.IsActive() {
			return fmt.Errorf("%w: %s is %s", ErrInvalidTransition, shortID(a.ID), a.Status)
		}
		if !a.CanModify {
			return ErrNotModifiable
		}
		a.Day, a.Time = day, hhmm
		return nil
	})
}

// Appointments lists the user's appointments by day.
func (s *Service) Appointments(userID string) ([]models.Appointment, error) {
	return s.store.GetAppointments(userID)
}

// transition loads the user's appointment, applies the change and saves it.
// With resetLedger the escalation is reset as of the appointment's day, or
// today when the appointment is completed ahead of it.
func (s *Service) transition(userID, id string, resetLedger bool, apply func(*models.Appointment) error) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.store.GetAppointment(id)
	if err != nil {
		return models.Appointment{}, err
	}
	if appt.UserID != userID {
		return models.Appointment{}, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
	}

	c, err := s.clock()
	if err != nil {
		return models.Appointment{}, err
	}
	if err := apply(&appt); err != nil {
		return models.Appointment{}, err
	}
	appt.UpdatedAt = c.now
	if err := s.store.UpdateAppointment(appt); err != nil {
		return models.Appointment{}, err
	}
	if resetLedger {
		if _, err := s.ledger.Reset(userID, min(appt.Day, c.today)); err != nil {
			return models.Appointment{}, err
		}
	}
	logger.Info("Appointment updated", "user", userID, "id", appt.ID, "status", appt.Status)
	return appt, nil
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
