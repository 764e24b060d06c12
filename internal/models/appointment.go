package models

import "time"

// AppointmentStatus represents the status of a clinic appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment is a clinic visit, either booked by the user or created by the
// auto-booking engine (AutoBooked).
type Appointment struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	ClinicID        string            `json:"clinic_id"`
	ClinicName      string            `json:"clinic_name"`
	Day             string            `json:"day"`  // YYYY-MM-DD format
	Time            string            `json:"time"` // HH:MM format
	Status          AppointmentStatus `json:"status"`
	CanModify       bool              `json:"can_modify"`
	NudgeCount      int               `json:"nudge_count"`
	AutoBooked      bool              `json:"auto_booked"`
	DiscountPercent int               `json:"discount_percent"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// IsActive reports whether the appointment is still upcoming.
func (a Appointment) IsActive() bool {
	return a.Status == AppointmentPending || a.Status == AppointmentConfirmed
}
