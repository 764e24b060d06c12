package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

const appointmentColumns = `id, user_id, clinic_id, clinic_name, day, time, status, can_modify, nudge_count, auto_booked, discount_percent, created_at, updated_at`

func (s *Store) AddAppointment(a models.Appointment) error {
	_, err := s.db.Exec(`
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID, a.UserID, a.ClinicID, a.ClinicName, a.Day, a.Time, string(a.Status),
		a.CanModify, a.NudgeCount, a.AutoBooked, a.DiscountPercent, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}
	return a, nil
}

func (s *Store) GetAppointments(userID string) ([]models.Appointment, error) {
	rows, err := s.db.Query(`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 ORDER BY day, time`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAppointment(a models.Appointment) error {
	res, err := s.db.Exec(`
		UPDATE appointments SET
			clinic_id = $1, clinic_name = $2, day = $3, time = $4, status = $5,
			can_modify = $6, nudge_count = $7, auto_booked = $8, discount_percent = $9, updated_at = $10
		WHERE id = $11`,
		a.ClinicID, a.ClinicName, a.Day, a.Time, string(a.Status),
		a.CanModify, a.NudgeCount, a.AutoBooked, a.DiscountPercent, a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("appointment %s: %w", a.ID, storage.ErrNotFound)
	}
	return nil
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var (
		a      models.Appointment
		status string
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.ClinicID, &a.ClinicName, &a.Day, &a.Time, &status,
		&a.CanModify, &a.NudgeCount, &a.AutoBooked, &a.DiscountPercent,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return models.Appointment{}, err
	}
	a.Status = models.AppointmentStatus(status)
	return a, nil
}
