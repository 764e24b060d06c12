package storage

import "github.com/pulsecheck/pulse/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Health entries
	// SaveHealthEntry inserts the entry or replaces the user's entry for the
	// same day, keeping the original ID and CreatedAt.
	SaveHealthEntry(models.HealthEntry) (models.HealthEntry, error)
	GetHealthEntry(userID, day string) (models.HealthEntry, error)
	// GetHealthEntries returns entries with startDay <= day <= endDay, oldest first.
	// Empty bounds are open.
	GetHealthEntries(userID, startDay, endDay string) ([]models.HealthEntry, error)
	// GetRecentHealthEntries returns the newest limit entries, oldest first.
	GetRecentHealthEntries(userID string, limit int) ([]models.HealthEntry, error)
	GetCheckinDays(userID string) ([]string, error)

	// Nudges
	GetNudgeRecord(userID string) (models.NudgeRecord, error)
	SaveNudgeRecord(models.NudgeRecord) error
	AddNudgeHistory(models.NudgeHistoryEntry) error
	// GetNudgeHistory returns the user's nudges oldest first.
	GetNudgeHistory(userID string) ([]models.NudgeHistoryEntry, error)
	UpdateNudgeHistory(models.NudgeHistoryEntry) error

	// Appointments
	AddAppointment(models.Appointment) error
	GetAppointment(id string) (models.Appointment, error)
	// GetAppointments returns the user's appointments ordered by day and time.
	GetAppointments(userID string) ([]models.Appointment, error)
	UpdateAppointment(models.Appointment) error

	// Clinics
	AddClinic(models.Clinic) error
	GetClinic(id string) (models.Clinic, error)
	GetAllClinics() ([]models.Clinic, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	// Migrate applies pending migrations and reports how many ran.
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion returns the applied and newest known versions.
	SchemaVersion() (current, latest int, err error)
}
