package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

// TestStore_Integration runs against a real database.
// Example: POSTGRES_TEST_URL="postgres://pulse_user@localhost:5432/pulse_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	user := "it-" + uuid.New().String()

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		settings.Timezone = "UTC"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if updated.Timezone != "UTC" {
			t.Errorf("Expected timezone UTC, got %s", updated.Timezone)
		}
	})

	t.Run("HealthEntries", func(t *testing.T) {
		first, err := store.SaveHealthEntry(models.HealthEntry{
			UserID: user, Day: "2024-06-01", Energy: models.IntPtr(1), Mood: 2,
			Temperature: &models.Temperature{Fever: models.FeverYes, Reading: "100.4"},
		})
		if err != nil {
			t.Fatalf("Failed to save entry: %v", err)
		}
		second, err := store.SaveHealthEntry(models.HealthEntry{UserID: user, Day: "2024-06-01", Mood: 4})
		if err != nil {
			t.Fatalf("Failed to upsert entry: %v", err)
		}
		if second.ID != first.ID || second.Temperature != nil {
			t.Errorf("upsert = %+v", second)
		}
		recent, err := store.GetRecentHealthEntries(user, 7)
		if err != nil || len(recent) != 1 {
			t.Errorf("recent = %v, %v", recent, err)
		}
	})

	t.Run("Nudges", func(t *testing.T) {
		if _, err := store.GetNudgeRecord(user); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		day := "2024-06-01"
		if err := store.SaveNudgeRecord(models.NudgeRecord{UserID: user, Count: 1, LastNudgeDate: &day, UpdatedAt: time.Now()}); err != nil {
			t.Fatalf("Failed to save record: %v", err)
		}
		h := models.NudgeHistoryEntry{ID: uuid.New().String(), UserID: user, Day: day, Reason: models.ReasonFever, Message: "m", CreatedAt: time.Now()}
		if err := store.AddNudgeHistory(h); err != nil {
			t.Fatalf("Failed to add history: %v", err)
		}
		h.Dismissed = true
		if err := store.UpdateNudgeHistory(h); err != nil {
			t.Fatalf("Failed to update history: %v", err)
		}
		history, err := store.GetNudgeHistory(user)
		if err != nil || len(history) != 1 || !history[0].Dismissed {
			t.Errorf("history = %+v, %v", history, err)
		}
	})

	t.Run("Appointments", func(t *testing.T) {
		clinic := models.Clinic{ID: uuid.New().String(), Name: "Integration Clinic", DistanceKm: 1, CreatedAt: time.Now()}
		if err := store.AddClinic(clinic); err != nil {
			t.Fatalf("Failed to add clinic: %v", err)
		}
		appt := models.Appointment{
			ID: uuid.New().String(), UserID: user, ClinicID: clinic.ID, ClinicName: clinic.Name,
			Day: "2024-06-04", Time: "10:00", Status: models.AppointmentPending, CanModify: true,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		if err := store.AddAppointment(appt); err != nil {
			t.Fatalf("Failed to add appointment: %v", err)
		}
		appt.Status = models.AppointmentCancelled
		if err := store.UpdateAppointment(appt); err != nil {
			t.Fatalf("Failed to update appointment: %v", err)
		}
		got, err := store.GetAppointment(appt.ID)
		if err != nil || got.Status != models.AppointmentCancelled {
			t.Errorf("appointment = %+v, %v", got, err)
		}
	})
}
