package checkin

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/storage/sqlite"
	"github.com/pulsecheck/pulse/internal/validation"
)

func TestBook_ResetsLedger(t *testing.T) {
	f := setup(t)
	f.nudgeAndDismiss(t)

	appt, err := f.svc.Book(user, f.clinic.ID, "2024-06-25", "14:15")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if appt.Status != models.AppointmentConfirmed || appt.AutoBooked || appt.NudgeCount != 1 {
		t.Errorf("appointment = %+v", appt)
	}

	rec, err := f.svc.ledger.Get(user)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Count != 0 || rec.Dismissed || rec.LastCheckupDate == nil || *rec.LastCheckupDate != "2024-06-20" {
		t.Errorf("record after booking = %+v", rec)
	}
}

func TestBook_Validation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Book(user, f.clinic.ID, "2024-06-25", "2pm")
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := f.svc.Book(user, "unknown", "2024-06-25", "14:00"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown clinic, got %v", err)
	}
}

func TestBook_DefaultsToNearestClinic(t *testing.T) {
	f := setup(t)
	far := models.Clinic{ID: "clinic-far", Name: "Far Clinic", DistanceKm: 9, CreatedAt: f.clock.now()}
	if err := f.store.AddClinic(far); err != nil {
		t.Fatal(err)
	}

	appt, err := f.svc.Book(user, "", "2024-06-25", "09:30")
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if appt.ClinicID != f.clinic.ID {
		t.Errorf("booked clinic %s, want nearest %s", appt.ClinicID, f.clinic.ID)
	}

	empty := sqlite.NewStore(filepath.Join(t.TempDir(), "empty.db"))
	if err := empty.Init(); err != nil {
		t.Fatal(err)
	}
	defer empty.Close()
	if _, err := NewService(empty, nil).Book(user, "", "2024-06-25", "09:30"); !errors.Is(err, ErrNoClinic) {
		t.Errorf("expected ErrNoClinic, got %v", err)
	}
}

func pendingAppointment(t *testing.T, f *fixture, canModify bool) models.Appointment {
	t.Helper()
	appt := models.Appointment{
		ID: "appt-1", UserID: user, ClinicID: f.clinic.ID, ClinicName: f.clinic.Name,
		Day: "2024-06-23", Time: "10:00", Status: models.AppointmentPending,
		CanModify: canModify, AutoBooked: true, CreatedAt: f.clock.now(), UpdatedAt: f.clock.now(),
	}
	if err := f.store.AddAppointment(appt); err != nil {
		t.Fatalf("AddAppointment failed: %v", err)
	}
	return appt
}

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		name    string
		run     func(f *fixture) (models.Appointment, error)
		want    models.AppointmentStatus
		wantErr error
	}{
		{"confirm pending", func(f *fixture) (models.Appointment, error) { return f.svc.Confirm(user, "appt-1") }, models.AppointmentConfirmed, nil},
		{"cancel pending", func(f *fixture) (models.Appointment, error) { return f.svc.Cancel(user, "appt-1") }, models.AppointmentCancelled, nil},
		{"complete pending", func(f *fixture) (models.Appointment, error) { return f.svc.Complete(user, "appt-1") }, models.AppointmentCompleted, nil},
		{"other user", func(f *fixture) (models.Appointment, error) { return f.svc.Confirm("someone-else", "appt-1") }, "", storage.ErrNotFound},
		{"confirm twice", func(f *fixture) (models.Appointment, error) {
			if _, err := f.svc.Confirm(user, "appt-1"); err != nil {
				return models.Appointment{}, err
			}
			return f.svc.Confirm(user, "appt-1")
		}, "", ErrInvalidTransition},
		{"complete cancelled", func(f *fixture) (models.Appointment, error) {
			if _, err := f.svc.Cancel(user, "appt-1"); err != nil {
				return models.Appointment{}, err
			}
			return f.svc.Complete(user, "appt-1")
		}, "", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			pendingAppointment(t, f, true)

			got, err := tt.run(f)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != tt.want {
				t.Errorf("status = %s, want %s", got.Status, tt.want)
			}
			stored, _ := f.store.GetAppointment("appt-1")
			if stored.Status != tt.want {
				t.Errorf("stored status = %s, want %s", stored.Status, tt.want)
			}
		})
	}
}

func TestCancel_KeepsLedger(t *testing.T) {
	f := setup(t)
	f.nudgeAndDismiss(t)
	pendingAppointment(t, f, true)

	if _, err := f.svc.Cancel(user, "appt-1"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	rec, _ := f.svc.ledger.Get(user)
	if rec.Count != 1 || !rec.Dismissed {
		t.Errorf("cancel changed the ledger: %+v", rec)
	}
}

func TestComplete_ResetsLedgerToCheckupDay(t *testing.T) {
	tests := []struct {
		name    string
		advance int
		want    string
	}{
		{"ahead of the appointment", 0, "2024-06-20"},
		{"on the appointment day", 3, "2024-06-23"},
		{"after the appointment day", 5, "2024-06-23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.nudgeAndDismiss(t)
			pendingAppointment(t, f, true)
			f.clock.advance(tt.advance)

			if _, err := f.svc.Complete(user, "appt-1"); err != nil {
				t.Fatalf("Complete failed: %v", err)
			}
			rec, _ := f.svc.ledger.Get(user)
			if rec.Count != 0 || rec.Dismissed || rec.LastCheckupDate == nil || *rec.LastCheckupDate != tt.want {
				t.Errorf("record after completion = %+v, want checkup %s", rec, tt.want)
			}
		})
	}
}

func TestComplete_EarlyKeepsLaterNudges(t *testing.T) {
	f := setup(t)
	pendingAppointment(t, f, true)
	if _, err := f.svc.Complete(user, "appt-1"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// the next day is still before the appointment's date
	f.clock.advance(1)
	f.nudgeAndDismiss(t)

	st, err := f.svc.Status(user)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Dismissed != 1 {
		t.Errorf("dismissed = %d, want 1", st.Dismissed)
	}
}

func TestReschedule(t *testing.T) {
	f := setup(t)
	pendingAppointment(t, f, true)

	got, err := f.svc.Reschedule(user, "appt-1", "2024-06-24", "11:30")
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if got.Day != "2024-06-24" || got.Time != "11:30" || got.Status != models.AppointmentPending {
		t.Errorf("rescheduled = %+v", got)
	}

	if _, err := f.svc.Reschedule(user, "appt-1", "June 24", "11:30"); err == nil {
		t.Error("expected a validation error for a bad day")
	}
}

func TestReschedule_Locked(t *testing.T) {
	f := setup(t)
	pendingAppointment(t, f, false)

	if _, err := f.svc.Reschedule(user, "appt-1", "2024-06-24", "11:30"); !errors.Is(err, ErrNotModifiable) {
		t.Errorf("expected ErrNotModifiable, got %v", err)
	}
}
