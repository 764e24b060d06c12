package appointments

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulsecheck/pulse/internal/checkin"
	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return cli.NewContext(store, nil)
}

func addClinics(t *testing.T, ctx *cli.Context) {
	t.Helper()
	for _, c := range []ClinicAddCmd{
		{Name: "Far Clinic", Distance: 12},
		{Name: "Near Clinic", Address: "1 Main St", Distance: 0.8},
	} {
		if err := c.Run(ctx); err != nil {
			t.Fatalf("clinic add failed: %v", err)
		}
	}
}

func TestClinicCommands(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&ClinicListCmd{}).Run(ctx); err != nil {
		t.Errorf("list on empty db failed: %v", err)
	}
	addClinics(t, ctx)
	if err := (&ClinicAddCmd{Name: "  "}).Run(ctx); err == nil {
		t.Error("expected an error for a blank name")
	}
	if err := (&ClinicAddCmd{Name: "Odd", Distance: -1}).Run(ctx); err == nil {
		t.Error("expected an error for a negative distance")
	}

	clinics, err := ctx.Store.GetAllClinics()
	if err != nil || len(clinics) != 2 {
		t.Fatalf("clinics = %v, %v", clinics, err)
	}
	if err := (&ClinicListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestResolveClinic(t *testing.T) {
	ctx := setupTestDB(t)
	if _, err := resolveClinic(ctx, ""); !errors.Is(err, checkin.ErrNoClinic) {
		t.Errorf("expected ErrNoClinic with no clinics, got %v", err)
	}
	addClinics(t, ctx)

	nearest, err := resolveClinic(ctx, "")
	if err != nil || nearest.Name != "Near Clinic" {
		t.Errorf("default clinic = %+v, %v", nearest, err)
	}
	byName, err := resolveClinic(ctx, "far clinic")
	if err != nil || byName.Name != "Far Clinic" {
		t.Errorf("by name = %+v, %v", byName, err)
	}
	byID, err := resolveClinic(ctx, byName.ID[:8])
	if err != nil || byID.ID != byName.ID {
		t.Errorf("by prefix = %+v, %v", byID, err)
	}
	if _, err := resolveClinic(ctx, "nowhere"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	ctx := setupTestDB(t)
	addClinics(t, ctx)

	if err := (&AppointmentBookCmd{Date: "2030-01-10", Time: "9am"}).Run(ctx); err == nil {
		t.Error("expected a validation error for the time")
	}
	if err := (&AppointmentBookCmd{Date: "2030-01-10", Time: "09:00"}).Run(ctx); err != nil {
		t.Fatalf("book failed: %v", err)
	}
	appts, err := ctx.Store.GetAppointments("me")
	if err != nil || len(appts) != 1 {
		t.Fatalf("appointments = %v, %v", appts, err)
	}
	appt := appts[0]
	if appt.ClinicName != "Near Clinic" || appt.Status != models.AppointmentConfirmed {
		t.Errorf("booked = %+v", appt)
	}
	ref := cli.ShortID(appt.ID)

	resched := &AppointmentRescheduleCmd{ID: ref, Date: "2030-01-11", Time: "14:30"}
	if err := resched.Run(ctx); err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	err = (&AppointmentConfirmCmd{TransitionArgs{ID: ref}}).Run(ctx)
	if !errors.Is(err, checkin.ErrInvalidTransition) {
		t.Errorf("confirming a confirmed appointment: %v", err)
	}
	if err := (&AppointmentListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if err := (&AppointmentCancelCmd{TransitionArgs{ID: ref}}).Run(ctx); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	err = (&AppointmentCompleteCmd{TransitionArgs{ID: ref}}).Run(ctx)
	if !errors.Is(err, checkin.ErrInvalidTransition) {
		t.Errorf("completing a cancelled appointment: %v", err)
	}

	got, err := ctx.Store.GetAppointment(appt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.AppointmentCancelled || got.Day != "2030-01-11" || got.Time != "14:30" {
		t.Errorf("stored = %+v", got)
	}
	if err := (&AppointmentListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("list --all failed: %v", err)
	}
}

func TestAppointmentComplete(t *testing.T) {
	ctx := setupTestDB(t)
	now := time.Now()
	err := ctx.Store.AddAppointment(models.Appointment{
		ID: "0190aaaa-bbbb", UserID: "me", ClinicID: "c", ClinicName: "Clinic",
		Day: "2030-01-10", Time: "10:00", Status: models.AppointmentPending,
		CanModify: true, AutoBooked: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&AppointmentConfirmCmd{TransitionArgs{ID: "0190aaaa"}}).Run(ctx); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := (&AppointmentCompleteCmd{TransitionArgs{ID: "0190aaaa"}}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	got, _ := ctx.Store.GetAppointment("0190aaaa-bbbb")
	if got.Status != models.AppointmentCompleted {
		t.Errorf("status = %s", got.Status)
	}
}
