package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/pulsecheck/pulse/internal/models"
)

func validEntry() models.HealthEntry {
	return models.HealthEntry{
		UserID:      "me",
		Day:         "2024-06-01",
		Energy:      models.IntPtr(3),
		Mood:        4,
		Sleep:       &models.Sleep{Hours: "7-8", Quality: models.SleepGood},
		Symptoms:    &models.Symptoms{None: true},
		Temperature: &models.Temperature{Fever: models.FeverNo, Reading: "98.6"},
	}
}

func fields(errs Errors) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateEntry_Valid(t *testing.T) {
	if errs := ValidateEntry(validEntry()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	minimal := models.HealthEntry{UserID: "me", Day: "2024-06-01", Mood: 1}
	if errs := ValidateEntry(minimal); len(errs) != 0 {
		t.Errorf("cards are optional, got %v", errs)
	}
}

func TestValidateEntry_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.HealthEntry)
		field  string
	}{
		{"missing user", func(e *models.HealthEntry) { e.UserID = " " }, FieldUser},
		{"bad day", func(e *models.HealthEntry) { e.Day = "06/01/2024" }, FieldDay},
		{"energy too high", func(e *models.HealthEntry) { e.Energy = models.IntPtr(6) }, FieldEnergy},
		{"energy zero", func(e *models.HealthEntry) { e.Energy = models.IntPtr(0) }, FieldEnergy},
		{"mood missing", func(e *models.HealthEntry) { e.Mood = 0 }, FieldMood},
		{"sleep hours garbage", func(e *models.HealthEntry) { e.Sleep.Hours = "lots" }, FieldSleepHours},
		{"sleep hours over a day", func(e *models.HealthEntry) { e.Sleep.Hours = "30" }, FieldSleepHours},
		{"sleep quality", func(e *models.HealthEntry) { e.Sleep.Quality = "great" }, FieldSleepQual},
		{"none plus location", func(e *models.HealthEntry) { e.Symptoms.Location = "head" }, FieldSymptoms},
		{"intensity", func(e *models.HealthEntry) {
			e.Symptoms = &models.Symptoms{Location: "knee", Intensity: 11}
		}, FieldIntensity},
		{"fever status", func(e *models.HealthEntry) { e.Temperature.Fever = "maybe" }, FieldFever},
		{"reading not numeric", func(e *models.HealthEntry) { e.Temperature.Reading = "hot" }, FieldReading},
		{"reading implausible", func(e *models.HealthEntry) { e.Temperature.Reading = "37.5" }, FieldReading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			errs := ValidateEntry(e)
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("expected one %s error, got %v", tt.field, fields(errs))
			}
		})
	}
}

func TestValidateEntry_CollectsAll(t *testing.T) {
	errs := ValidateEntry(models.HealthEntry{Day: "nope", Energy: models.IntPtr(9)})
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %v", fields(errs))
	}

	err := errs.Err()
	var list Errors
	if !errors.As(err, &list) {
		t.Fatalf("Err() should return an Errors value, got %T", err)
	}
	if !strings.HasPrefix(err.Error(), "invalid check-in: ") || !strings.Contains(err.Error(), "energy: must be between 1 and 5") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrors_ErrNilWhenEmpty(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Error("empty Errors should convert to a nil error")
	}
}

func TestValidateSlot(t *testing.T) {
	if errs := ValidateSlot("2024-06-13", "10:00"); len(errs) != 0 {
		t.Errorf("expected valid slot, got %v", errs)
	}
	errs := ValidateSlot("tomorrow", "25:99")
	if got := fields(errs); len(got) != 2 || got[0] != FieldDay || got[1] != FieldTime {
		t.Errorf("ValidateSlot fields = %v", got)
	}
}
