package checkins

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pulsecheck/pulse/internal/checkin"
	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/utils"
)

type CheckinCmd struct {
	Date string `help:"Day of the check-in (YYYY-MM-DD). Defaults to today."`

	Energy       *int   `help:"Energy level, 1 (drained) to 5 (great)."`
	Mood         *int   `help:"Mood, 1 (low) to 5 (great)."`
	SleepHours   string `help:"Hours slept: a number or one of <5, 5-6, 7-8, 9+."`
	SleepQuality string `help:"Sleep quality: poor, okay or good." enum:",poor,okay,good" default:""`

	NoSymptoms       bool   `help:"Report no symptoms."`
	SymptomLocation  string `help:"Where the symptom is (head, chest, ...)."`
	SymptomType      string `help:"Kind of symptom (ache, cough, ...)."`
	SymptomIntensity int    `help:"Symptom intensity 1-10."`

	Fever string `help:"Fever: no, unsure or yes." enum:",no,unsure,yes" default:""`
	Temp  string `help:"Temperature reading in °F."`

	Water    string `help:"Water intake."`
	Exercise string `help:"Exercise today."`
	Alcohol  string `help:"Alcohol today."`
	Note     string `help:"Free-form note."`
}

// interactive is true when no card flags were given.
func (c *CheckinCmd) interactive() bool {
	return c.Energy == nil && c.Mood == nil && c.SleepHours == "" && c.SleepQuality == "" &&
		!c.NoSymptoms && c.SymptomLocation == "" && c.Fever == "" && c.Temp == "" &&
		c.Water == "" && c.Exercise == "" && c.Alcohol == "" && c.Note == ""
}

// entry builds a check-in from the flags. Cards without any flag are left out.
func (c *CheckinCmd) entry(user, day string) (models.HealthEntry, error) {
	if c.Mood == nil {
		return models.HealthEntry{}, fmt.Errorf("--mood is required when checking in with flags")
	}
	e := models.HealthEntry{
		UserID: user,
		Day:    day,
		Energy: c.Energy,
		Mood:   *c.Mood,
		Note:   strings.TrimSpace(c.Note),
	}
	if c.SleepHours != "" || c.SleepQuality != "" {
		e.Sleep = &models.Sleep{Hours: c.SleepHours, Quality: models.SleepQuality(c.SleepQuality)}
	}
	if c.NoSymptoms || c.SymptomLocation != "" {
		e.Symptoms = &models.Symptoms{
			None:      c.NoSymptoms,
			Location:  c.SymptomLocation,
			Type:      c.SymptomType,
			Intensity: c.SymptomIntensity,
		}
	}
	if c.Fever != "" || c.Temp != "" {
		e.Temperature = &models.Temperature{Fever: models.FeverStatus(c.Fever), Reading: c.Temp}
	}
	if c.Water != "" || c.Exercise != "" || c.Alcohol != "" {
		e.Lifestyle = &models.Lifestyle{Water: c.Water, Exercise: c.Exercise, Alcohol: c.Alcohol}
	}
	return e, nil
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	day := c.Date
	if day == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if day, err = utils.GetTodayFromSettings(settings); err != nil {
			return err
		}
	}

	var entry models.HealthEntry
	if c.interactive() {
		f := &Form{}
		if err := f.Build().Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Check-in cancelled.")
				return nil
			}
			return err
		}
		if entry, err = f.Entry(user, day); err != nil {
			return err
		}
	} else if entry, err = c.entry(user, day); err != nil {
		return err
	}

	res, err := ctx.Service.Submit(entry)
	if err != nil {
		return err
	}
	PrintResult(res)
	return nil
}

// PrintResult reports what a check-in or evaluation led to.
func PrintResult(res checkin.Result) {
	if res.Entry != nil {
		fmt.Printf("✓ Checked in for %s\n", res.Entry.Day)
	}
	fmt.Printf("Streak: %d day(s) · %s tier, %d%% off checkups\n", res.Streak, res.Tier.Name, res.Tier.Percent)
	if res.Decision.ShouldNudge {
		fmt.Printf("\n💡 %s\n", res.Decision.Message)
		fmt.Println("   Book with 'pulse appointment book' or dismiss with 'pulse nudge dismiss'.")
	}
	if res.Appointment != nil {
		fmt.Printf("\n📅 Booked for you: %s\n", cli.FormatAppointment(*res.Appointment))
	}
}
