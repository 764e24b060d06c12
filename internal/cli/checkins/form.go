package checkins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/validation"
)

// Form holds the guided check-in answers, one group per card.
type Form struct {
	Energy       int
	Mood         int
	SleepHours   string
	SleepQuality string

	HasSymptoms      bool
	SymptomLocation  string
	SymptomType      string
	SymptomIntensity string

	Fever string
	Temp  string

	Water    string
	Exercise string
	Alcohol  string
	Note     string
}

func scaleOptions(low, high string) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, 5)
	for i := 1; i <= 5; i++ {
		label := strconv.Itoa(i)
		switch i {
		case 1:
			label += " - " + low
		case 5:
			label += " - " + high
		}
		opts = append(opts, huh.NewOption(label, i))
	}
	return opts
}

// Build returns the huh form bound to f.
func (f *Form) Build() *huh.Form {
	if f.Energy == 0 {
		f.Energy = 3
	}
	if f.Mood == 0 {
		f.Mood = 3
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Energy").Options(scaleOptions("drained", "great")...).Value(&f.Energy),
			huh.NewSelect[int]().Title("Mood").Options(scaleOptions("low", "great")...).Value(&f.Mood),
		).Title("How are you today?"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Hours slept").Options(
				huh.NewOption("Skip", ""),
				huh.NewOption("Under 5", "<5"),
				huh.NewOption("5-6", "5-6"),
				huh.NewOption("7-8", "7-8"),
				huh.NewOption("9+", "9+"),
			).Value(&f.SleepHours),
			huh.NewSelect[string]().Title("Sleep quality").Options(
				huh.NewOption("Skip", ""),
				huh.NewOption("Poor", string(models.SleepPoor)),
				huh.NewOption("Okay", string(models.SleepOkay)),
				huh.NewOption("Good", string(models.SleepGood)),
			).Value(&f.SleepQuality),
		).Title("Sleep"),
		huh.NewGroup(
			huh.NewConfirm().Title("Any symptoms today?").Value(&f.HasSymptoms),
		).Title("Symptoms"),
		huh.NewGroup(
			huh.NewInput().Title("Where?").Placeholder("head, chest, stomach...").Value(&f.SymptomLocation).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("location cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("What kind?").Placeholder("ache, cough, rash...").Value(&f.SymptomType),
			huh.NewInput().Title("Intensity (1-10)").Value(&f.SymptomIntensity).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 10 {
						return fmt.Errorf("enter a number from 1 to 10")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !f.HasSymptoms }),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Feverish?").Options(
				huh.NewOption("Skip", ""),
				huh.NewOption("No", string(models.FeverNo)),
				huh.NewOption("Not sure", string(models.FeverUnsure)),
				huh.NewOption("Yes", string(models.FeverYes)),
			).Value(&f.Fever),
			huh.NewInput().Title("Temperature °F (optional)").Value(&f.Temp).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < validation.MinReadingF || v > validation.MaxReadingF {
						return fmt.Errorf("enter a reading between %.0f and %.0f", validation.MinReadingF, validation.MaxReadingF)
					}
					return nil
				}),
		).Title("Temperature"),
		huh.NewGroup(
			huh.NewInput().Title("Water").Placeholder("e.g. 6 glasses").Value(&f.Water),
			huh.NewInput().Title("Exercise").Placeholder("e.g. 30 min walk").Value(&f.Exercise),
			huh.NewInput().Title("Alcohol").Placeholder("e.g. none").Value(&f.Alcohol),
			huh.NewText().Title("Anything else?").Value(&f.Note),
		).Title("Lifestyle (optional)"),
	)
}

// Entry converts the answers into a check-in.
func (f *Form) Entry(user, day string) (models.HealthEntry, error) {
	energy := f.Energy
	e := models.HealthEntry{
		UserID: user,
		Day:    day,
		Energy: &energy,
		Mood:   f.Mood,
		Note:   strings.TrimSpace(f.Note),
	}
	if f.SleepHours != "" || f.SleepQuality != "" {
		e.Sleep = &models.Sleep{Hours: f.SleepHours, Quality: models.SleepQuality(f.SleepQuality)}
	}

	e.Symptoms = &models.Symptoms{None: !f.HasSymptoms}
	if f.HasSymptoms {
		e.Symptoms.Location = strings.TrimSpace(f.SymptomLocation)
		e.Symptoms.Type = strings.TrimSpace(f.SymptomType)
		if f.SymptomIntensity != "" {
			n, err := strconv.Atoi(f.SymptomIntensity)
			if err != nil {
				return models.HealthEntry{}, fmt.Errorf("invalid symptom intensity %q", f.SymptomIntensity)
			}
			e.Symptoms.Intensity = n
		}
	}

	if f.Fever != "" || f.Temp != "" {
		e.Temperature = &models.Temperature{Fever: models.FeverStatus(f.Fever), Reading: strings.TrimSpace(f.Temp)}
	}
	if f.Water != "" || f.Exercise != "" || f.Alcohol != "" {
		e.Lifestyle = &models.Lifestyle{
			Water:    strings.TrimSpace(f.Water),
			Exercise: strings.TrimSpace(f.Exercise),
			Alcohol:  strings.TrimSpace(f.Alcohol),
		}
	}
	return e, nil
}
