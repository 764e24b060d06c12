// Package nudge decides when a user should be nudged toward a clinic visit
// and tracks how the user responds to those nudges.
package nudge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pulsecheck/pulse/internal/constants"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/utils"
)

// Decision is the outcome of one pattern evaluation
type Decision struct {
	ShouldNudge bool              `json:"should_nudge"`
	Reason      models.ReasonCode `json:"reason"`
	Message     string            `json:"message"`
}

var noNudge = Decision{}

// pattern is one concern check over the evaluation window. It returns a
// non-empty message when the pattern matches.
type pattern struct {
	reason models.ReasonCode
	match  func(window []models.HealthEntry) (string, bool)
}

// patterns are tried in order; the first match wins.
var patterns = []pattern{
	{reason: models.ReasonLowEnergy, match: lowEnergy},
	{reason: models.ReasonRecurringSymptom, match: recurringSymptom},
	{reason: models.ReasonFever, match: fever},
	{reason: models.ReasonPoorSleep, match: poorSleep},
}

// Evaluate inspects the most recent entries and decides whether to nudge.
//
// entries may be in any order; only the NudgeWindowSize most recent days are
// considered. lastNudgeDate and today are YYYY-MM-DD days. A nudge issued
// fewer than NudgeCooldownDays ago suppresses any new nudge regardless of the
// entries. An unparseable lastNudgeDate is treated as no prior nudge.
func Evaluate(entries []models.HealthEntry, lastNudgeDate *string, today string) Decision {
	if lastNudgeDate != nil {
		if days, err := utils.DaysBetween(*lastNudgeDate, today); err == nil && days < constants.NudgeCooldownDays {
			return noNudge
		}
	}

	window := recentWindow(entries, constants.NudgeWindowSize)
	if len(window) == 0 {
		return noNudge
	}

	for _, p := range patterns {
		if msg, ok := p.match(window); ok {
			return Decision{ShouldNudge: true, Reason: p.reason, Message: msg}
		}
	}
	return noNudge
}

// recentWindow returns the n most recent entries by day, oldest first.
// The input slice is never reordered.
func recentWindow(entries []models.HealthEntry, n int) []models.HealthEntry {
	sorted := make([]models.HealthEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day < sorted[j].Day
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func lowEnergy(window []models.HealthEntry) (string, bool) {
	count := 0
	for _, e := range window {
		if e.Energy != nil && *e.Energy <= constants.LowEnergyMax {
			count++
		}
	}
	if count < constants.LowEnergyMinDays {
		return "", false
	}
	return fmt.Sprintf("Your energy has been low on %d of your last %d check-ins. A quick check-up could help find out why.", count, len(window)), true
}

func recurringSymptom(window []models.HealthEntry) (string, bool) {
	tally := make(map[string]int)
	// first spelling seen, for the message
	display := make(map[string]string)
	var order []string

	for _, e := range window {
		if e.Symptoms == nil || !e.Symptoms.Reported() {
			continue
		}
		raw := strings.TrimSpace(e.Symptoms.Location)
		key := strings.ToLower(raw)
		if _, seen := tally[key]; !seen {
			display[key] = raw
			order = append(order, key)
		}
		tally[key]++
	}

	for _, key := range order {
		if tally[key] >= constants.RecurringSymptomMinDays {
			return fmt.Sprintf("You've reported %s symptoms %d times this week. It may be worth having it looked at.", display[key], tally[key]), true
		}
	}
	return "", false
}

func fever(window []models.HealthEntry) (string, bool) {
	count := 0
	for _, e := range window {
		if e.Temperature == nil {
			continue
		}
		if e.Temperature.Fever == models.FeverYes {
			count++
			continue
		}
		if reading, ok := e.Temperature.ReadingValue(); ok && reading > constants.FeverReadingF {
			count++
		}
	}
	if count < constants.FeverMinDays {
		return "", false
	}
	return fmt.Sprintf("You've had signs of a fever on %d days recently. Please consider visiting a clinic.", count), true
}

func poorSleep(window []models.HealthEntry) (string, bool) {
	count := 0
	for _, e := range window {
		if e.Sleep == nil {
			continue
		}
		if e.Sleep.Quality == models.SleepPoor {
			count++
			continue
		}
		if hours, ok := e.Sleep.HoursValue(); ok && hours < constants.PoorSleepHours {
			count++
		}
	}
	if count < constants.PoorSleepMinDays {
		return "", false
	}
	return fmt.Sprintf("You've slept poorly on %d of your last %d nights. Ongoing sleep trouble is worth raising with a clinician.", count, len(window)), true
}
