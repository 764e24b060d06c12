package checkins

import (
	"fmt"
	"strings"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/models"
)

type EntriesCmd struct {
	Days int `help:"Only show the last N days (0 for all)." default:"7"`
}

func (c *EntriesCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	entries, err := ctx.Service.Entries(user, c.Days)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No check-ins yet. Start with 'pulse checkin'.")
		return nil
	}
	for _, e := range entries {
		fmt.Println(FormatEntry(e))
	}
	return nil
}

// FormatEntry summarises a check-in on one line.
func FormatEntry(e models.HealthEntry) string {
	parts := []string{e.Day}
	if e.Energy != nil {
		parts = append(parts, fmt.Sprintf("energy %d", *e.Energy))
	}
	parts = append(parts, fmt.Sprintf("mood %d", e.Mood))
	if s := e.Sleep; s != nil {
		sleep := "sleep"
		if s.Hours != "" {
			sleep += " " + s.Hours + "h"
		}
		if s.Quality != "" {
			sleep += " " + string(s.Quality)
		}
		parts = append(parts, sleep)
	}
	if s := e.Symptoms; s != nil && s.Reported() {
		sym := s.Location
		if s.Type != "" {
			sym += " " + s.Type
		}
		if s.Intensity > 0 {
			sym += fmt.Sprintf(" (%d/10)", s.Intensity)
		}
		parts = append(parts, sym)
	}
	if t := e.Temperature; t != nil {
		if t.Reading != "" {
			parts = append(parts, t.Reading+"°F")
		} else if t.Fever != "" {
			parts = append(parts, "fever "+string(t.Fever))
		}
	}
	return strings.Join(parts, "  ·  ")
}
