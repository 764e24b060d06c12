package settings

import (
	"fmt"
	"strings"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used to decide what 'today' is (or Local)."`
	DefaultUser   *string `help:"User acted on when --user is not given."`
	Notifications *bool   `help:"Enable or disable tray notifications (--notifications=false)."`
	AutoBook      *bool   `help:"Allow pulse to book a checkup after repeated dismissals."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Default User:          %s\n", settings.DefaultUser)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Auto-booking Enabled:  %v\n", settings.AutoBookEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if !utils.ValidateTimezone(tz) {
			return fmt.Errorf("invalid timezone %q", tz)
		}
		settings.Timezone = tz
		updated = true
	}
	if c.DefaultUser != nil {
		user := strings.TrimSpace(*c.DefaultUser)
		if user == "" {
			return fmt.Errorf("default user cannot be empty")
		}
		settings.DefaultUser = user
		updated = true
	}
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
		updated = true
	}
	if c.AutoBook != nil {
		settings.AutoBookEnabled = *c.AutoBook
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
