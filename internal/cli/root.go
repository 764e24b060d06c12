package cli

import (
	"fmt"
	"strings"

	"github.com/pulsecheck/pulse/internal/backup"
	"github.com/pulsecheck/pulse/internal/checkin"
	"github.com/pulsecheck/pulse/internal/logger"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/notifier"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Service *checkin.Service
	// User comes from --user or PULSE_USER. Empty falls back to the
	// default_user setting.
	User string
	// Addr is the listen address `pulse serve` uses without --addr.
	Addr string
}

// NewContext wires the check-in service over store.
func NewContext(store storage.Provider, n notifier.Notifier) *Context {
	return &Context{
		Store:   store,
		Service: checkin.NewService(store, n),
	}
}

// UserID resolves whose data a command acts on.
func (c *Context) UserID() (string, error) {
	if u := strings.TrimSpace(c.User); u != "" {
		return u, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.DefaultUser, nil
}

// PerformAutomaticBackup backs up a SQLite database and only logs failures.
// PostgreSQL deployments are expected to have their own backups.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatAppointment renders an appointment on one line.
func FormatAppointment(a models.Appointment) string {
	var flags []string
	if a.AutoBooked {
		flags = append(flags, "auto-booked")
	}
	if a.DiscountPercent > 0 {
		flags = append(flags, fmt.Sprintf("%d%% off", a.DiscountPercent))
	}
	if !a.CanModify && a.IsActive() {
		flags = append(flags, "locked")
	}
	line := fmt.Sprintf("%s  %s %s  %-10s %s", ShortID(a.ID), a.Day, a.Time, a.Status, a.ClinicName)
	if len(flags) > 0 {
		line += "  (" + strings.Join(flags, ", ") + ")"
	}
	return line
}

// ShortID is the first block of a UUID, enough to tell appointments apart.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// ResolveAppointment accepts a full ID or a unique ID prefix.
func (c *Context) ResolveAppointment(userID, ref string) (string, error) {
	appts, err := c.Store.GetAppointments(userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, a := range appts {
		if a.ID == ref {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("appointment id %q is ambiguous", ref)
			}
			match = a.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("appointment %s: %w", ref, storage.ErrNotFound)
	}
	return match, nil
}
