package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/pulsecheck/pulse/internal/backup"
	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/storage/sqlite"
	"github.com/pulsecheck/pulse/internal/utils"
	"github.com/pulsecheck/pulse/internal/validation"
)

type DoctorCmd struct{}

// errWarning marks a check result that is reported but does not fail doctor.
var errWarning = errors.New("warning")

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Check-in data", needsDB: true, run: checkEntries},
	{name: "Appointments", needsDB: true, run: checkAppointments},
	{name: "Backups present", run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	failed := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", errors.Unwrap(err))
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			failed = true
			if c.name == checks[0].name {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if failed {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

// warning is a non-fatal check result.
type warning struct{ err error }

func (w warning) Error() string        { return w.err.Error() }
func (w warning) Unwrap() error        { return w.err }
func (w warning) Is(target error) bool { return target == errWarning }

func warnf(format string, args ...any) error {
	return warning{err: fmt.Errorf(format, args...)}
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'pulse migrate')", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q (fix with 'pulse settings --timezone')", settings.Timezone)
	}
	if settings.DefaultUser == "" {
		return fmt.Errorf("default user is empty")
	}
	return nil
}

func checkEntries(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetHealthEntries(user, "", "")
	if err != nil {
		return fmt.Errorf("failed to get check-ins: %w", err)
	}
	bad := 0
	for _, e := range entries {
		if len(validation.ValidateEntry(e)) > 0 {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d check-ins for %s fail validation", bad, len(entries), user)
	}
	return nil
}

func checkAppointments(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	appts, err := ctx.Store.GetAppointments(user)
	if err != nil {
		return fmt.Errorf("failed to get appointments: %w", err)
	}
	active := 0
	for _, a := range appts {
		if len(validation.ValidateSlot(a.Day, a.Time)) > 0 {
			return fmt.Errorf("appointment %s has an invalid slot %q %q", cli.ShortID(a.ID), a.Day, a.Time)
		}
		if a.IsActive() {
			active++
		}
	}
	if active > 1 {
		return warnf("%d upcoming appointments; auto-booking stays paused until they are resolved", active)
	}
	clinics, err := ctx.Store.GetAllClinics()
	if err != nil {
		return fmt.Errorf("failed to get clinics: %w", err)
	}
	if len(clinics) == 0 {
		return warnf("no clinics configured; add one with 'pulse clinic add' so auto-booking can run")
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found - consider creating one with 'pulse backup create'")
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
