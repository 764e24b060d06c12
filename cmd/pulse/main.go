package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/cli/appointments"
	"github.com/pulsecheck/pulse/internal/cli/backups"
	"github.com/pulsecheck/pulse/internal/cli/checkins"
	"github.com/pulsecheck/pulse/internal/cli/nudges"
	"github.com/pulsecheck/pulse/internal/cli/settings"
	"github.com/pulsecheck/pulse/internal/cli/system"
	"github.com/pulsecheck/pulse/internal/config"
	"github.com/pulsecheck/pulse/internal/constants"
	"github.com/pulsecheck/pulse/internal/errors"
	"github.com/pulsecheck/pulse/internal/keyring"
	"github.com/pulsecheck/pulse/internal/logger"
	"github.com/pulsecheck/pulse/internal/notifier"
	"github.com/pulsecheck/pulse/internal/storage/postgres"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded here; use the OS keyring, PULSE_DB_CONNECTION or .pgpass instead." type:"string"`
	User    string `help:"User to act on (defaults to PULSE_USER, then the default_user setting)."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize pulse storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API."`

	Checkin checkins.CheckinCmd `cmd:"" help:"Record today's check-in."`
	Entries checkins.EntriesCmd `cmd:"" help:"Show recent check-ins."`
	Streak  nudges.StreakCmd    `cmd:"" help:"Show your check-in streak and discount tier."`
	Nudge   struct {
		Status   nudges.NudgeStatusCmd   `cmd:"" help:"Show the nudge ledger." default:"1"`
		Dismiss  nudges.NudgeDismissCmd  `cmd:"" help:"Dismiss the latest nudge."`
		Evaluate nudges.NudgeEvaluateCmd `cmd:"" help:"Re-run pattern detection without a new check-in."`
	} `cmd:"" help:"Inspect and respond to checkup nudges."`

	Appointment struct {
		List       appointments.AppointmentListCmd       `cmd:"" help:"List appointments." default:"1"`
		Book       appointments.AppointmentBookCmd       `cmd:"" help:"Book a checkup."`
		Confirm    appointments.AppointmentConfirmCmd    `cmd:"" help:"Confirm a pending appointment."`
		Cancel     appointments.AppointmentCancelCmd     `cmd:"" help:"Cancel an appointment."`
		Complete   appointments.AppointmentCompleteCmd   `cmd:"" help:"Mark a confirmed appointment as attended."`
		Reschedule appointments.AppointmentRescheduleCmd `cmd:"" help:"Move an appointment to a new slot."`
	} `cmd:"" help:"Manage checkup appointments."`
	Clinic struct {
		Add  appointments.ClinicAddCmd  `cmd:"" help:"Add a clinic."`
		List appointments.ClinicListCmd `cmd:"" help:"List clinics." default:"1"`
	} `cmd:"" help:"Manage clinics."`

	Settings    settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Credentials struct {
		Set    system.ConfigSetCmd    `cmd:"" help:"Store a value in the OS keyring."`
		Get    system.ConfigGetCmd    `cmd:"" help:"Show a value from the OS keyring."`
		Delete system.ConfigDeleteCmd `cmd:"" help:"Remove a value from the OS keyring."`
		Status system.ConfigStatusCmd `cmd:"" help:"Show whether the keyring holds a connection string." default:"1"`
	} `cmd:"" name:"config" help:"Manage credentials in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

// needsStore reports whether the selected command reads the database before
// running. init creates it and config only talks to the keyring.
func needsStore(command string) bool {
	return !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "config")
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Daily health check-ins that nudge you toward a checkup"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}
}

// newAppContext opens the store the flags and environment point at and wires
// the command context over it.
func newAppContext(args *CLI, command string, cfg config.Config, fromKeyring func() (string, error), n notifier.Notifier) (*cli.Context, error) {
	conn, src, err := resolveConnection(args.Config, cfg, fromKeyring)
	if err != nil {
		return nil, err
	}
	store, err := openStore(conn, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using storage", "source", src, "path", store.GetConfigPath())

	app := cli.NewContext(store, n)
	app.User = args.User
	if app.User == "" {
		app.User = cfg.User
	}
	app.Addr = cfg.Addr

	if needsStore(command) {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func main() {
	dir := configDir()
	cfg, err := config.Load(config.DotenvPaths(dir)...)
	if err != nil {
		errors.Fatal(err)
	}

	var args CLI
	ctx := kong.Parse(&args, options()...)
	command := ctx.Command()

	if err := logger.Init(logger.Config{
		Debug:     args.Debug || cfg.Debug,
		ConfigDir: dir,
		Level:     cfg.LogLevel,
		Stderr:    strings.HasPrefix(command, "serve"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	app, err := newAppContext(&args, command, cfg, keyring.GetConnectionString, notifier.NewTray())
	if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
		fmt.Fprintln(os.Stderr, embeddedCredentialsHelp())
		os.Exit(1)
	}
	if err != nil {
		errors.Fatal(err)
	}
	defer app.Store.Close()

	errors.Fatal(ctx.Run(app))
}
