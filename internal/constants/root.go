package constants

import "time"

const (
	AppName            = "pulse"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/pulse/pulse.db"
	DefaultUser        = "me"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment variables
	EnvDBConnection = "PULSE_DB_CONNECTION"
	EnvUser         = "PULSE_USER"
	EnvAddr         = "PULSE_ADDR"
	EnvDebug        = "PULSE_DEBUG"

	DefaultAddr = ":8080"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pulse-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "pulse-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.pulsecheck.pulse"
	TrayExecutablePrefix   = "pulse-tray"
	NotifyRequestTimeout   = 3 * time.Second
)
