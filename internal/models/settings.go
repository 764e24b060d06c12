package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	DefaultUser          string `json:"default_user"`          // user id used when none is given
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether nudges are pushed to the tray app
	AutoBookEnabled      bool   `json:"auto_book_enabled"`     // whether the auto-booking engine may create appointments
}
