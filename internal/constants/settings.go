package constants

const (
	SettingTimezone             = "timezone"
	SettingDefaultUser          = "default_user"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingAutoBookEnabled      = "auto_book_enabled"

	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
	DefaultAutoBookEnabled      = true
)
