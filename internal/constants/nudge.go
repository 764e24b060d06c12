package constants

const (
	// Pattern detection window and cooldown
	NudgeWindowSize   = 7
	NudgeCooldownDays = 2

	// Pattern thresholds, counted within the window
	LowEnergyMax            = 2    // energy at or below this is "low"
	LowEnergyMinDays        = 4    // days of low energy needed to nudge
	RecurringSymptomMinDays = 3    // same symptom location this many times
	FeverReadingF           = 99.5 // readings strictly above this count as fever
	FeverMinDays            = 2
	PoorSleepHours          = 5.0 // fewer hours than this count as poor sleep
	PoorSleepMinDays        = 5

	// Auto-booking
	AutoBookDismissThreshold = 3
	AutoBookRequiredDiscount = 100
	AutoBookLeadDays         = 3
	AutoBookTime             = "10:00"
)
