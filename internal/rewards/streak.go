package rewards

import (
	"github.com/pulsecheck/pulse/internal/utils"
)

// Streak counts consecutive check-in days ending today, or ending yesterday
// when there is no check-in today yet. days are YYYY-MM-DD strings in any
// order; duplicates and unparseable values are ignored.
func Streak(days []string, today string) int {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if utils.ValidateDateFormat(d) {
			seen[d] = true
		}
	}

	cursor := today
	if !seen[cursor] {
		prev, err := utils.AddDays(today, -1)
		if err != nil {
			return 0
		}
		cursor = prev
	}

	streak := 0
	for seen[cursor] {
		streak++
		prev, err := utils.AddDays(cursor, -1)
		if err != nil {
			break
		}
		cursor = prev
	}
	return streak
}
