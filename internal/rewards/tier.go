// Package rewards turns a check-in streak into a clinic discount tier.
package rewards

// Tier is a discount level earned by consecutive check-ins
type Tier struct {
	Name     string  `json:"name"`
	Percent  int     `json:"percent"`
	MinWeeks float64 `json:"min_weeks"`
}

// tiers is ordered from the highest boundary down. Tier walks it top to
// bottom, so the 52-week Champion tier is reachable even though 52 weeks
// also satisfies the 24-week boundary.
var tiers = []Tier{
	{Name: "Champion", Percent: 100, MinWeeks: 52},
	{Name: "Dedicated", Percent: 40, MinWeeks: 24},
	{Name: "Committed", Percent: 30, MinWeeks: 12},
	{Name: "Regular", Percent: 20, MinWeeks: 4},
	{Name: "Starter", Percent: 10, MinWeeks: 0},
}

// TierFor returns the tier for a streak of streakDays consecutive days.
// Weeks are fractional: 27 days is 3.86 weeks and stays in the first tier.
// Negative streaks are treated as zero.
func TierFor(streakDays int) Tier {
	if streakDays < 0 {
		streakDays = 0
	}
	weeks := float64(streakDays) / 7
	for _, t := range tiers {
		if weeks >= t.MinWeeks {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// DiscountPercent returns the discount percentage for a streak.
func DiscountPercent(streakDays int) int {
	return TierFor(streakDays).Percent
}

// NextTier returns the tier after current and how many more streak days reach
// it. ok is false at the top tier.
func NextTier(streakDays int) (next Tier, daysToGo int, ok bool) {
	current := TierFor(streakDays)
	for i, t := range tiers {
		if t.Percent != current.Percent {
			continue
		}
		if i == 0 {
			return Tier{}, 0, false
		}
		next = tiers[i-1]
		needed := int(next.MinWeeks * 7)
		return next, needed - streakDays, true
	}
	return Tier{}, 0, false
}
