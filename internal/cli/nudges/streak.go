package nudges

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pulsecheck/pulse/internal/cli"
)

var (
	tierStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	st, err := ctx.Service.Status(user)
	if err != nil {
		return err
	}

	fmt.Printf("Streak: %d day(s) (%.1f weeks)\n", st.Streak, float64(st.Streak)/7)
	fmt.Printf("Tier:   %s\n", tierStyle.Render(fmt.Sprintf("%s · %d%% off checkups", st.Tier.Name, st.Tier.Percent)))
	if st.NextTier != nil {
		fmt.Printf("Next:   %s in %d day(s)\n", st.NextTier.Name, st.DaysToNext)
		fmt.Println(dimStyle.Render(progressBar(st.Streak, st.Streak+st.DaysToNext, 30)))
	}
	if !st.CheckedToday {
		fmt.Println(dimStyle.Render("No check-in today yet; check in to keep the streak going."))
	}
	return nil
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
