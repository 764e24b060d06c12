package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pulsecheck/pulse/internal/constants"
)

var tabTitles = []string{"Overview", "Check-ins", "Appointments"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateOverview:
		content = m.viewOverview()
	case StateEntries:
		content = m.entries.View()
	case StateAppointments:
		content = m.appts.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatusLine(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = inactiveTabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatusLine() string {
	switch {
	case m.err != nil:
		return dangerStyle.Render("✗ " + m.err.Error())
	case m.message != "":
		return okStyle.Render(m.message)
	}
	return ""
}

func (m Model) viewOverview() string {
	if !m.loaded {
		return "Loading..."
	}
	st := m.status

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	streak := fmt.Sprintf("%d days", st.Streak)
	if !st.CheckedToday {
		streak += warnStyle.Render("  (no check-in today)")
	}
	line("User", m.user)
	line("Streak", streak)
	line("Reward", fmt.Sprintf("%s · %d%% off", st.Tier.Name, st.Tier.Percent))
	if st.NextTier != nil {
		line("Next tier", fmt.Sprintf("%s %d%% in %d days", st.NextTier.Name, st.NextTier.Percent, st.DaysToNext))
	}

	nudges := fmt.Sprintf("%d", st.Record.Count)
	if st.Record.LastNudgeDate != nil {
		nudges += " (last " + *st.Record.LastNudgeDate + ")"
	}
	line("Nudges", nudges)
	dismissed := fmt.Sprintf("%d", st.Dismissed)
	if st.Dismissed >= constants.AutoBookDismissThreshold && st.Upcoming == nil {
		dismissed = warnStyle.Render(dismissed)
	}
	line("Dismissed", dismissed)
	if st.Record.LastCheckupDate != nil {
		line("Last checkup", *st.Record.LastCheckupDate)
	}

	if a := st.Upcoming; a != nil {
		line("Next checkup", fmt.Sprintf("%s %s at %s (%s)", a.Day, a.Time, a.ClinicName, a.Status))
	} else {
		line("Next checkup", "none booked")
	}

	autoBook := "off"
	if m.settings.AutoBookEnabled {
		autoBook = "on"
	}
	line("Auto-booking", autoBook)

	if n := len(st.History); n > 0 {
		last := st.History[n-1]
		b.WriteString("\n" + warnStyle.Render("Latest nudge: ") + last.Message + "\n")
	}
	return b.String()
}
