package entries

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pulsecheck/pulse/internal/models"
)

var columns = []table.Column{
	{Title: "Day", Width: 10},
	{Title: "Energy", Width: 6},
	{Title: "Mood", Width: 4},
	{Title: "Sleep", Width: 14},
	{Title: "Symptoms", Width: 22},
	{Title: "Temp", Width: 10},
}

type Model struct {
	table table.Model
}

func New(list []models.HealthEntry, height int) Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(Rows(list)),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)
	t.SetStyles(styles)
	return Model{table: t}
}

// Rows renders entries newest first.
func Rows(list []models.HealthEntry) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		rows = append(rows, row(list[i]))
	}
	return rows
}

func row(e models.HealthEntry) table.Row {
	energy := "-"
	if e.Energy != nil {
		energy = fmt.Sprintf("%d", *e.Energy)
	}

	sleep := "-"
	if s := e.Sleep; s != nil {
		sleep = string(s.Quality)
		if s.Hours != "" {
			sleep = s.Hours + "h " + sleep
		}
	}

	symptoms := "-"
	if s := e.Symptoms; s != nil && s.Reported() {
		symptoms = s.Location
		if s.Type != "" {
			symptoms += " " + s.Type
		}
		if s.Intensity > 0 {
			symptoms += fmt.Sprintf(" %d/10", s.Intensity)
		}
	}

	temp := "-"
	if t := e.Temperature; t != nil {
		switch {
		case t.Reading != "":
			temp = t.Reading + "°F"
		case t.Fever != "":
			temp = "fever " + string(t.Fever)
		}
	}

	return table.Row{e.Day, energy, fmt.Sprintf("%d", e.Mood), sleep, symptoms, temp}
}

func (m *Model) SetEntries(list []models.HealthEntry) {
	m.table.SetRows(Rows(list))
}

func (m *Model) SetHeight(height int) {
	m.table.SetHeight(max(height, 3))
}

func (m Model) Len() int {
	return len(m.table.Rows())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.table.Rows()) == 0 {
		return "\n  No check-ins yet.\n  Run 'pulse checkin' to add one."
	}
	return m.table.View()
}
