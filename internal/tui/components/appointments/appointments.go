package appointments

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulsecheck/pulse/internal/models"
)

type ConfirmMsg struct {
	ID string
}

type CancelMsg struct {
	ID string
}

type Item struct {
	Appointment models.Appointment
}

func (i Item) Title() string {
	a := i.Appointment
	title := fmt.Sprintf("%s %s  %s", a.Day, a.Time, a.ClinicName)
	if a.AutoBooked {
		title += " (auto-booked)"
	}
	return title
}

func (i Item) Description() string {
	a := i.Appointment
	desc := string(a.Status)
	if a.DiscountPercent > 0 {
		desc += fmt.Sprintf(" | %d%% off", a.DiscountPercent)
	}
	if a.Status == models.AppointmentPending {
		desc += " | confirm with 'c'"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Appointment.ClinicName }

type KeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(appts []models.Appointment, width, height int) Model {
	l := list.New(items(appts), list.NewDefaultDelegate(), width, height)
	l.Title = "Appointments"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

func items(appts []models.Appointment) []list.Item {
	out := make([]list.Item, len(appts))
	for i, a := range appts {
		out[i] = Item{Appointment: a}
	}
	return out
}

func (m *Model) SetAppointments(appts []models.Appointment) tea.Cmd {
	return m.list.SetItems(items(appts))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Keys are the actions available on the selected appointment.
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Confirm, m.keys.Cancel}
}

func (m Model) Selected() (models.Appointment, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Appointment, ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if a, ok := m.Selected(); ok && a.Status == models.AppointmentPending {
				return m, func() tea.Msg { return ConfirmMsg{ID: a.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			if a, ok := m.Selected(); ok && a.IsActive() {
				return m, func() tea.Msg { return CancelMsg{ID: a.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No appointments.\n  Book one with 'pulse appointment book'."
	}
	return m.list.View()
}
