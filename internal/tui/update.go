package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulsecheck/pulse/internal/tui/components/appointments"
)

// chrome is the height taken by tabs, status line and help.
const chrome = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.entries.SetHeight(msg.Height - chrome - 2)
		m.appts.SetSize(msg.Width-4, msg.Height-chrome-2)
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loaded = true
		m.status = msg.status
		m.settings = msg.settings
		m.entries.SetEntries(msg.entries)
		return m, m.appts.SetAppointments(msg.appts)

	case actionMsg:
		m.message, m.err = msg.text, msg.err
		return m, m.refresh()

	case appointments.ConfirmMsg:
		return m, m.transition("Appointment confirmed.", func() error {
			_, err := m.svc.Confirm(m.user, msg.ID)
			return err
		})

	case appointments.CancelMsg:
		return m, m.transition("Appointment cancelled.", func() error {
			_, err := m.svc.Cancel(m.user, msg.ID)
			return err
		})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.message, m.err = "", nil
			return m, m.refresh()
		case key.Matches(msg, m.keys.Dismiss):
			return m, m.dismiss()
		case key.Matches(msg, m.keys.Evaluate):
			return m, m.evaluate()
		}
	}

	switch m.state {
	case StateEntries:
		m.entries, cmd = m.entries.Update(msg)
	case StateAppointments:
		m.appts, cmd = m.appts.Update(msg)
	}
	return m, cmd
}

func (m Model) dismiss() tea.Cmd {
	svc, user := m.svc, m.user
	return func() tea.Msg {
		ok, appt, err := svc.Dismiss(user)
		switch {
		case err != nil:
			return actionMsg{err: err}
		case !ok:
			return actionMsg{text: "No nudge to dismiss."}
		case appt != nil:
			return actionMsg{text: fmt.Sprintf("Nudge dismissed. Checkup booked for %s at %s (%s).", appt.Day, appt.Time, appt.ClinicName)}
		default:
			return actionMsg{text: "Nudge dismissed."}
		}
	}
}

func (m Model) evaluate() tea.Cmd {
	svc, user := m.svc, m.user
	return func() tea.Msg {
		res, err := svc.Evaluate(user)
		if err != nil {
			return actionMsg{err: err}
		}
		text := "No concerning patterns."
		if res.Decision.ShouldNudge {
			text = res.Decision.Message
		}
		if a := res.Appointment; a != nil {
			text += fmt.Sprintf(" Checkup booked for %s at %s.", a.Day, a.Time)
		}
		return actionMsg{text: text}
	}
}

func (m Model) transition(done string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: done}
	}
}
