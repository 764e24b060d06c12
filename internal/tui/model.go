package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulsecheck/pulse/internal/checkin"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/tui/components/appointments"
	"github.com/pulsecheck/pulse/internal/tui/components/entries"
)

type SessionState int

const (
	StateOverview SessionState = iota
	StateEntries
	StateAppointments
)

const tabCount = 3

// entryDays is how far back the entries tab looks.
const entryDays = 30

type Model struct {
	svc   *checkin.Service
	store storage.Provider
	user  string

	state    SessionState
	keys     KeyMap
	help     help.Model
	entries  entries.Model
	appts    appointments.Model
	status   checkin.Status
	settings models.Settings
	loaded   bool

	// message is the outcome of the last action, err the last failure.
	message  string
	err      error
	quitting bool
	width    int
	height   int
}

// refreshMsg carries a full reload of the dashboard data.
type refreshMsg struct {
	status   checkin.Status
	settings models.Settings
	entries  []models.HealthEntry
	appts    []models.Appointment
	err      error
}

// actionMsg reports the result of a dismiss, evaluate or transition.
type actionMsg struct {
	text string
	err  error
}

func NewModel(svc *checkin.Service, store storage.Provider, user string) Model {
	return Model{
		svc:     svc,
		store:   store,
		user:    user,
		state:   StateOverview,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		entries: entries.New(nil, 10),
		appts:   appointments.New(nil, 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	svc, store, user := m.svc, m.store, m.user
	return func() tea.Msg {
		var msg refreshMsg
		if msg.settings, msg.err = store.GetSettings(); msg.err != nil {
			return msg
		}
		if msg.status, msg.err = svc.Status(user); msg.err != nil {
			return msg
		}
		if msg.entries, msg.err = svc.Entries(user, entryDays); msg.err != nil {
			return msg
		}
		msg.appts, msg.err = svc.Appointments(user)
		return msg
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	switch m.state {
	case StateOverview:
		keys = append(keys, m.keys.Dismiss, m.keys.Evaluate)
	case StateAppointments:
		keys = append(keys, m.appts.Keys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Dismiss, m.keys.Evaluate}
	actions = append(actions, m.appts.Keys()...)
	return [][]key.Binding{global, navigation, actions}
}
