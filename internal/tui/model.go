// Package tui implements the terminal report browser: one day report at
// a time with a ranking chart across all stored days.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// topChartPlayers caps the number of bars in the ranking chart.
const topChartPlayers = 10

// QueryStore is the narrow store contract required by the browser.
type QueryStore interface {
	Dates() ([]string, error)
	DayStats(date string) ([]model.PlayerStats, error)
	TopPlayers(limit int) ([]model.PlayerTotals, error)
}

type datesMsg []string

type dayMsg struct {
	date string
	rows []model.PlayerStats
}

type topMsg []model.PlayerTotals

type errMsg struct{ err error }

// Model is the bubbletea model for the report browser.
type Model struct {
	store QueryStore
	keys  KeyMap

	dates  []string
	cursor int
	rows   []model.PlayerStats
	top    []model.PlayerTotals

	body   viewport.Model
	width  int
	height int
	ready  bool
	err    error
}

// NewModel creates a report browser over the given store.
func NewModel(store QueryStore) Model {
	return Model{
		store: store,
		keys:  DefaultKeyMap(),
	}
}

// Init starts the initial data loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDates, m.loadTop)
}

func (m Model) loadDates() tea.Msg {
	dates, err := m.store.Dates()
	if err != nil {
		return errMsg{err}
	}
	return datesMsg(dates)
}

func (m Model) loadTop() tea.Msg {
	top, err := m.store.TopPlayers(topChartPlayers)
	if err != nil {
		return errMsg{err}
	}
	return topMsg(top)
}

func (m Model) loadDay(date string) tea.Cmd {
	return func() tea.Msg {
		rows, err := m.store.DayStats(date)
		if err != nil {
			return errMsg{err}
		}
		return dayMsg{date: date, rows: rows}
	}
}

// SelectedDate returns the date under the cursor, or "" with no data.
func (m Model) SelectedDate() string {
	if len(m.dates) == 0 {
		return ""
	}
	return m.dates[m.cursor]
}

// Update handles messages and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body = viewport.New(m.bodyWidth(), m.bodyHeight())
		m.ready = true
		m.body.SetContent(m.bodyContent())
		return m, nil

	case datesMsg:
		m.dates = []string(msg)
		if len(m.dates) == 0 {
			return m, nil
		}
		m.cursor = len(m.dates) - 1 // open on the most recent day
		return m, m.loadDay(m.dates[m.cursor])

	case dayMsg:
		if msg.date == m.SelectedDate() {
			m.rows = msg.rows
			m.refreshBody()
		}
		return m, nil

	case topMsg:
		m.top = []model.PlayerTotals(msg)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevDay):
		return m.moveCursor(m.cursor - 1)

	case key.Matches(msg, m.keys.NextDay):
		return m.moveCursor(m.cursor + 1)

	case key.Matches(msg, m.keys.Home):
		return m.moveCursor(0)

	case key.Matches(msg, m.keys.End):
		return m.moveCursor(len(m.dates) - 1)

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.loadDates, m.loadTop)

	case key.Matches(msg, m.keys.Up):
		if m.ready {
			m.body.LineUp(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.ready {
			m.body.LineDown(1)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) moveCursor(to int) (tea.Model, tea.Cmd) {
	if len(m.dates) == 0 || to < 0 || to >= len(m.dates) {
		return m, nil
	}
	if to == m.cursor {
		return m, nil
	}
	m.cursor = to
	m.rows = nil
	m.refreshBody()
	return m, m.loadDay(m.dates[m.cursor])
}

func (m *Model) refreshBody() {
	if m.ready {
		m.body.SetContent(m.bodyContent())
		m.body.GotoTop()
	}
}
