package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guzus/garage/internal/cursor"
	"github.com/guzus/garage/internal/events"
	"github.com/guzus/garage/internal/store"
)

// errorTTL is how many ticks a failure message stays on screen.
const errorTTL = 15

type eventMsg events.Event

type sourceClosedMsg struct{}

// waitForEvent blocks on the channel and returns the next event.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return sourceClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// MainModel owns the active tab, the loaded records and the selection, and
// redraws the whole frame after every event.
type MainModel struct {
	store  store.Store
	gen    *store.Generator
	events <-chan events.Event

	keys   keyMap
	help   help.Model
	md     *markdownCache
	dbPath string
	theme  string

	tab     Tab
	records []store.Record
	cursor  cursor.Cursor
	err     string
	errTTL  int
	width   int
	height  int
}

// Option configures a MainModel.
type Option func(*MainModel)

// WithTab sets the tab shown on start.
func WithTab(t Tab) Option {
	return func(m *MainModel) { m.tab = t }
}

// WithDBPath sets the database path shown on the info tab.
func WithDBPath(path string) Option {
	return func(m *MainModel) { m.dbPath = path }
}

// WithTheme sets the glamour style used for the home and info tabs.
func WithTheme(theme string) Option {
	return func(m *MainModel) { m.theme = theme }
}

// NewMainModel returns a model reading from st, generating cars with gen and
// consuming events from ch.
func NewMainModel(st store.Store, gen *store.Generator, ch <-chan events.Event, opts ...Option) MainModel {
	m := MainModel{
		store:  st,
		gen:    gen,
		events: ch,
		keys:   newKeyMap(),
		help:   help.New(),
		md:     &markdownCache{},
		dbPath: store.DefaultPath,
		theme:  "dark",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.reload()
	return m
}

// Tab returns the active tab.
func (m MainModel) Tab() Tab {
	return m.tab
}

func (m MainModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		if quit := m.handle(events.Event(msg)); quit {
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		if quit := m.handle(events.Event{Kind: events.Input, Key: events.Key(msg.String())}); quit {
			return m, tea.Quit
		}
		return m, nil

	case sourceClosedMsg:
		slog.Debug("event stream closed")
		return m, tea.Quit
	}

	return m, nil
}

// handle applies one event and refreshes the records when the cars tab is
// showing. It reports whether the program should quit.
func (m *MainModel) handle(ev events.Event) bool {
	switch ev.Kind {
	case events.Tick:
		m.expireError()
	case events.Input:
		if m.dispatch(ev.Key) {
			slog.Info("quit requested")
			return true
		}
	}
	if m.tab == TabCars {
		m.reload()
	}
	return false
}

func (m *MainModel) dispatch(k events.Key) (quit bool) {
	if key.Matches(k, m.keys.Quit) {
		return true
	}
	for _, t := range tabs {
		if key.Matches(k, t.binding) {
			m.setTab(t.tab)
			return false
		}
	}

	switch {
	case key.Matches(k, m.keys.Add):
		m.add()
	case m.tab != TabCars:
		// selection commands only apply to the cars tab
	case key.Matches(k, m.keys.Delete):
		m.delete()
	case key.Matches(k, m.keys.Down):
		m.move(cursor.Cursor.Down)
	case key.Matches(k, m.keys.Up):
		m.move(cursor.Cursor.Up)
	}
	return false
}

func (m *MainModel) setTab(t Tab) {
	if m.tab == t {
		return
	}
	slog.Debug("tab selected", "tab", t.String())
	m.tab = t
}

func (m *MainModel) add() {
	records, err := m.store.AppendGenerated(m.gen)
	if err != nil {
		m.fail(err)
		return
	}
	m.records = records
	m.cursor = m.cursor.Clamp(len(records))
	m.clearError()

	added := records[len(records)-1]
	slog.Info("car added", "id", added.ID, "name", added.Name, "count", len(records))
}

func (m *MainModel) delete() {
	i, ok := m.cursor.Index()
	if !ok {
		return
	}
	if err := m.store.RemoveAt(i); err != nil {
		m.fail(err)
		return
	}
	// keep the view consistent with the file even if the next reload fails
	if i < len(m.records) {
		m.records = append(m.records[:i:i], m.records[i+1:]...)
	}
	m.cursor = m.cursor.Clamp(len(m.records))
	m.clearError()
	slog.Info("car deleted", "index", i)
}

// move loads the store so the cursor is checked against the current length
// before stepping.
func (m *MainModel) move(step func(cursor.Cursor, int) cursor.Cursor) {
	records, err := m.store.Load()
	if err != nil {
		m.fail(err)
		return
	}
	m.records = records
	m.cursor = step(m.cursor, len(records))
}

// reload replaces the displayed records. On failure the previous records
// stay visible.
func (m *MainModel) reload() {
	records, err := m.store.Load()
	if err != nil {
		m.fail(err)
		return
	}
	m.records = records
	m.cursor = m.cursor.Clamp(len(records))
}

func (m *MainModel) fail(err error) {
	msg := err.Error()
	if msg != m.err {
		slog.Warn("command failed", "err", err)
	}
	m.err = msg
	m.errTTL = errorTTL
}

func (m *MainModel) clearError() {
	m.err = ""
	m.errTTL = 0
}

func (m *MainModel) expireError() {
	if m.errTTL == 0 {
		return
	}
	m.errTTL--
	if m.errTTL == 0 {
		m.err = ""
	}
}

func (m MainModel) View() string {
	if m.width == 0 {
		return ""
	}

	menu := m.viewMenu()
	footer := m.viewFooter()

	contentHeight := m.height - lipgloss.Height(menu) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.tab {
	case TabCars:
		content = m.viewCars(m.width, contentHeight)
	case TabInfo:
		content = m.viewInfo(m.width)
	default:
		content = m.viewHome(m.width)
	}
	if m.err != "" && m.tab != TabCars {
		content = errorMsgStyle.Padding(0, 1).Render("Error: "+m.err) + "\n" + content
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, menu, content, footer)
}

func (m MainModel) viewMenu() string {
	active := m.tab.displayIndex()
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if i == active {
			parts[i] = tabActiveStyle.Render(t.label)
			continue
		}
		first, rest := t.label[:1], t.label[1:]
		parts[i] = tabKeyStyle.Render(first) + tabNormalStyle.Render(rest)
	}

	bar := parts[0]
	for _, p := range parts[1:] {
		bar += tabDividerStyle.Render(" | ") + p
	}

	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return menuStyle.Width(w).Render(bar)
}

func (m MainModel) viewFooter() string {
	hints := statusBarStyle.Width(m.width).Render(m.help.View(m.keys))
	count := fmt.Sprintf("garage · %d cars", len(m.records))
	line := statusBarStyle.Width(m.width).Align(lipgloss.Center).Render(count)
	return lipgloss.JoinVertical(lipgloss.Left, hints, line)
}
