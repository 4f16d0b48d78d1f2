package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/petr-muller/tixboard/internal/app"
	"github.com/petr-muller/tixboard/internal/board"
)

type keyMap struct {
	Display   key.Binding
	GroupNext key.Binding
	GroupPrev key.Binding
	Order     key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Display, k.GroupNext, k.Order, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Display, k.GroupNext, k.GroupPrev, k.Order, k.Quit},
	}
}

var keys = keyMap{
	Display:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "display")),
	GroupNext: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "next grouping")),
	GroupPrev: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "previous grouping")),
	Order:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "ordering")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "card up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "card down")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// loadedMsg carries the result of the single startup fetch
type loadedMsg board.Dataset

// Model is the interactive board
type Model struct {
	ctx      context.Context
	app      *app.App
	spinner  spinner.Model
	help     help.Model
	loading  bool
	showMenu bool
	focus    Focus
	width    int
	height   int
	notice   string
}

// NewModel creates the board model. The data is fetched once when the
// program starts.
func NewModel(ctx context.Context, a *app.App) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:     ctx,
		app:     a,
		spinner: s,
		help:    help.New(),
		loading: true,
	}
}

// Init starts the fetch and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg(m.app.Fetch(m.ctx))
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		m.app.Replace(board.Dataset(msg))
		m.loading = false
		m.clampFocus()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Display):
		m.showMenu = !m.showMenu
	case key.Matches(msg, keys.GroupNext):
		m.applyPreference(m.app.CycleGroup(true))
		m.focus = Focus{}
	case key.Matches(msg, keys.GroupPrev):
		m.applyPreference(m.app.CycleGroup(false))
		m.focus = Focus{}
	case key.Matches(msg, keys.Order):
		m.applyPreference(m.app.CycleSort())
	case key.Matches(msg, keys.Left):
		m.focus.Column--
		m.focus.Row = 0
	case key.Matches(msg, keys.Right):
		m.focus.Column++
		m.focus.Row = 0
	case key.Matches(msg, keys.Up):
		m.focus.Row--
	case key.Matches(msg, keys.Down):
		m.focus.Row++
	}
	m.clampFocus()
	return m, nil
}

func (m *Model) applyPreference(err error) {
	if err != nil {
		logrus.WithError(err).Error("Cannot save display preferences")
		m.notice = "Cannot save display preferences"
	}
}

// clampFocus keeps the selection inside the current columns
func (m *Model) clampFocus() {
	columns := m.app.Columns()
	if len(columns) == 0 {
		m.focus = Focus{}
		return
	}
	m.focus.Column = max(0, min(m.focus.Column, len(columns)-1))
	m.focus.Row = max(0, min(m.focus.Row, len(columns[m.focus.Column].Tickets)-1))
}

// Focus returns the selected column and card
func (m Model) Focus() Focus {
	return m.focus
}

// Loading reports whether the startup fetch is still running
func (m Model) Loading() bool {
	return m.loading
}

// MenuVisible reports whether the display menu is open
func (m Model) MenuVisible() bool {
	return m.showMenu
}

// View renders the model
func (m Model) View() string {
	var s strings.Builder

	displayStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))
	s.WriteString(displayStyle.Render("≡ Display"))
	if m.loading {
		s.WriteString("  " + m.spinner.View() + " Loading tickets...")
	}
	s.WriteString("\n")

	if m.showMenu {
		s.WriteString(renderMenu(m.app.Preferences()))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	prefs := m.app.Preferences()
	s.WriteString(RenderBoard(prefs.Group, m.app.Columns(), m.app.Card, m.width, m.focus))
	s.WriteString("\n")

	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s.WriteString(noticeStyle.Render(m.notice))
		s.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().MarginTop(1)
	s.WriteString(helpStyle.Render(m.help.View(keys)))

	return s.String()
}

func renderMenu(prefs board.Preferences) string {
	menuStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Grouping:"), prefs.Group.Title()),
		fmt.Sprintf("%s %s", labelStyle.Render("Ordering:"), prefs.Sort.Title()),
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}
