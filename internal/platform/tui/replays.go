package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/pulse-runner/internal/registry"
	"github.com/vovakirdan/pulse-runner/internal/storage"
)

// Replay browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the mode sidebar
	sidebarWidth       = 24  // Width of the mode sidebar
	maxReplays         = 100 // Max replays to load
)

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Play     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.NextMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.NextMode, k.PrevMode, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// modeFilter is one entry of the mode sidebar. An empty ID shows all modes.
type modeFilter struct {
	ID    string
	Title string
}

// ReplayBrowserModel lists stored replays in a table.
type ReplayBrowserModel struct {
	modes       []modeFilter
	modeCursor  int
	store       *storage.Store
	replays     []storage.ReplayInfo
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ReplayKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	chosen      string // ID of the replay to watch
	showSidebar bool
}

// NewReplayBrowserModel creates the browser and loads the newest replays.
func NewReplayBrowserModel(store *storage.Store, width, height int) ReplayBrowserModel {
	modes := []modeFilter{{Title: "All modes"}}
	for _, g := range registry.List() {
		modes = append(modes, modeFilter{ID: g.ID, Title: g.Title})
	}

	h := help.New()
	h.ShowAll = false

	m := ReplayBrowserModel{
		modes:       modes,
		store:       store,
		keys:        DefaultReplayKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized for the current window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Mode", Width: 16},
		{Title: "Player", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "When", Width: 16},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth < 70 {
		// Drop the player column on narrow terminals.
		columns = append(columns[:2], columns[3:]...)
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays loads replays for the selected mode.
func (m *ReplayBrowserModel) loadReplays() {
	m.replays, m.loadErr = nil, nil
	if m.store != nil {
		m.replays, m.loadErr = m.store.ListReplays(m.modes[m.modeCursor].ID, maxReplays)
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded replays.
func (m *ReplayBrowserModel) updateTableRows() {
	wide := len(m.table.Columns()) == 5

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		row := table.Row{r.ID.String()[:8], r.GameID}
		if wide {
			row = append(row, r.User)
		}
		row = append(row,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			humanize.Time(r.CreatedAt),
		)
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play):
			if i := m.table.Cursor(); i >= 0 && i < len(m.replays) {
				m.chosen = m.replays[i].ID.String()
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextMode):
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
			m.loadReplays()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.modeCursor = (m.modeCursor - 1 + len(m.modes)) % len(m.modes)
			m.loadReplays()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack || m.chosen != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208"))

	title := fmt.Sprintf("REPLAYS - %s", m.modes[m.modeCursor].Title)
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the mode sidebar next to the table.
func (m ReplayBrowserModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, mode := range m.modes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.modeCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := mode.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	left := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	right := panelStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout renders the current mode above the table.
func (m ReplayBrowserModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.modes[m.modeCursor].Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or an explanation why it is empty.
func (m ReplayBrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Replay storage is unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load replays:\n" + m.loadErr.Error())
	case len(m.replays) == 0:
		return emptyStyle.Render("No replays recorded yet.\nEvery run you play is saved here.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// Chosen returns the ID of the replay to watch, or "".
func (m ReplayBrowserModel) Chosen() string {
	return m.chosen
}

// BrowserResult is the outcome of the replay browser.
type BrowserResult struct {
	ReplayID string // Set when a replay was picked
	Back     bool
	Quit     bool
}

// RunReplayBrowser runs the replay browser screen.
func RunReplayBrowser(store *storage.Store, width, height int) (BrowserResult, error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return BrowserResult{}, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return BrowserResult{Quit: true}, nil
	}
	return BrowserResult{
		ReplayID: m.Chosen(),
		Back:     m.IsGoingBack(),
		Quit:     m.IsQuitting(),
	}, nil
}
