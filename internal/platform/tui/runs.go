package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake/internal/storage"
)

// Run browser layout constants
const (
	maxRuns      = 100 // Max runs to load
	allGamesName = "All boards"
)

// RunLister reads the run journal. *storage.Store implements it.
type RunLister interface {
	RecentRuns(limit int) ([]storage.Run, error)
}

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Select, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next board"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing the run journal.
type RunsModel struct {
	all      []storage.Run
	runs     []storage.Run // all, filtered by the current board
	filters  []string      // "" means every board
	filter   int
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	selected string
	quitting bool
}

// NewRunsModel loads recent runs and builds the browser.
func NewRunsModel(store RunLister, width, height int) RunsModel {
	h := help.New()
	h.Width = width

	m := RunsModel{
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	if store != nil {
		m.all, m.loadErr = store.RecentRuns(maxRuns)
	}

	m.filters = []string{""}
	seen := make(map[string]bool)
	for _, r := range m.all {
		if !seen[r.GameID] {
			seen[r.GameID] = true
			m.filters = append(m.filters, r.GameID)
		}
	}

	m.table = m.createTable()
	m.applyFilter()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Board", Width: 12},
		{Title: "Length", Width: 7},
		{Title: "Moves", Width: 7},
		{Title: "Outcome", Width: 11},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// applyFilter rebuilds the visible rows for the current board filter.
func (m *RunsModel) applyFilter() {
	game := m.filters[m.filter]
	m.runs = nil
	for _, r := range m.all {
		if game == "" || r.GameID == game {
			m.runs = append(m.runs, r)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.ShortID(),
			r.GameID,
			fmt.Sprintf("%d", r.Length),
			fmt.Sprintf("%d", r.Ticks),
			r.Outcome.String(),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.runs) > 0 {
				m.selected = m.runs[m.table.Cursor()].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	board := allGamesName
	if name := m.filters[m.filter]; name != "" {
		board = name
	}
	b.WriteString(centerText(titleStyle.Render("RECENT RUNS - "+board), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render(fmt.Sprintf("Could not load runs:\n%v", m.loadErr))
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nFinish a game to record one!")
	}
	return m.table.View()
}

// Selected returns the id of the run chosen for replay, or "".
func (m RunsModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user closed the browser.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBrowser shows the run journal and returns the id picked for
// replay, or "" if the user quit.
func RunRunsBrowser(store RunLister, width, height int) (string, error) {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
