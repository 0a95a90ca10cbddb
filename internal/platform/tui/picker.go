package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake/internal/core"
	"github.com/vovakirdan/snake/internal/registry"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// PickerModel lets users choose which registered board to play.
type PickerModel struct {
	games     []registry.GameInfo
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string
	quitting  bool
}

// NewPickerModel creates a picker over all registered games.
func NewPickerModel(width, height int) PickerModel {
	return PickerModel{
		games:     registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.games) > 0 {
			m.selected = m.games[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the board list.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board:", m.width))
	b.WriteString("\n\n")

	for i, g := range m.games {
		line := fmt.Sprintf("  %s", g.Title)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %s", g.Title))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Play  |  Esc/Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen game id, or "" while choosing or after quit.
func (m PickerModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// RunPicker shows the board picker and returns the chosen game id.
// An empty id means the user quit.
func RunPicker(cfg core.RuntimeConfig) (string, error) {
	p := tea.NewProgram(
		NewPickerModel(cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
