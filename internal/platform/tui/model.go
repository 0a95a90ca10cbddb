package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake/internal/core"
	"github.com/vovakirdan/snake/internal/games/snake"
	"github.com/vovakirdan/snake/internal/registry"
)

// RunSaver persists finished sessions. *storage.Store implements it.
type RunSaver interface {
	SaveRun(rec snake.Recording) (string, error)
}

// recorder is implemented by games that can journal a session for replay.
type recorder interface {
	Recording() (snake.Recording, bool)
}

// debugStater is implemented by games that can describe their full state.
type debugStater interface {
	DebugState() string
}

// Options configures a game Model.
type Options struct {
	Store  RunSaver    // May be nil
	Logger *log.Logger // May be nil
	// Embedded models report back instead of quitting the program.
	Embedded bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      RunSaver
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	embedded   bool
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current session has been journaled
	lastRunID  string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		embedded:   opts.Embedded,
	}
}

// playHeight leaves the last terminal line for the help bar.
func playHeight(h int) int {
	return max(h-1, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keyMapper.Keys().Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case msg.String() == "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The board keeps its size;
// the game renders a notice when the terminal is too small.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart starts a new session to journal
	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
	}

	if m.gameState.GameOver && !m.runSaved {
		if d, ok := m.game.(debugStater); ok {
			m.logger.Debug("game ended", "game", m.game.ID(), "state", d.DebugState())
		}
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun journals the finished session. Failures are logged, play goes on.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	r, ok := m.game.(recorder)
	if !ok {
		return
	}
	rec, ok := r.Recording()
	if !ok {
		return
	}

	id, err := m.store.SaveRun(rec)
	if err != nil {
		m.logger.Warn("could not save run", "game", rec.GameID, "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Debug("run saved", "id", id, "length", rec.Length, "outcome", rec.Phase)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// LastRunID returns the id of the most recently journaled run, if any.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	opts.Embedded = false
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
