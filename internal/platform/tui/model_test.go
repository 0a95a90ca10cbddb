package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake/internal/core"
	"github.com/vovakirdan/snake/internal/games/snake"
	"github.com/vovakirdan/snake/internal/storage"
)

type fakeSaver struct {
	saved []snake.Recording
	err   error
}

func (f *fakeSaver) SaveRun(rec snake.Recording) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, rec)
	return "run-" + string(rune('a'+len(f.saved)-1)), nil
}

// tinyGame is a three-tile board where the snake hits the wall within a
// few moves.
func tinyGame(t *testing.T) *snake.Game {
	t.Helper()
	opts := snake.DefaultOptions()
	opts.Board = snake.Board{Width: 60, Height: 20, Tile: 20}
	g, err := snake.New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func tick(m Model, n int) Model {
	for range n {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func newTestModel(t *testing.T, saver RunSaver, embedded bool) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewModel(tinyGame(t), cfg, Options{Store: saver, Embedded: embedded})
	m.Init()
	return m
}

func TestModelSavesRunOnce(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, saver, false)

	m = tick(m, 120)
	if !m.State().GameOver {
		t.Fatal("snake should have hit the wall")
	}
	m = tick(m, 60)

	if len(saver.saved) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(saver.saved))
	}
	if m.LastRunID() != "run-a" {
		t.Errorf("LastRunID = %q", m.LastRunID())
	}
	rec := saver.saved[0]
	if rec.Seed != 7 || rec.GameID != snake.IDClassic || rec.Ticks == 0 {
		t.Errorf("unexpected recording %+v", rec)
	}
	if rec.Board != (snake.Board{Width: 60, Height: 20, Tile: 20}) {
		t.Errorf("recording should carry the board, got %+v", rec.Board)
	}
}

func TestModelLogsFinalState(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewModel(tinyGame(t), cfg, Options{Logger: logger})
	m.Init()
	m = tick(m, 120)

	out := buf.String()
	if !strings.Contains(out, "game ended") || !strings.Contains(out, "Phase: game_over") {
		t.Errorf("expected final state in debug log, got %q", out)
	}
	if strings.Count(out, "game ended") != 1 {
		t.Errorf("final state should be logged once, got %q", out)
	}
}

func TestModelRestartJournalsNewRun(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, saver, false)

	m = tick(m, 120)
	m, _ = press(m, runeKey("r"))
	m = tick(m, 1)
	if m.State().GameOver {
		t.Fatal("restart should resume play")
	}

	m = tick(m, 120)
	if len(saver.saved) != 2 {
		t.Fatalf("expected 2 saved runs, got %d", len(saver.saved))
	}
	if saver.saved[0].Seed == saver.saved[1].Seed {
		t.Error("a restart should use a new seed")
	}
}

func TestModelStoreErrorKeepsPlaying(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newTestModel(t, saver, false)

	m = tick(m, 120)
	if m.LastRunID() != "" {
		t.Error("no run id expected after a failed save")
	}
	if m.IsQuitting() {
		t.Error("storage errors must not stop the game")
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := newTestModel(t, nil, false)
	m = tick(m, 120)
	if !m.State().GameOver {
		t.Fatal("snake should have hit the wall")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := newTestModel(t, nil, false)
	m, cmd := press(m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}

	m = newTestModel(t, nil, false)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() {
		t.Error("esc should quit a standalone game")
	}

	m = newTestModel(t, nil, true)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsQuitting() || !m.BackToMenu() {
		t.Error("esc should return to the picker when embedded")
	}
}

func TestModelViewIncludesHelp(t *testing.T) {
	m := newTestModel(t, nil, false)
	view := m.View()
	if !strings.Contains(view, "Length: 1") {
		t.Error("view should include the HUD")
	}
	if !strings.Contains(view, "restart") {
		t.Error("view should include the help bar")
	}
}

type fakeLister struct {
	runs []storage.Run
}

func (f fakeLister) RecentRuns(int) ([]storage.Run, error) {
	return f.runs, nil
}

func TestRunsModelSelectAndFilter(t *testing.T) {
	lister := fakeLister{runs: []storage.Run{
		{ID: "11111111-aaaa", GameID: snake.IDLarge, Length: 9, Outcome: snake.PhaseGameOver},
		{ID: "22222222-bbbb", GameID: snake.IDClassic, Length: 4, Outcome: snake.PhaseGameOver},
	}}
	m := NewRunsModel(lister, 100, 30)

	if len(m.runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if len(m.runs) != 1 || m.runs[0].GameID != snake.IDLarge {
		t.Errorf("filter should keep only %s runs, got %+v", snake.IDLarge, m.runs)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RunsModel)
	if m.Selected() != "11111111-aaaa" || cmd == nil {
		t.Errorf("enter should select the run, got %q", m.Selected())
	}
}

func TestRunsModelEmpty(t *testing.T) {
	m := NewRunsModel(fakeLister{}, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty journal should show a notice")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(RunsModel).Selected() != "" {
		t.Error("nothing to select in an empty journal")
	}
}

func TestPickerSelects(t *testing.T) {
	m := NewPickerModel(80, 24)
	if len(m.games) < 2 {
		t.Fatalf("expected both boards registered, got %d", len(m.games))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p := next.(PickerModel)
	if p.Selected() != m.games[1].ID {
		t.Errorf("Selected = %q, want %q", p.Selected(), m.games[1].ID)
	}
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60}, Options{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := next.(SessionModel)
	if !s.InGame() {
		t.Fatal("enter should start a game")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.InGame() {
		t.Error("esc should return to the picker")
	}

	next, cmd := s.Update(runeKey("q"))
	s = next.(SessionModel)
	if !s.quitting || cmd == nil {
		t.Error("q in the picker should end the session")
	}
}
