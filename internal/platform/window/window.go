// Package window runs the snake game in a desktop window using ebiten.
package window

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/snake/internal/config"
	"github.com/vovakirdan/snake/internal/core"
	"github.com/vovakirdan/snake/internal/games/snake"
)

// Debug font metrics used to center overlay text.
const (
	glyphW = 6
	glyphH = 16
)

// RunSaver persists finished sessions. *storage.Store implements it.
type RunSaver interface {
	SaveRun(rec snake.Recording) (string, error)
}

// Options configures the window.
type Options struct {
	Scale   int // Window pixels per board pixel
	Palette config.PaletteConfig
	Store   RunSaver    // May be nil
	Logger  *log.Logger // May be nil
}

// keyBindings maps keys to actions. Arrows and WASD steer.
var keyBindings = map[ebiten.Key]core.Action{
	ebiten.KeyArrowUp:    core.ActionUp,
	ebiten.KeyW:          core.ActionUp,
	ebiten.KeyArrowDown:  core.ActionDown,
	ebiten.KeyS:          core.ActionDown,
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyA:          core.ActionLeft,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyD:          core.ActionRight,
	ebiten.KeyR:          core.ActionRestart,
	ebiten.KeyP:          core.ActionPause,
	ebiten.KeyEscape:     core.ActionQuit,
	ebiten.KeyQ:          core.ActionQuit,
}

// Window implements ebiten.Game around a snake game.
type Window struct {
	game     *snake.Game
	palette  config.Palette
	store    RunSaver
	logger   *log.Logger
	input    core.InputFrame
	keys     []ebiten.Key
	text     *ebiten.Image // Scratch buffer for tinted debug text
	runSaved bool
}

// New creates a window for game. The game must already be Reset.
func New(game *snake.Game, opts Options) (*Window, error) {
	palette, err := opts.Palette.Colors()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Window{
		game:    game,
		palette: palette,
		store:   opts.Store,
		logger:  logger,
		input:   core.NewInputFrame(),
	}, nil
}

// Update steps the game once per ebiten tick. Keys pressed within the same
// tick are applied in the order ebiten reports them, so the last direction
// reported wins.
func (w *Window) Update() error {
	w.input.Clear()
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		action, ok := keyBindings[k]
		if !ok {
			continue
		}
		if action == core.ActionQuit {
			return ebiten.Termination
		}
		w.input.Set(action)
	}

	wasOver := w.game.Phase().Terminal()
	w.game.Step(w.input)
	over := w.game.Phase().Terminal()

	if wasOver && !over {
		w.runSaved = false
	}
	if over && !w.runSaved {
		w.logger.Debug("game ended", "state", w.game.DebugState())
		w.saveRun()
		w.runSaved = true
	}
	return nil
}

// saveRun journals the finished session. Failures are logged, play goes on.
func (w *Window) saveRun() {
	if w.store == nil {
		return
	}
	rec, ok := w.game.Recording()
	if !ok {
		return
	}
	id, err := w.store.SaveRun(rec)
	if err != nil {
		w.logger.Warn("could not save run", "game", rec.GameID, "error", err)
		return
	}
	w.logger.Debug("run saved", "id", id, "length", rec.Length, "outcome", rec.Phase)
}

// Draw paints the background, food, snake and any overlay message.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.palette.Background)

	f := w.game.Frame()
	tile := float32(f.Board.Tile)

	if f.HasFood {
		vector.DrawFilledRect(screen, float32(f.Food.X), float32(f.Food.Y), tile, tile, w.palette.Food, false)
	}
	for i := len(f.Snake) - 1; i >= 0; i-- {
		seg := f.Snake[i]
		c := w.palette.Snake
		if i == 0 {
			c = w.palette.Head
		}
		vector.DrawFilledRect(screen, float32(seg.X), float32(seg.Y), tile, tile, c, false)
	}

	w.drawText(screen, fmt.Sprintf("Length: %d", f.Length()), 4, 2)

	if msg := f.Message(); msg != "" {
		x := (f.Board.Width - len(msg)*glyphW) / 2
		y := (f.Board.Height - glyphH) / 2
		w.drawText(screen, msg, max(x, 0), y)
	}
}

// drawText prints msg at (x, y) in the palette's text color. The debug font
// is white, so it is printed to a scratch image and tinted on the way out.
func (w *Window) drawText(screen *ebiten.Image, msg string, x, y int) {
	width := max(len(msg)*glyphW, screen.Bounds().Dx())
	if w.text == nil || w.text.Bounds().Dx() < width {
		w.text = ebiten.NewImage(width, glyphH)
	}
	w.text.Clear()
	ebitenutil.DebugPrint(w.text, msg)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(w.palette.Text)
	screen.DrawImage(w.text, op)
}

// Layout keeps a fixed logical size equal to the board.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := w.game.Board()
	return b.Width, b.Height
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(game *snake.Game, cfg core.RuntimeConfig, opts Options) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	scale := max(opts.Scale, 1)

	game.Reset(cfg)
	w, err := New(game, opts)
	if err != nil {
		return err
	}

	b := game.Board()
	ebiten.SetWindowSize(b.Width*scale, b.Height*scale)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
