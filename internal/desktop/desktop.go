// Package desktop is the windowed frontend: a top-down view of the play area
// with mouse and touch input.
package desktop

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/game"
	"github.com/tomz197/ringdefense/internal/view"
)

const (
	ringMargin   = 0.15
	baseRadius   = 10
	pickSlackPx  = 12 // Extra pixels around an enemy that still count as a hit
	defaultWidth = 720
)

var (
	colorBackground = color.RGBA{0x10, 0x12, 0x1c, 0xff}
	colorRing       = color.RGBA{0x4a, 0x55, 0x78, 0xff}
	colorBase       = color.RGBA{0x5f, 0xd7, 0xff, 0xff}
	colorEnemy      = color.RGBA{0xff, 0x5f, 0x87, 0xff}
	colorText       = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	colorWarning    = color.RGBA{0xff, 0xaf, 0x00, 0xff}
)

var hudFace = basicfont.Face7x13

// Game implements ebiten.Game around one session.
type Game struct {
	session  *game.Session
	gate     game.TrackingGate
	settings config.Settings
	player   string
	logger   *log.Logger

	width, height int
	projector     view.Projector
	markerVisible bool
}

// NewGame creates a game with the marker in view.
func NewGame(settings config.Settings, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	session, err := game.NewSession(settings.GameConfig(), game.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	g := &Game{
		session:  session,
		settings: settings,
		player:   settings.DisplayName(),
		logger:   logger,
	}
	g.resize(defaultWidth, defaultWidth)
	g.setMarker(true)
	return g, nil
}

// Update reads input and advances the session by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.setMarker(!g.markerVisible)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Restart()
	}

	var pointer *game.PointerEvent
	if x, y, ok := justPressed(); ok && g.markerVisible {
		radius := g.projector.Length(g.settings.EnemyScale) + pickSlackPx
		pointer = g.projector.Resolve(float64(x), float64(y), g.session.LiveEnemies(), radius)
	}

	g.session.Update(tickSeconds(), g.gate.Active(), pointer)
	return nil
}

// justPressed returns the position of this tick's pointer-down. A new touch
// wins over the mouse; holds and releases are ignored.
func justPressed() (x, y int, ok bool) {
	if touches := inpututil.AppendJustPressedTouchIDs(nil); len(touches) > 0 {
		x, y = ebiten.TouchPosition(touches[0])
		return x, y, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

func tickSeconds() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = config.TargetFPS
	}
	return 1 / float64(tps)
}

// Draw renders the ring, the center, the enemies and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s := g.session
	if g.markerVisible {
		p := g.projector
		cx, cy := float32(p.CenterX), float32(p.CenterY)
		vector.StrokeCircle(screen, cx, cy, float32(p.Length(g.settings.SpawnRadius)), 2, colorRing, true)
		vector.DrawFilledCircle(screen, cx, cy, baseRadius, colorBase, true)

		enemyRadius := float32(max(p.Length(g.settings.EnemyScale), 3))
		for _, e := range s.LiveEnemies() {
			x, y := p.ToScreen(e.Position)
			vector.DrawFilledCircle(screen, float32(x), float32(y), enemyRadius, colorEnemy, true)
		}
	} else {
		drawCentered(screen, "MARKER LOST - press M", g.width/2, g.height/2, colorWarning)
	}

	text.Draw(screen, fmt.Sprintf("Score: %d | Lives: %d | %s", s.Score(), s.Lives(), g.player),
		hudFace, 10, 20, colorText)

	if s.State() == game.StateGameOver {
		drawCentered(screen, fmt.Sprintf("GAME OVER - Score: %d", s.Score()), g.width/2, g.height/2-20, colorEnemy)
		drawCentered(screen, g.player, g.width/2, g.height/2, colorText)
		drawCentered(screen, "R restart", g.width/2, g.height/2+30, colorText)
	}
}

// drawCentered draws one line of text horizontally centered on cx with its baseline at y.
func drawCentered(screen *ebiten.Image, s string, cx, y int, clr color.Color) {
	w := text.BoundString(hudFace, s).Dx()
	text.Draw(screen, s, hudFace, cx-w/2, y, clr)
}

// Layout follows the window size so the ring always fits.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) resize(width, height int) {
	g.width, g.height = width, height
	g.projector = view.FitRing(float64(width), float64(height),
		g.settings.SpawnRadius+g.settings.EnemyScale, ringMargin)
}

func (g *Game) setMarker(visible bool) {
	g.markerVisible = visible
	status := game.StatusNoPose
	if visible {
		status = game.StatusTracked
	}
	if g.gate.Set(status) {
		g.logger.Info("tracking status changed", "status", status)
	}
}

// Run opens a window and plays until it is closed.
func Run(settings config.Settings, logger *log.Logger) error {
	g, err := NewGame(settings, logger)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(defaultWidth, defaultWidth)
	ebiten.SetWindowTitle("Ring Defense")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	// RunGame returns nil when Update returns ebiten.Termination.
	return ebiten.RunGame(g)
}
