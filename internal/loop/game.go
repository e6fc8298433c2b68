package loop

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/draw"
	"github.com/tomz197/ringdefense/internal/game"
	"github.com/tomz197/ringdefense/internal/input"
	"github.com/tomz197/ringdefense/internal/view"
)

// ringMargin is the fraction of the half view left free around the spawn ring.
const ringMargin = 0.15

// Game is one terminal player's session plus the adapters feeding it: the
// simulated marker for tracking and the mouse for hits.
type Game struct {
	session   *game.Session
	gate      game.TrackingGate
	settings  config.Settings
	player    string
	logger    *log.Logger
	canvas    *draw.Canvas
	projector view.Projector

	markerVisible bool
	running       bool
}

// NewGame creates a game drawing into canvas. The marker starts visible.
// An empty player falls back to the configured name.
func NewGame(settings config.Settings, player string, canvas *draw.Canvas, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	session, err := game.NewSession(settings.GameConfig(), game.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if player == "" {
		player = settings.DisplayName()
	}

	g := &Game{
		session:  session,
		settings: settings,
		player:   config.TruncateName(player),
		logger:   logger,
		canvas:   canvas,
		projector: view.FitRing(canvas.LogicalWidth(), canvas.LogicalHeight(),
			settings.SpawnRadius+settings.EnemyScale, ringMargin),
		running: true,
	}
	g.setMarker(true)
	return g, nil
}

// Step applies one frame of input and advances the session by elapsed seconds.
func (g *Game) Step(in input.Input, elapsed float64) []game.SessionEvent {
	if in.Quit || in.Closed {
		g.running = false
		return nil
	}
	if in.ToggleMarker {
		g.setMarker(!g.markerVisible)
	}
	if in.Restart {
		g.session.Restart()
	}

	var pointer *game.PointerEvent
	if in.Press != nil {
		pointer = g.resolvePress(*in.Press)
	}
	return g.session.Update(elapsed, g.gate.Active(), pointer)
}

// resolvePress maps a terminal cell to the enemy under it, using the enemy set
// that was on screen when the player clicked.
func (g *Game) resolvePress(p input.Press) *game.PointerEvent {
	x, y, ok := g.canvas.TerminalToLogical(p.Col, p.Row)
	if !ok || !g.markerVisible {
		return nil
	}
	radius := max(config.PickRadius, g.projector.Length(g.settings.EnemyScale))
	return g.projector.Resolve(x, y, g.session.LiveEnemies(), radius)
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

// Session returns the underlying session.
func (g *Game) Session() *game.Session { return g.session }

// Player returns the name shown in the HUD.
func (g *Game) Player() string { return g.player }

// MarkerVisible reports whether the simulated marker is in view.
func (g *Game) MarkerVisible() bool { return g.markerVisible }

// Running reports whether the player is still connected.
func (g *Game) Running() bool { return g.running }
