// Package loop runs the terminal frontend: Input → Update → Draw at a fixed frame rate.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/draw"
	"github.com/tomz197/ringdefense/internal/input"
)

// Options configures a terminal run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Settings     *config.Settings // Defaults when nil
	PlayerName   string           // Overrides Settings.PlayerName when set
	Logger       *log.Logger      // Discards when nil
}

// Run plays one session on the terminal behind r and w until the player quits
// or the reader closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	settings := config.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	cw := draw.NewChunkWriter(w, offsetCol, offsetRow)

	g, err := NewGame(settings, opts.PlayerName, canvas, logger)
	if err != nil {
		return err
	}
	st := newStyles(w)
	stream := input.StartStream(r)
	defer stream.Close()

	draw.HideCursor(w)
	input.WriteMouseMode(w, true)
	defer func() {
		input.WriteMouseMode(w, false)
		draw.ShowCursor(w)
		draw.ClearScreen(w)
	}()
	draw.ClearScreen(w)

	logger.Info("game started", "player", g.Player())
	lastTime := time.Now()
	lastInput := lastTime

	for g.Running() {
		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime).Seconds(), config.MaxFrameDelta)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		inactive := false
		if len(in.Pressed) > 0 {
			lastInput = frameStart
		} else if idle := frameStart.Sub(lastInput).Seconds(); idle > config.InactivityDisconnectUser {
			logger.Info("disconnecting inactive player", "player", g.Player())
			break
		} else if idle > config.InactivityWarnUser {
			inactive = true
		}

		// ===== UPDATE PHASE =====
		updateScreen(canvas, cw, w, termSizeFunc)
		g.Step(in, delta)
		if !g.Running() {
			break
		}

		// ===== DRAW PHASE =====
		drawWorld(g, canvas)
		draw.ClearScreen(cw)
		canvas.RenderBorder(cw)
		canvas.Render(cw)
		drawUI(g, st, cw, canvas, inactive)
		if err := cw.Flush(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	logger.Info("game ended", "player", g.Player(), "score", g.Session().Score())
	return nil
}

// updateScreen follows terminal resizes, clamping to the max render resolution.
func updateScreen(canvas *draw.Canvas, cw *draw.ChunkWriter, w io.Writer, termSizeFunc draw.TermSizeFunc) {
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != canvas.TerminalWidth() || renderHeight != canvas.TerminalHeight() ||
		offsetCol != canvas.OffsetCol() || offsetRow != canvas.OffsetRow() {
		draw.ClearScreen(w)
	}

	canvas.Resize(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the offset that centers the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max(termWidth-renderWidth, 0) / 2
	offsetRow = max(termHeight-renderHeight, 0) / 2
	return
}
