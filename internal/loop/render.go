package loop

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/ringdefense/internal/draw"
	"github.com/tomz197/ringdefense/internal/game"
)

// baseRadius is the logical radius of the defended center.
const baseRadius = 2.0

// styles holds the HUD styles for one output. SSH sessions get their own
// renderer so color detection follows the client terminal.
type styles struct {
	hud      lipgloss.Style
	banner   lipgloss.Style
	warning  lipgloss.Style
	subtitle lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		hud: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		banner: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF5F87")).
			Padding(1, 4).
			Align(lipgloss.Center).
			Bold(true),
		warning:  r.NewStyle().Foreground(lipgloss.Color("#FFAF00")).Bold(true),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
	}
}

// hudText is the status line: score, lives and player.
func hudText(score, lives int, player string) string {
	return fmt.Sprintf("Score: %d | Lives: %d | %s", score, lives, player)
}

// gameOverText is the banner body shown once the last life is gone.
func gameOverText(score int, player string) string {
	return fmt.Sprintf("GAME OVER - Score: %d\n%s\n\nR restart   Q quit", score, player)
}

// drawWorld draws the ring, the center and every live enemy onto the canvas.
// Nothing is anchored while the marker is out of view.
func drawWorld(g *Game, canvas *draw.Canvas) {
	canvas.Clear()
	if !g.markerVisible {
		return
	}

	p := g.projector
	center := draw.Point{X: p.CenterX, Y: p.CenterY}
	canvas.DrawCircle(center, p.Length(g.settings.SpawnRadius))
	canvas.FillCircle(center, baseRadius)

	enemyRadius := p.Length(g.settings.EnemyScale)
	for _, e := range g.session.LiveEnemies() {
		x, y := p.ToScreen(e.Position)
		canvas.FillCircle(draw.Point{X: x, Y: y}, enemyRadius)
	}
}

// drawUI writes the text overlays on top of the rendered canvas.
func drawUI(g *Game, st styles, cw *draw.ChunkWriter, canvas *draw.Canvas, inactive bool) {
	s := g.session
	cw.WriteAt(2, 1, st.hud.Render(hudText(s.Score(), s.Lives(), g.player)))

	width := canvas.TerminalWidth()
	height := canvas.TerminalHeight()

	if !g.markerVisible {
		msg := st.warning.Render("MARKER LOST - press M to show it again")
		cw.WriteAt(centerCol(width, msg), height/2, msg)
	}

	if s.State() == game.StateGameOver {
		box := st.banner.Render(gameOverText(s.Score(), g.player))
		top := max(1, (height-lipgloss.Height(box))/2+1)
		cw.WriteLinesAt(centerCol(width, box), top, box)
	}

	if inactive {
		msg := st.warning.Render("Inactive - press any key or you will be disconnected")
		cw.WriteAt(centerCol(width, msg), height, msg)
	} else {
		help := st.subtitle.Render("click enemies | M marker | R restart | Q quit")
		cw.WriteAt(centerCol(width, help), height, help)
	}
}

// centerCol returns the 1-based column that centers text of the block's width.
func centerCol(width int, block string) int {
	return max(1, (width-lipgloss.Width(block))/2+1)
}
