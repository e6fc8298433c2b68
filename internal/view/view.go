// Package view projects the marker-local play area onto a flat screen and
// resolves pointer presses to enemies. It is the geometry layer the game core
// trusts for hit candidates.
package view

import (
	"math"

	"github.com/tomz197/ringdefense/internal/game"
	"github.com/tomz197/ringdefense/internal/physics"
)

// Projector maps local (x, z) coordinates to a top-down screen.
// Height is ignored: the camera looks straight down the y axis.
type Projector struct {
	CenterX, CenterY float64 // Screen position of the local origin
	Scale            float64 // Screen units per local unit
}

// FitRing returns a projector centered on a width x height screen that shows a
// ring of the given radius with margin (a fraction of the half extent) to spare.
func FitRing(width, height, radius, margin float64) Projector {
	half := math.Min(width, height) / 2
	scale := 1.0
	if radius > 0 {
		scale = half * (1 - margin) / radius
	}
	return Projector{
		CenterX: width / 2,
		CenterY: height / 2,
		Scale:   scale,
	}
}

// ToScreen projects a local position.
func (p Projector) ToScreen(pos game.Vec3) (x, y float64) {
	return p.CenterX + pos.X*p.Scale, p.CenterY + pos.Z*p.Scale
}

// ToLocal is the inverse of ToScreen on the ground plane.
func (p Projector) ToLocal(x, y float64) (lx, lz float64) {
	if p.Scale == 0 {
		return 0, 0
	}
	return (x - p.CenterX) / p.Scale, (y - p.CenterY) / p.Scale
}

// Length converts a local distance to screen units.
func (p Projector) Length(d float64) float64 {
	return d * p.Scale
}

// Pick returns the enemy nearest to the screen point among those whose projected
// position lies within radius of it. Equal distances go to the lowest id, so a
// press over overlapping enemies strikes exactly one.
func (p Projector) Pick(x, y float64, enemies []game.EnemySnapshot, radius float64) (game.EnemyID, bool) {
	var (
		best     game.EnemyID
		bestDist = math.Inf(1)
	)
	for _, e := range enemies {
		ex, ey := p.ToScreen(e.Position)
		if !physics.PointInCircle(x, y, ex, ey, radius) {
			continue
		}
		d := physics.DistanceSquared(x, y, ex, ey)
		if d < bestDist || (d == bestDist && e.ID < best) {
			best, bestDist = e.ID, d
		}
	}
	return best, best != 0
}

// Resolve builds the pointer event the core consumes for a press at (x, y).
// A press that misses still produces an event, with no candidate.
func (p Projector) Resolve(x, y float64, enemies []game.EnemySnapshot, radius float64) *game.PointerEvent {
	id, _ := p.Pick(x, y, enemies, radius)
	return &game.PointerEvent{ScreenX: x, ScreenY: y, Candidate: id}
}
