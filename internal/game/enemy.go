// Package game implements the defend-the-center session: enemies spawn on a ring,
// walk toward the origin, and cost a life on arrival unless the player taps them first.
//
// The package is engine-free. Rendering, marker tracking, input polling and ray
// casting live in adapters that feed already-resolved signals into Session.Update.
package game

import "github.com/tomz197/ringdefense/internal/physics"

// EnemyID identifies an enemy for the lifetime of a session. Zero is never assigned.
type EnemyID uint64

// Vec3 is a point in the marker-local frame. The origin is the convergence target
// and y is height above the marker plane.
type Vec3 struct {
	X, Y, Z float64
}

// Enemy is one live attacker.
type Enemy struct {
	ID               EnemyID
	Position         Vec3
	Speed            float64 // Horizontal distance per second
	ArrivalThreshold float64
}

// NewEnemy creates an enemy at pos using the config's speed and arrival threshold.
func NewEnemy(id EnemyID, pos Vec3, cfg Config) *Enemy {
	return &Enemy{
		ID:               id,
		Position:         pos,
		Speed:            cfg.EnemySpeed,
		ArrivalThreshold: cfg.ArrivalThreshold,
	}
}

// Advance moves the enemy straight toward (0, y, 0) by at most Speed*elapsed.
// Height is left untouched and the enemy never passes the axis.
func (e *Enemy) Advance(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	e.Position.X, e.Position.Z = physics.MoveTowardsOrigin(e.Position.X, e.Position.Z, e.Speed*elapsed)
}

// HorizontalDistance returns the enemy's distance to the vertical axis through the origin.
func (e *Enemy) HorizontalDistance() float64 {
	return physics.HorizontalLength(e.Position.X, e.Position.Z)
}

// HasArrived reports whether the enemy is strictly closer than its arrival threshold.
func (e *Enemy) HasArrived() bool {
	return e.HorizontalDistance() < e.ArrivalThreshold
}

// EnemySnapshot is a read-only copy of an enemy for frontends and hit testing.
type EnemySnapshot struct {
	ID       EnemyID
	Position Vec3
}

// Snapshot copies the public state of the enemy.
func (e *Enemy) Snapshot() EnemySnapshot {
	return EnemySnapshot{ID: e.ID, Position: e.Position}
}
