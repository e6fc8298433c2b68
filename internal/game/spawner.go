package game

import (
	"math"
	"math/rand"
	"time"
)

// RandSource is the randomness the scheduler draws spawn angles from.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewRand returns a seeded generator. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SpawnScheduler decides when an enemy is due and where it appears.
type SpawnScheduler struct {
	rng RandSource
}

// NewSpawnScheduler creates a scheduler drawing from rng.
func NewSpawnScheduler(rng RandSource) *SpawnScheduler {
	return &SpawnScheduler{rng: rng}
}

// ShouldSpawn reports whether the accumulated timer has passed the interval.
// Equality does not spawn.
func (s *SpawnScheduler) ShouldSpawn(timer, interval float64) bool {
	return timer > interval
}

// PlaceNew returns a point on the circle of the given radius at the given height,
// at an angle drawn uniformly from [0°, 360°).
func (s *SpawnScheduler) PlaceNew(radius, height float64) Vec3 {
	degrees := s.rng.Float64() * 360
	angle := degrees * math.Pi / 180
	return Vec3{
		X: math.Cos(angle) * radius,
		Y: height,
		Z: math.Sin(angle) * radius,
	}
}
