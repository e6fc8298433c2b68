package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Default tuning.
const (
	DefaultMaxLives         = 3
	DefaultSpawnInterval    = 1.5  // seconds
	DefaultSpawnRadius      = 0.45 // marker-local units
	DefaultEnemyHeight      = 0.04
	DefaultEnemySpeed       = 0.08 // units per second
	DefaultArrivalThreshold = 0.04
	DefaultHitScoreValue    = 10
)

// Config holds the immutable tuning of one session.
type Config struct {
	MaxLives         int
	SpawnInterval    float64 // Seconds between spawns while tracking is active
	SpawnRadius      float64 // Radius of the spawn ring around the origin
	EnemyHeight      float64 // Fixed y of every spawned enemy
	EnemySpeed       float64 // Horizontal distance per second
	ArrivalThreshold float64 // Horizontal distance below which an enemy has arrived
	HitScoreValue    int
	Seed             int64 // PRNG seed for spawn placement; 0 seeds from the clock
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		MaxLives:         DefaultMaxLives,
		SpawnInterval:    DefaultSpawnInterval,
		SpawnRadius:      DefaultSpawnRadius,
		EnemyHeight:      DefaultEnemyHeight,
		EnemySpeed:       DefaultEnemySpeed,
		ArrivalThreshold: DefaultArrivalThreshold,
		HitScoreValue:    DefaultHitScoreValue,
	}
}

// Validate reports the first violated constraint, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.MaxLives <= 0:
		return fmt.Errorf("%w: maxLives must be > 0, got %d", ErrInvalidConfig, c.MaxLives)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawnInterval must be > 0, got %v", ErrInvalidConfig, c.SpawnInterval)
	case c.SpawnRadius <= 0:
		return fmt.Errorf("%w: spawnRadius must be > 0, got %v", ErrInvalidConfig, c.SpawnRadius)
	case c.EnemySpeed < 0:
		return fmt.Errorf("%w: enemySpeed must be >= 0, got %v", ErrInvalidConfig, c.EnemySpeed)
	case c.ArrivalThreshold < 0:
		return fmt.Errorf("%w: arrivalThreshold must be >= 0, got %v", ErrInvalidConfig, c.ArrivalThreshold)
	case c.HitScoreValue < 0:
		return fmt.Errorf("%w: hitScoreValue must be >= 0, got %d", ErrInvalidConfig, c.HitScoreValue)
	}
	return nil
}
