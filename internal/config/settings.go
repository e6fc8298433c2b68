package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/ringdefense/internal/game"
)

// Default presentation values not owned by the game core.
const (
	DefaultPlayerName = "Player"
	DefaultEnemyScale = 0.06
)

// Settings is the YAML tuning file. Omitted keys keep their defaults.
type Settings struct {
	PlayerName       string  `yaml:"playerName"`
	MaxLives         int     `yaml:"maxLives"`
	SpawnInterval    float64 `yaml:"spawnInterval"`
	SpawnRadius      float64 `yaml:"spawnRadius"`
	EnemyHeight      float64 `yaml:"enemyHeight"`
	EnemySpeed       float64 `yaml:"enemySpeed"`
	EnemyScale       float64 `yaml:"enemyScale"` // Visual size of an enemy in local units
	ArrivalThreshold float64 `yaml:"arrivalThreshold"`
	HitScoreValue    int     `yaml:"hitScoreValue"`
	Seed             int64   `yaml:"seed"`
}

// DefaultSettings returns the built-in tuning.
func DefaultSettings() Settings {
	cfg := game.DefaultConfig()
	return Settings{
		PlayerName:       DefaultPlayerName,
		MaxLives:         cfg.MaxLives,
		SpawnInterval:    cfg.SpawnInterval,
		SpawnRadius:      cfg.SpawnRadius,
		EnemyHeight:      cfg.EnemyHeight,
		EnemySpeed:       cfg.EnemySpeed,
		EnemyScale:       DefaultEnemyScale,
		ArrivalThreshold: cfg.ArrivalThreshold,
		HitScoreValue:    cfg.HitScoreValue,
	}
}

// LoadSettings reads a YAML file on top of the defaults and validates the result.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &settings, nil
}

// LoadSettingsOrDefault loads path when it is non-empty, otherwise returns the defaults.
func LoadSettingsOrDefault(path string) (*Settings, error) {
	if path == "" {
		s := DefaultSettings()
		return &s, nil
	}
	return LoadSettings(path)
}

// Validate checks the presentation fields and the game tuning.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.PlayerName) == "" {
		return fmt.Errorf("playerName cannot be empty")
	}
	if s.EnemyScale <= 0 {
		return fmt.Errorf("enemyScale must be > 0, got %v", s.EnemyScale)
	}
	return s.GameConfig().Validate()
}

// GameConfig returns the core session configuration.
func (s *Settings) GameConfig() game.Config {
	return game.Config{
		MaxLives:         s.MaxLives,
		SpawnInterval:    s.SpawnInterval,
		SpawnRadius:      s.SpawnRadius,
		EnemyHeight:      s.EnemyHeight,
		EnemySpeed:       s.EnemySpeed,
		ArrivalThreshold: s.ArrivalThreshold,
		HitScoreValue:    s.HitScoreValue,
		Seed:             s.Seed,
	}
}

// DisplayName returns the player name cut to MaxUsernameLength runes.
func (s *Settings) DisplayName() string {
	return TruncateName(s.PlayerName)
}

// TruncateName cuts name to MaxUsernameLength runes.
func TruncateName(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > MaxUsernameLength {
		r = r[:MaxUsernameLength]
	}
	return string(r)
}
