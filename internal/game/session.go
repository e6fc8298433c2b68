package game

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringdefense/internal/event"
)

// State is the session phase, derived from the remaining lives.
type State int

const (
	StateActive State = iota
	StateGameOver
)

func (s State) String() string {
	if s == StateGameOver {
		return "game-over"
	}
	return "active"
}

// Listener receives session events as they happen, including the removals
// produced by Restart.
type Listener = event.Listener[SessionEvent]

// ListenerFunc adapts a function to Listener.
type ListenerFunc = event.ListenerFunc[SessionEvent]

// Option customises a Session.
type Option func(*Session)

// WithRandSource replaces the config-seeded generator used for spawn angles.
func WithRandSource(rng RandSource) Option {
	return func(s *Session) {
		s.scheduler = NewSpawnScheduler(rng)
	}
}

// WithLogger sets the logger used for gameplay messages. Sessions log nothing by default.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one play-through: it owns the enemies, score, lives and spawn timer
// and advances them once per Update.
//
// A Session is not safe for concurrent use. Callers serialise Update and Restart.
type Session struct {
	cfg        Config
	scheduler  *SpawnScheduler
	resolver   HitResolver
	dispatcher *event.Dispatcher[EventType, SessionEvent]
	logger     *log.Logger

	enemies    map[EnemyID]*Enemy
	nextID     EnemyID
	score      int
	lives      int
	spawnTimer float64

	pending []SessionEvent // Events of the Update in progress
}

// NewSession validates cfg and returns an Active session with full lives.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:        cfg,
		dispatcher: event.NewDispatcher[EventType, SessionEvent](),
		logger:     log.New(io.Discard),
		enemies:    make(map[EnemyID]*Enemy),
		nextID:     1,
		lives:      cfg.MaxLives,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scheduler == nil {
		s.scheduler = NewSpawnScheduler(NewRand(cfg.Seed))
	}
	return s, nil
}

// Update advances the session by elapsed seconds.
//
// trackingIsActive gates spawning. pointer is the pointer-down of this frame, if any,
// carrying the enemy the external pick test struck. The returned events are also
// delivered to subscribed listeners. Once the session is over Update does nothing.
func (s *Session) Update(elapsed float64, trackingIsActive bool, pointer *PointerEvent) []SessionEvent {
	if s.State() == StateGameOver {
		return nil
	}
	if elapsed < 0 {
		elapsed = 0
	}
	s.pending = nil

	if trackingIsActive && s.lives > 0 {
		s.spawnTimer += elapsed
		if s.scheduler.ShouldSpawn(s.spawnTimer, s.cfg.SpawnInterval) {
			s.spawnAt(s.scheduler.PlaceNew(s.cfg.SpawnRadius, s.cfg.EnemyHeight))
			// The overshoot past the interval is dropped, not carried into the next one.
			s.spawnTimer = 0
		}
	}

	s.advanceEnemies(elapsed)

	if pointer != nil && s.lives > 0 {
		s.applyHit(pointer)
	}

	events := s.pending
	s.pending = nil
	return events
}

// Restart destroys every enemy and returns the session to Active with fresh
// score, lives and timer. Listeners get an EventEnemyRemoved with RemovedCleared
// for each destroyed enemy. Enemy ids keep counting up.
func (s *Session) Restart() {
	for _, id := range s.sortedIDs() {
		e := s.enemies[id]
		delete(s.enemies, id)
		s.dispatch(SessionEvent{
			Type:     EventEnemyRemoved,
			Enemy:    id,
			Position: e.Position,
			Reason:   RemovedCleared,
			Score:    s.score,
			Lives:    s.lives,
		})
	}
	s.score = 0
	s.lives = s.cfg.MaxLives
	s.spawnTimer = 0
	s.logger.Info("session restarted", "lives", s.lives)
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// State returns Active while lives remain, GameOver otherwise.
func (s *Session) State() State {
	if s.lives > 0 {
		return StateActive
	}
	return StateGameOver
}

// SpawnTimer returns the seconds accumulated toward the next spawn.
func (s *Session) SpawnTimer() float64 {
	return s.spawnTimer
}

// Config returns the session's configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// LiveEnemies returns a snapshot of the live enemies ordered by id.
func (s *Session) LiveEnemies() []EnemySnapshot {
	out := make([]EnemySnapshot, 0, len(s.enemies))
	for _, id := range s.sortedIDs() {
		out = append(out, s.enemies[id].Snapshot())
	}
	return out
}

// Subscribe registers l for events of type t.
func (s *Session) Subscribe(t EventType, l Listener) event.Token {
	return s.dispatcher.Subscribe(t, l)
}

// SubscribeAll registers l for every event type.
func (s *Session) SubscribeAll(l Listener) event.Token {
	return s.dispatcher.SubscribeAll(l)
}

// Unsubscribe cancels a subscription.
func (s *Session) Unsubscribe(tok event.Token) {
	s.dispatcher.Unsubscribe(tok)
}

// spawnAt adds an enemy at pos and records its creation.
func (s *Session) spawnAt(pos Vec3) *Enemy {
	e := NewEnemy(s.nextID, pos, s.cfg)
	s.nextID++
	s.enemies[e.ID] = e
	s.logger.Debug("enemy spawned", "id", e.ID, "x", pos.X, "y", pos.Y, "z", pos.Z)
	s.emit(SessionEvent{
		Type:     EventEnemyCreated,
		Enemy:    e.ID,
		Position: pos,
		Score:    s.score,
		Lives:    s.lives,
	})
	return e
}

// advanceEnemies moves every enemy and books arrivals. Enemies are visited in id
// order. Once the last life is gone, later arrivals in the same frame are still
// removed but no longer cost a life, so lives stop at zero.
func (s *Session) advanceEnemies(elapsed float64) {
	for _, id := range s.sortedIDs() {
		e := s.enemies[id]
		e.Advance(elapsed)
		if !e.HasArrived() {
			continue
		}

		delete(s.enemies, id)
		s.emit(SessionEvent{
			Type:     EventEnemyRemoved,
			Enemy:    id,
			Position: e.Position,
			Reason:   RemovedArrived,
			Score:    s.score,
			Lives:    s.lives,
		})

		if s.lives <= 0 {
			continue
		}
		s.lives--
		s.logger.Info("enemy reached the base", "id", id, "lives", s.lives)
		s.emit(SessionEvent{Type: EventLifeLost, Enemy: id, Score: s.score, Lives: s.lives})

		if s.lives <= 0 {
			s.logger.Info("game over", "score", s.score)
			s.emit(SessionEvent{Type: EventGameOver, Score: s.score, Lives: s.lives})
		}
	}
}

// applyHit removes the enemy the pointer struck, if any, and scores it.
func (s *Session) applyHit(pointer *PointerEvent) {
	id, ok := s.resolver.Resolve(pointer, s.enemies)
	if !ok {
		return
	}
	e := s.enemies[id]
	delete(s.enemies, id)
	s.score += s.cfg.HitScoreValue
	s.logger.Info("enemy destroyed", "id", id, "score", s.score)

	s.emit(SessionEvent{
		Type:     EventEnemyRemoved,
		Enemy:    id,
		Position: e.Position,
		Reason:   RemovedHit,
		Score:    s.score,
		Lives:    s.lives,
	})
	s.emit(SessionEvent{Type: EventScoreChanged, Enemy: id, Score: s.score, Lives: s.lives})
}

// emit records ev for the current Update and delivers it to listeners.
func (s *Session) emit(ev SessionEvent) {
	s.pending = append(s.pending, ev)
	s.dispatch(ev)
}

func (s *Session) dispatch(ev SessionEvent) {
	s.dispatcher.Dispatch(ev.Type, ev)
}

func (s *Session) sortedIDs() []EnemyID {
	ids := make([]EnemyID, 0, len(s.enemies))
	for id := range s.enemies {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
