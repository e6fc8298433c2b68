package game

// EventType identifies a kind of SessionEvent.
type EventType string

const (
	EventEnemyCreated EventType = "enemy-created"
	EventEnemyRemoved EventType = "enemy-removed"
	EventLifeLost     EventType = "life-lost"
	EventScoreChanged EventType = "score-changed"
	EventGameOver     EventType = "game-over"
)

// RemovalReason says why an enemy left the set.
type RemovalReason string

const (
	RemovedHit     RemovalReason = "hit"
	RemovedArrived RemovalReason = "arrived"
	RemovedCleared RemovalReason = "cleared" // Destroyed by Restart
)

// SessionEvent is one observable change produced by the session.
// Only the fields relevant to Type are set.
type SessionEvent struct {
	Type     EventType
	Enemy    EnemyID
	Position Vec3          // Enemy position for created/removed events
	Reason   RemovalReason // For EventEnemyRemoved
	Score    int           // Score after the change
	Lives    int           // Lives after the change
}
