// Package remote lets an external client drive a session over a websocket.
// The client owns the camera, tracking and ray casting and sends one frame
// message per rendered frame; the server replies with the resulting events.
package remote

import "encoding/json"

// ProtocolVersion is the hello version this server speaks.
const ProtocolVersion = 1

// Message types. Client to server: hello, frame, restart.
// Server to client: welcome, result, error.
const (
	MsgHello   = "hello"
	MsgFrame   = "frame"
	MsgRestart = "restart"
	MsgWelcome = "welcome"
	MsgResult  = "result"
	MsgError   = "error"
)

// Envelope wraps every message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type Hello struct {
	V    int    `json:"v"`
	Name string `json:"name,omitempty"`
}

// Frame is one client frame: elapsed seconds, the tracker status and the
// pointer-down of this frame with the enemy its ray hit, if any.
type Frame struct {
	Dt       float64  `json:"dt"`
	Tracking string   `json:"tracking"`
	Pointer  *Pointer `json:"pointer,omitempty"`
}

type Pointer struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Hit uint64  `json:"hit,omitempty"` // Enemy id; 0 for none
}

type Restart struct{}

type Welcome struct {
	SessionID string        `json:"sessionId"`
	Config    ConfigPayload `json:"config"`
}

type ConfigPayload struct {
	MaxLives         int     `json:"maxLives"`
	SpawnInterval    float64 `json:"spawnInterval"`
	SpawnRadius      float64 `json:"spawnRadius"`
	EnemyHeight      float64 `json:"enemyHeight"`
	EnemySpeed       float64 `json:"enemySpeed"`
	EnemyScale       float64 `json:"enemyScale"`
	ArrivalThreshold float64 `json:"arrivalThreshold"`
	HitScoreValue    int     `json:"hitScoreValue"`
}

// Result answers a frame or restart.
type Result struct {
	Events  []EventPayload `json:"events"`
	Score   int            `json:"score"`
	Lives   int            `json:"lives"`
	State   string         `json:"state"`
	Enemies []EnemyPayload `json:"enemies"`
}

type EventPayload struct {
	Type   string  `json:"type"`
	Enemy  uint64  `json:"enemy,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Z      float64 `json:"z,omitempty"`
	Reason string  `json:"reason,omitempty"`
	Score  int     `json:"score"`
	Lives  int     `json:"lives"`
}

type EnemyPayload struct {
	ID uint64  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

type Error struct {
	Message string `json:"message"`
}
