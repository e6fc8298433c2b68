package remote

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/game"
)

// peer is the protocol state of one connection. It owns its session and is
// driven by a single goroutine.
type peer struct {
	id       string
	settings config.Settings
	logger   *log.Logger
	session  *game.Session
	outbox   []game.SessionEvent
}

func newPeer(id string, settings config.Settings, logger *log.Logger) *peer {
	return &peer{id: id, settings: settings, logger: logger}
}

// handle processes one incoming message and returns the encoded reply.
func (p *peer) handle(msg []byte) []byte {
	env, err := DecodeEnvelope(msg)
	if err != nil {
		return p.errorReply(err.Error())
	}

	switch env.T {
	case MsgHello:
		return p.hello(env)
	case MsgFrame:
		return p.frame(env)
	case MsgRestart:
		return p.restart()
	default:
		return p.errorReply(fmt.Sprintf("unknown message type %q", env.T))
	}
}

func (p *peer) hello(env Envelope) []byte {
	if p.session != nil {
		return p.errorReply("already greeted")
	}
	hello, err := DecodePayload[Hello](env)
	if err != nil {
		return p.errorReply(err.Error())
	}
	if hello.V != ProtocolVersion {
		return p.errorReply(fmt.Sprintf("unsupported protocol version %d, want %d", hello.V, ProtocolVersion))
	}

	session, err := game.NewSession(p.settings.GameConfig(),
		game.WithLogger(p.logger.With("session", p.id)))
	if err != nil {
		return p.errorReply(err.Error())
	}
	session.SubscribeAll(game.ListenerFunc(func(ev game.SessionEvent) {
		p.outbox = append(p.outbox, ev)
	}))
	p.session = session

	name := config.TruncateName(hello.Name)
	if name == "" {
		name = p.settings.DisplayName()
	}
	p.logger.Info("remote session started", "session", p.id, "player", name)

	return p.encode(MsgWelcome, Welcome{
		SessionID: p.id,
		Config:    configPayload(p.settings),
	})
}

func (p *peer) frame(env Envelope) []byte {
	if p.session == nil {
		return p.errorReply("hello required before frames")
	}
	frame, err := DecodePayload[Frame](env)
	if err != nil {
		return p.errorReply(err.Error())
	}

	// A status the server does not know counts as lost tracking.
	status, err := game.ParseTrackingStatus(frame.Tracking)
	if err != nil {
		p.logger.Warn("unknown tracking status", "session", p.id, "status", frame.Tracking)
		status = game.StatusNoPose
	}

	var pointer *game.PointerEvent
	if frame.Pointer != nil {
		pointer = &game.PointerEvent{
			ScreenX:   frame.Pointer.X,
			ScreenY:   frame.Pointer.Y,
			Candidate: game.EnemyID(frame.Pointer.Hit),
		}
	}

	dt := min(max(frame.Dt, 0), config.RemoteMaxFrameDt)
	p.session.Update(dt, status.Active(), pointer)
	return p.result()
}

func (p *peer) restart() []byte {
	if p.session == nil {
		return p.errorReply("hello required before restart")
	}
	p.session.Restart()
	return p.result()
}

// result drains the events collected since the last reply.
func (p *peer) result() []byte {
	s := p.session
	res := Result{
		Events:  make([]EventPayload, 0, len(p.outbox)),
		Score:   s.Score(),
		Lives:   s.Lives(),
		State:   s.State().String(),
		Enemies: []EnemyPayload{},
	}
	for _, ev := range p.outbox {
		res.Events = append(res.Events, EventPayload{
			Type:   string(ev.Type),
			Enemy:  uint64(ev.Enemy),
			X:      ev.Position.X,
			Y:      ev.Position.Y,
			Z:      ev.Position.Z,
			Reason: string(ev.Reason),
			Score:  ev.Score,
			Lives:  ev.Lives,
		})
	}
	p.outbox = p.outbox[:0]

	for _, e := range s.LiveEnemies() {
		res.Enemies = append(res.Enemies, EnemyPayload{
			ID: uint64(e.ID),
			X:  e.Position.X,
			Y:  e.Position.Y,
			Z:  e.Position.Z,
		})
	}
	return p.encode(MsgResult, res)
}

func (p *peer) errorReply(msg string) []byte {
	return p.encode(MsgError, Error{Message: msg})
}

func (p *peer) encode(t string, payload any) []byte {
	b, err := Encode(t, payload)
	if err != nil {
		// Payloads are plain structs; this only fires on a programming error.
		p.logger.Error("encode reply", "type", t, "err", err)
		return nil
	}
	return b
}

func configPayload(s config.Settings) ConfigPayload {
	return ConfigPayload{
		MaxLives:         s.MaxLives,
		SpawnInterval:    s.SpawnInterval,
		SpawnRadius:      s.SpawnRadius,
		EnemyHeight:      s.EnemyHeight,
		EnemySpeed:       s.EnemySpeed,
		EnemyScale:       s.EnemyScale,
		ArrivalThreshold: s.ArrivalThreshold,
		HitScoreValue:    s.HitScoreValue,
	}
}
