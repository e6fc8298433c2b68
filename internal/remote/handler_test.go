package remote

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/game"
)

func testSettings() config.Settings {
	s := config.DefaultSettings()
	s.Seed = 11
	return s
}

func mustEncode(t *testing.T, typ string, payload any) []byte {
	t.Helper()
	b, err := Encode(typ, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return b
}

func decodeReply[T any](t *testing.T, b []byte, wantType string) T {
	t.Helper()
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != wantType {
		t.Fatalf("reply type %q (%s), want %q", env.T, env.P, wantType)
	}
	out, err := DecodePayload[T](env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return out
}

func newTestPeer(t *testing.T, settings config.Settings) *peer {
	t.Helper()
	p := newPeer("s1", settings, log.New(io.Discard))
	w := decodeReply[Welcome](t, p.handle(mustEncode(t, MsgHello, Hello{V: ProtocolVersion, Name: "ar"})), MsgWelcome)
	if w.SessionID != "s1" || w.Config.MaxLives != settings.MaxLives {
		t.Fatalf("welcome = %+v", w)
	}
	return p
}

func TestPeerRejectsMessagesBeforeHello(t *testing.T) {
	p := newPeer("s1", testSettings(), log.New(io.Discard))
	tests := []struct {
		name        string
		msg         []byte
		errContains string
	}{
		{name: "frame", msg: mustEncode(t, MsgFrame, Frame{Dt: 0.1}), errContains: "hello required"},
		{name: "restart", msg: mustEncode(t, MsgRestart, Restart{}), errContains: "hello required"},
		{name: "unknown type", msg: mustEncode(t, "dance", Restart{}), errContains: "unknown message type"},
		{name: "garbage", msg: []byte("not json"), errContains: "decode envelope"},
		{name: "old version", msg: mustEncode(t, MsgHello, Hello{V: 0}), errContains: "unsupported protocol version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := decodeReply[Error](t, p.handle(tt.msg), MsgError)
			if !strings.Contains(e.Message, tt.errContains) {
				t.Fatalf("error %q does not contain %q", e.Message, tt.errContains)
			}
		})
	}
}

func TestPeerSecondHelloIsAnError(t *testing.T) {
	p := newTestPeer(t, testSettings())
	e := decodeReply[Error](t, p.handle(mustEncode(t, MsgHello, Hello{V: ProtocolVersion})), MsgError)
	if !strings.Contains(e.Message, "already greeted") {
		t.Fatalf("error = %q", e.Message)
	}
}

func TestPeerFramesSpawnAndHit(t *testing.T) {
	settings := testSettings()
	settings.EnemySpeed = 0
	p := newTestPeer(t, settings)

	frame := func(f Frame) Result {
		return decodeReply[Result](t, p.handle(mustEncode(t, MsgFrame, f)), MsgResult)
	}

	res := frame(Frame{Dt: 1.0, Tracking: "TRACKED"})
	if len(res.Events) != 0 || len(res.Enemies) != 0 {
		t.Fatalf("early frame produced %+v", res)
	}

	res = frame(Frame{Dt: 1.0, Tracking: "EXTENDED_TRACKED"})
	if len(res.Events) != 1 || res.Events[0].Type != string(game.EventEnemyCreated) || len(res.Enemies) != 1 {
		t.Fatalf("expected a spawn, got %+v", res)
	}
	id := res.Enemies[0].ID

	res = frame(Frame{Dt: 0.016, Tracking: "TRACKED", Pointer: &Pointer{X: 3, Y: 4, Hit: id}})
	if res.Score != settings.HitScoreValue || len(res.Enemies) != 0 {
		t.Fatalf("hit not applied: %+v", res)
	}
	if len(res.Events) != 2 || res.Events[0].Reason != string(game.RemovedHit) ||
		res.Events[1].Type != string(game.EventScoreChanged) {
		t.Fatalf("hit events = %+v", res.Events)
	}
}

func TestPeerUnknownTrackingCountsAsLost(t *testing.T) {
	p := newTestPeer(t, testSettings())
	for i := 0; i < 5; i++ {
		res := decodeReply[Result](t, p.handle(mustEncode(t, MsgFrame, Frame{Dt: 1, Tracking: "SOMETIMES"})), MsgResult)
		if len(res.Enemies) != 0 {
			t.Fatalf("spawned with unknown tracking status")
		}
	}
}

func TestPeerRestartReportsClearedEnemies(t *testing.T) {
	settings := testSettings()
	settings.EnemySpeed = 0
	p := newTestPeer(t, settings)
	// Frame deltas are capped at one second, so each spawn takes two frames.
	for i := 0; i < 4; i++ {
		p.handle(mustEncode(t, MsgFrame, Frame{Dt: 1, Tracking: "TRACKED"}))
	}

	res := decodeReply[Result](t, p.handle(mustEncode(t, MsgRestart, Restart{})), MsgResult)
	if len(res.Enemies) != 0 || res.State != "active" || res.Lives != settings.MaxLives {
		t.Fatalf("restart result = %+v", res)
	}
	if len(res.Events) != 2 {
		t.Fatalf("expected two cleared events, got %+v", res.Events)
	}
	for _, ev := range res.Events {
		if ev.Reason != string(game.RemovedCleared) {
			t.Fatalf("event %+v is not a clear", ev)
		}
	}
}

func TestPeerClampsFrameDelta(t *testing.T) {
	settings := testSettings()
	settings.MaxLives = 1
	p := newTestPeer(t, settings)

	// The spawn frame advances the new enemy by at most the clamped delta.
	p.handle(mustEncode(t, MsgFrame, Frame{Dt: 1, Tracking: "TRACKED"}))
	res := decodeReply[Result](t, p.handle(mustEncode(t, MsgFrame, Frame{Dt: 1e6, Tracking: "TRACKED"})), MsgResult)
	if res.State != "active" || len(res.Enemies) != 1 {
		t.Fatalf("huge dt ended the game: %+v", res)
	}
}

func TestHandlerOverWebsocket(t *testing.T) {
	srv := httptest.NewServer(NewHandler(testSettings(), nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	roundTrip := func(msg []byte) []byte {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, reply, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return reply
	}

	w := decodeReply[Welcome](t, roundTrip(mustEncode(t, MsgHello, Hello{V: ProtocolVersion, Name: "phone"})), MsgWelcome)
	if w.SessionID == "" || w.Config.SpawnRadius != game.DefaultSpawnRadius {
		t.Fatalf("welcome = %+v", w)
	}

	res := decodeReply[Result](t, roundTrip(mustEncode(t, MsgFrame, Frame{Dt: 0.5, Tracking: "TRACKED"})), MsgResult)
	if res.State != "active" || res.Lives != game.DefaultMaxLives {
		t.Fatalf("result = %+v", res)
	}

	// A second connection gets its own session.
	other, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial second: %v", err)
	}
	defer other.Close()
	_ = other.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := other.WriteMessage(websocket.TextMessage, mustEncode(t, MsgHello, Hello{V: ProtocolVersion})); err != nil {
		t.Fatalf("write second: %v", err)
	}
	_, reply, err := other.ReadMessage()
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	w2 := decodeReply[Welcome](t, reply, MsgWelcome)
	if w2.SessionID == w.SessionID {
		t.Fatalf("connections share session id %q", w.SessionID)
	}
}
