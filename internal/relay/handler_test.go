package relay

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/pkg/config"
)

func relayServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.RelayConfig{
		HeartbeatInterval: 30 * time.Second,
		WriteTimeout:      5 * time.Second,
		SendBufferSize:    32,
	}

	logger := zap.NewNop()
	hub := NewHub(logger)
	h := NewHandler(hub, cfg, logger)

	e := echo.New()
	e.GET("/ws", h.ServeWS)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dialStudent(t *testing.T, ts *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts)+"?userId="+userID+"&role=student", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return env
}

func TestServeWS_JoinReceivesSessionStart(t *testing.T) {
	ts := relayServer(t)
	conn := dialStudent(t, ts, "user-1")

	join := Envelope{Type: TypeJoinSession, SessionID: "sess-1"}
	if err := conn.WriteJSON(join); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Type != TypeSessionStart {
		t.Fatalf("expected %s got %s", TypeSessionStart, env.Type)
	}
	if env.SessionID != "sess-1" {
		t.Fatalf("unexpected session id %s", env.SessionID)
	}

	var ack JoinAck
	if err := json.Unmarshal(env.Payload, &ack); err != nil {
		t.Fatalf("bad ack payload: %v", err)
	}
	if ack.ParticipantCount != 1 {
		t.Fatalf("expected participant count 1, got %d", ack.ParticipantCount)
	}
	if env.Timestamp == 0 {
		t.Fatal("expected server-assigned timestamp")
	}
}

func TestServeWS_TranscriptReachesAllParticipants(t *testing.T) {
	ts := relayServer(t)

	student := dialStudent(t, ts, "student-1")
	observer := dialStudent(t, ts, "observer-1")

	for _, conn := range []*websocket.Conn{student, observer} {
		if err := conn.WriteJSON(Envelope{Type: TypeJoinSession, SessionID: "sess-2"}); err != nil {
			t.Fatalf("join failed: %v", err)
		}
		readEnvelope(t, conn) // SESSION_START ack
	}

	payload := json.RawMessage(`{"text":"I plan to study computer science","speaker":"student","isFinal":true}`)
	if err := student.WriteJSON(Envelope{Type: TypeTranscriptFinal, SessionID: "sess-2", Payload: payload}); err != nil {
		t.Fatalf("transcript send failed: %v", err)
	}

	for _, conn := range []*websocket.Conn{student, observer} {
		env := readEnvelope(t, conn)
		if env.Type != TypeTranscriptFinal {
			t.Fatalf("expected %s got %s", TypeTranscriptFinal, env.Type)
		}
		if string(env.Payload) != string(payload) {
			t.Fatalf("payload altered in transit: %s", env.Payload)
		}
	}
}

func TestServeWS_ClientRoundTrip(t *testing.T) {
	ts := relayServer(t)

	student := dialStudent(t, ts, "student-1")
	if err := student.WriteJSON(Envelope{Type: TypeJoinSession, SessionID: "sess-3"}); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	readEnvelope(t, student)

	client := NewClient(wsURL(ts), "responder-1", zap.NewNop())
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer client.Close()

	if err := client.Join("sess-3"); err != nil {
		t.Fatalf("client join failed: %v", err)
	}
	env, err := client.Receive()
	if err != nil || env.Type != TypeSessionStart {
		t.Fatalf("expected SESSION_START, got %+v err %v", env, err)
	}
	var ack JoinAck
	if err := json.Unmarshal(env.Payload, &ack); err != nil {
		t.Fatalf("bad ack payload: %v", err)
	}
	if ack.ParticipantCount != 2 {
		t.Fatalf("expected participant count 2, got %d", ack.ParticipantCount)
	}

	if err := client.SendAIResponse("sess-3", "Why did you choose this university?"); err != nil {
		t.Fatalf("ai response send failed: %v", err)
	}

	env = readEnvelope(t, student)
	if env.Type != TypeAIResponse {
		t.Fatalf("expected %s got %s", TypeAIResponse, env.Type)
	}
	var body map[string]string
	if err := json.Unmarshal(env.Payload, &body); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if body["text"] != "Why did you choose this university?" {
		t.Fatalf("unexpected text %q", body["text"])
	}
}

func TestServeWS_MalformedFrameGetsError(t *testing.T) {
	ts := relayServer(t)
	conn := dialStudent(t, ts, "user-1")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{nope")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Type != TypeError {
		t.Fatalf("expected %s got %s", TypeError, env.Type)
	}
	var ep ErrorPayload
	if err := json.Unmarshal(env.Payload, &ep); err != nil {
		t.Fatalf("bad error payload: %v", err)
	}
	if ep.Error != "Invalid JSON message" {
		t.Fatalf("unexpected error %q", ep.Error)
	}
}

func TestServeWS_DisconnectPrunesRoster(t *testing.T) {
	ts := relayServer(t)

	first := dialStudent(t, ts, "user-1")
	if err := first.WriteJSON(Envelope{Type: TypeJoinSession, SessionID: "sess-4"}); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	readEnvelope(t, first)
	first.Close()

	// Allow the read pump to notice the close and unregister.
	time.Sleep(100 * time.Millisecond)

	second := dialStudent(t, ts, "user-2")
	if err := second.WriteJSON(Envelope{Type: TypeJoinSession, SessionID: "sess-4"}); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	env := readEnvelope(t, second)
	var ack JoinAck
	if err := json.Unmarshal(env.Payload, &ack); err != nil {
		t.Fatalf("bad ack payload: %v", err)
	}
	if ack.ParticipantCount != 1 {
		t.Fatalf("stale participant left in roster, count=%d", ack.ParticipantCount)
	}
}
