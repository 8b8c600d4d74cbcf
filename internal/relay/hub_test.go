package relay

import (
	"encoding/json"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

func testParticipant(userID string, buffer int) *Participant {
	return NewParticipant(nil, userID, RoleStudent, buffer, zap.NewNop())
}

// recv pops one queued envelope without blocking
func recv(t *testing.T, p *Participant) (Envelope, bool) {
	t.Helper()
	select {
	case env := <-p.send:
		return env, true
	default:
		return Envelope{}, false
	}
}

func join(t *testing.T, h *Hub, p *Participant, sessionID string) {
	t.Helper()
	h.HandleMessage(p, []byte(fmt.Sprintf(`{"type":"JOIN_SESSION","sessionId":%q}`, sessionID)))
	ack, ok := recv(t, p)
	if !ok || ack.Type != TypeSessionStart {
		t.Fatalf("expected SESSION_START ack, got %+v (ok=%v)", ack, ok)
	}
}

func TestJoinAcknowledgesWithParticipantCount(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	p2 := testParticipant("u2", 8)

	h.HandleMessage(p1, []byte(`{"type":"JOIN_SESSION","sessionId":"S1"}`))
	h.HandleMessage(p2, []byte(`{"type":"JOIN_SESSION","sessionId":"S1"}`))

	ack1, _ := recv(t, p1)
	ack2, _ := recv(t, p2)

	var a1, a2 JoinAck
	if err := json.Unmarshal(ack1.Payload, &a1); err != nil {
		t.Fatalf("bad ack payload: %v", err)
	}
	if err := json.Unmarshal(ack2.Payload, &a2); err != nil {
		t.Fatalf("bad ack payload: %v", err)
	}
	if a1.ParticipantCount != 1 || a2.ParticipantCount != 2 {
		t.Errorf("want counts 1 and 2, got %d and %d", a1.ParticipantCount, a2.ParticipantCount)
	}
	if h.ParticipantCount("S1") != 2 {
		t.Errorf("roster should hold 2 participants, got %d", h.ParticipantCount("S1"))
	}
}

func TestTranscriptRebroadcastReachesEveryParticipant(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	p2 := testParticipant("u2", 8)
	join(t, h, p1, "S1")
	join(t, h, p2, "S1")

	payload := `{"text":"I have a sponsor","confidence":0.93}`
	h.HandleMessage(p1, []byte(`{"type":"TRANSCRIPT_FINAL","sessionId":"S1","payload":`+payload+`}`))

	for _, p := range []*Participant{p1, p2} {
		env, ok := recv(t, p)
		if !ok {
			t.Fatalf("%s received no rebroadcast", p.UserID)
		}
		if env.Type != TypeTranscriptFinal || env.SessionID != "S1" {
			t.Errorf("%s: unexpected envelope %+v", p.UserID, env)
		}
		if string(env.Payload) != payload {
			t.Errorf("%s: payload must be rebroadcast byte-for-byte, got %s", p.UserID, env.Payload)
		}
		if env.Timestamp == 0 {
			t.Errorf("%s: server must assign a broadcast timestamp", p.UserID)
		}
		if _, extra := recv(t, p); extra {
			t.Errorf("%s: received more than one rebroadcast", p.UserID)
		}
	}
}

func TestBroadcastToUnknownSessionReachesNobody(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	join(t, h, p1, "S1")

	h.HandleMessage(p1, []byte(`{"type":"AI_RESPONSE","sessionId":"S2","payload":{"text":"hi"}}`))

	if _, got := recv(t, p1); got {
		t.Error("participant of S1 must not receive S2 traffic")
	}
}

func TestLeaveDiscardsEmptiedRoster(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	p2 := testParticipant("u2", 8)
	join(t, h, p1, "S1")
	join(t, h, p2, "S1")

	h.HandleMessage(p1, []byte(`{"type":"LEAVE_SESSION","sessionId":"S1"}`))
	if h.ParticipantCount("S1") != 1 {
		t.Fatalf("want 1 participant after first leave, got %d", h.ParticipantCount("S1"))
	}

	h.HandleMessage(p2, []byte(`{"type":"LEAVE_SESSION","sessionId":"S1"}`))
	if h.HasSession("S1") {
		t.Error("emptied roster must be discarded")
	}

	// leaving an unknown session is a no-op, not an error
	h.HandleMessage(p2, []byte(`{"type":"LEAVE_SESSION","sessionId":"S1"}`))
	if env, got := recv(t, p2); got {
		t.Errorf("no-op leave must emit nothing, got %+v", env)
	}
}

func TestMalformedFrameErrorsSenderOnly(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	p2 := testParticipant("u2", 8)
	join(t, h, p1, "S1")
	join(t, h, p2, "S1")

	h.HandleMessage(p1, []byte(`{not json`))

	env, ok := recv(t, p1)
	if !ok || env.Type != TypeError {
		t.Fatalf("sender must receive exactly one ERROR, got %+v (ok=%v)", env, ok)
	}
	var ep ErrorPayload
	if err := json.Unmarshal(env.Payload, &ep); err != nil || ep.Error != "Invalid JSON message" {
		t.Errorf("unexpected error payload: %s", env.Payload)
	}
	if _, extra := recv(t, p1); extra {
		t.Error("sender must receive exactly one ERROR event")
	}
	if _, leaked := recv(t, p2); leaked {
		t.Error("other participants must receive nothing for a malformed frame")
	}
}

func TestUnknownMessageTypeErrorsSender(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	join(t, h, p1, "S1")

	h.HandleMessage(p1, []byte(`{"type":"TELEPORT","sessionId":"S1"}`))

	env, ok := recv(t, p1)
	if !ok || env.Type != TypeError {
		t.Fatalf("want ERROR for unknown type, got %+v (ok=%v)", env, ok)
	}
	var ep ErrorPayload
	if err := json.Unmarshal(env.Payload, &ep); err != nil || ep.Error != "Unknown message type: TELEPORT" {
		t.Errorf("unexpected error payload: %s", env.Payload)
	}
}

func TestPingAnswersPongToSenderOnly(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	p2 := testParticipant("u2", 8)
	join(t, h, p1, "S1")
	join(t, h, p2, "S1")

	h.HandleMessage(p1, []byte(`{"type":"PING","sessionId":"S1"}`))

	env, ok := recv(t, p1)
	if !ok || env.Type != TypePong {
		t.Fatalf("want PONG to sender, got %+v (ok=%v)", env, ok)
	}
	if _, leaked := recv(t, p2); leaked {
		t.Error("PONG must not be broadcast")
	}
}

func TestEndSessionBroadcastsAndDropsRoster(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1 := testParticipant("u1", 8)
	p2 := testParticipant("u2", 8)
	join(t, h, p1, "S1")
	join(t, h, p2, "S1")

	h.HandleMessage(p1, []byte(`{"type":"SESSION_END","sessionId":"S1"}`))

	for _, p := range []*Participant{p1, p2} {
		env, ok := recv(t, p)
		if !ok || env.Type != TypeSessionEnd {
			t.Fatalf("%s: want SESSION_END broadcast, got %+v (ok=%v)", p.UserID, env, ok)
		}
		var ended SessionEnded
		if err := json.Unmarshal(env.Payload, &ended); err != nil || ended.EndedBy != "u1" {
			t.Errorf("%s: unexpected end payload: %s", p.UserID, env.Payload)
		}
	}
	if h.HasSession("S1") {
		t.Error("roster must be dropped after SESSION_END")
	}
}

func TestRemoveConnectionByIdentity(t *testing.T) {
	h := NewHub(zap.NewNop())
	// Same user id on two connections; only the removed connection goes.
	c1 := testParticipant("u1", 8)
	c2 := testParticipant("u1", 8)
	join(t, h, c1, "S1")
	join(t, h, c2, "S1")

	h.RemoveConnection(c1)

	if h.ParticipantCount("S1") != 1 {
		t.Fatalf("want 1 connection left, got %d", h.ParticipantCount("S1"))
	}

	h.Broadcast("S1", Envelope{Type: TypeAIResponse, SessionID: "S1", Timestamp: nowMillis()})
	if _, got := recv(t, c1); got {
		t.Error("removed connection must not receive broadcasts")
	}
	if _, got := recv(t, c2); !got {
		t.Error("surviving connection must still receive broadcasts")
	}
}

func TestSlowConsumerIsEvicted(t *testing.T) {
	h := NewHub(zap.NewNop())
	slow := testParticipant("slow", 1)
	fast := testParticipant("fast", 8)
	// slow's join ack stays queued, so its single-slot buffer is full
	h.HandleMessage(slow, []byte(`{"type":"JOIN_SESSION","sessionId":"S1"}`))
	join(t, h, fast, "S1")

	h.Broadcast("S1", Envelope{Type: TypeAIResponse, SessionID: "S1", Timestamp: nowMillis()})

	if h.ParticipantCount("S1") != 1 {
		t.Fatalf("slow consumer must be evicted, roster size %d", h.ParticipantCount("S1"))
	}

	// a later broadcast must not panic on the closed queue
	h.Broadcast("S1", Envelope{Type: TypeAIResponse, SessionID: "S1", Timestamp: nowMillis()})
	if _, got := recv(t, fast); !got {
		t.Error("fast participant lost broadcasts after eviction")
	}
}
