package relay

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Hub maintains the roster table: session id → participants currently
// attached. It is the relay's only shared mutable state; a single coarse
// mutex serializes every roster mutation so racing joins, leaves and
// disconnects for one session cannot interleave into a corrupted set.
type Hub struct {
	mu       sync.Mutex
	sessions map[string][]*Participant
	logger   *zap.Logger
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string][]*Participant),
		logger:   logger,
	}
}

// HandleMessage processes one inbound frame from a participant. Malformed or
// unknown input answers the sender with an ERROR event and touches nobody
// else.
func (h *Hub) HandleMessage(p *Participant, raw []byte) {
	var msg Envelope
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.sendError(p, "Invalid JSON message")
		return
	}

	switch msg.Type {
	case TypeJoinSession:
		h.Join(p, msg.SessionID)

	case TypeLeaveSession:
		h.Leave(msg.SessionID, p.UserID)

	case TypeTranscriptPartial, TypeTranscriptFinal:
		h.Broadcast(msg.SessionID, Envelope{
			Type:      msg.Type,
			SessionID: msg.SessionID,
			Payload:   msg.Payload,
			Timestamp: nowMillis(),
		})

	case TypeAIResponse:
		h.Broadcast(msg.SessionID, Envelope{
			Type:      TypeAIResponse,
			SessionID: msg.SessionID,
			Payload:   msg.Payload,
			Timestamp: nowMillis(),
		})

	case TypeSessionEnd:
		h.EndSession(msg.SessionID, p.UserID)

	case TypePing:
		h.deliver(p, Envelope{
			Type:      TypePong,
			SessionID: msg.SessionID,
			Timestamp: nowMillis(),
		})

	default:
		h.sendError(p, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

// Join registers the participant under the session id, creating the session
// roster implicitly, and acknowledges with SESSION_START carrying the
// resulting participant count.
func (h *Hub) Join(p *Participant, sessionID string) {
	h.mu.Lock()
	h.sessions[sessionID] = append(h.sessions[sessionID], p)
	count := len(h.sessions[sessionID])
	h.mu.Unlock()

	h.deliver(p, Envelope{
		Type:      TypeSessionStart,
		SessionID: sessionID,
		Payload: marshalPayload(JoinAck{
			Message:          "Joined session successfully",
			ParticipantCount: count,
		}),
		Timestamp: nowMillis(),
	})

	h.logger.Info("relay.session.join",
		zap.String("session_id", sessionID),
		zap.String("user_id", p.UserID),
		zap.Int("participants", count),
	)
}

// Leave removes every roster entry in the session matching the user id. An
// emptied roster is discarded entirely so no orphan state lingers; leaving an
// unknown session is a no-op.
func (h *Hub) Leave(sessionID, userID string) {
	h.mu.Lock()
	participants := h.sessions[sessionID]
	filtered := participants[:0]
	for _, p := range participants {
		if p.UserID != userID {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		delete(h.sessions, sessionID)
	} else {
		h.sessions[sessionID] = filtered
	}
	h.mu.Unlock()

	h.logger.Info("relay.session.leave",
		zap.String("session_id", sessionID),
		zap.String("user_id", userID),
	)
}

// EndSession broadcasts a termination event carrying the ending user's id,
// then discards the roster unconditionally. Remaining connections stay open
// but no further roster-scoped messages will route to them.
func (h *Hub) EndSession(sessionID, userID string) {
	h.Broadcast(sessionID, Envelope{
		Type:      TypeSessionEnd,
		SessionID: sessionID,
		Payload:   marshalPayload(SessionEnded{EndedBy: userID}),
		Timestamp: nowMillis(),
	})

	h.mu.Lock()
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	h.logger.Info("relay.session.end",
		zap.String("session_id", sessionID),
		zap.String("ended_by", userID),
	)
}

// Broadcast fans the envelope out to every participant in the session,
// including the sender. Unknown session ids fan out to nobody.
func (h *Hub) Broadcast(sessionID string, env Envelope) {
	h.mu.Lock()
	participants := append([]*Participant(nil), h.sessions[sessionID]...)
	h.mu.Unlock()

	for _, p := range participants {
		h.deliver(p, env)
	}
}

// RemoveConnection removes exactly this connection from every roster it
// appears in. Lookup is by participant identity, not user id, so multiple
// connections from one user are independent.
func (h *Hub) RemoveConnection(target *Participant) {
	h.mu.Lock()
	for sessionID, participants := range h.sessions {
		filtered := participants[:0]
		for _, p := range participants {
			if p != target {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			delete(h.sessions, sessionID)
		} else {
			h.sessions[sessionID] = filtered
		}
	}
	h.mu.Unlock()

	h.logger.Info("relay.connection.removed", zap.String("user_id", target.UserID))
}

// ParticipantCount reports the roster size for a session (0 when absent)
func (h *Hub) ParticipantCount(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

// HasSession reports whether a roster exists for the session id
func (h *Hub) HasSession(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[sessionID]
	return ok
}

// deliver queues an envelope for one participant. A participant whose send
// queue is full is treated as dead: it is dropped from every roster and its
// queue closed, which tears the connection down through its write pump.
func (h *Hub) deliver(p *Participant, env Envelope) {
	if !p.enqueue(env) {
		h.logger.Warn("relay.connection.slow_consumer", zap.String("user_id", p.UserID))
		h.RemoveConnection(p)
		p.closeSend()
	}
}

// sendError reports a protocol fault to the offending sender only
func (h *Hub) sendError(p *Participant, message string) {
	h.deliver(p, Envelope{
		Type:      TypeError,
		Payload:   marshalPayload(ErrorPayload{Error: message}),
		Timestamp: nowMillis(),
	})
}
