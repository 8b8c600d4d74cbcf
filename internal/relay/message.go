package relay

import (
	"encoding/json"
	"time"
)

// Message types exchanged over the relay connection, both directions
const (
	TypeJoinSession       = "JOIN_SESSION"
	TypeLeaveSession      = "LEAVE_SESSION"
	TypeTranscriptPartial = "TRANSCRIPT_PARTIAL"
	TypeTranscriptFinal   = "TRANSCRIPT_FINAL"
	TypeAIResponse        = "AI_RESPONSE"
	TypeSessionStart      = "SESSION_START"
	TypeSessionEnd        = "SESSION_END"
	TypePing              = "PING"
	TypePong              = "PONG"
	TypeError             = "ERROR"
)

// Envelope is the wire format for every relay message. Payload is kept raw so
// transcript fragments are rebroadcast byte-for-byte; Timestamp is assigned
// by the server on broadcast (milliseconds since epoch).
type Envelope struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// JoinAck is the SESSION_START payload sent back to a joining participant
type JoinAck struct {
	Message          string `json:"message"`
	ParticipantCount int    `json:"participantCount"`
}

// SessionEnded is the SESSION_END payload broadcast to the roster
type SessionEnded struct {
	EndedBy string `json:"endedBy"`
}

// ErrorPayload is the ERROR payload returned to the offending sender only
type ErrorPayload struct {
	Error string `json:"error"`
}

// nowMillis returns the server-assigned broadcast timestamp
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// marshalPayload encodes a server-built payload. Falls back to null on
// marshal failure, which cannot happen for the fixed payload shapes above.
func marshalPayload(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
