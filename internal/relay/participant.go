package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/pkg/config"
)

// Role identifies the kind of participant attached to a session
type Role string

const (
	RoleStudent Role = "student"
	RoleAIRelay Role = "ai-relay"
)

// AnonymousUserID is assigned to connections that carry no userId parameter
const AnonymousUserID = "anonymous"

// Participant is one live connection attached to the relay. The connection
// handle is owned exclusively by the participant's pumps; everything else
// writes through the send queue so per-connection output order is preserved.
type Participant struct {
	UserID string
	Role   Role

	conn   *websocket.Conn
	send   chan Envelope
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// enqueue queues an envelope for the write pump. Returns false when the
// queue is full; a closed participant swallows the message.
func (p *Participant) enqueue(env Envelope) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return true
	}
	select {
	case p.send <- env:
		return true
	default:
		return false
	}
}

// closeSend closes the send queue exactly once
func (p *Participant) closeSend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.send)
	}
}

// NewParticipant wraps an upgraded connection
func NewParticipant(conn *websocket.Conn, userID string, role Role, bufferSize int, logger *zap.Logger) *Participant {
	if userID == "" {
		userID = AnonymousUserID
	}
	return &Participant{
		UserID: userID,
		Role:   role,
		conn:   conn,
		send:   make(chan Envelope, bufferSize),
		logger: logger,
	}
}

// readPump feeds inbound frames to the hub until the transport closes. Runs
// on the connection's handler goroutine.
func (p *Participant) readPump(hub *Hub) {
	defer func() {
		hub.RemoveConnection(p)
		p.conn.Close()
	}()

	p.conn.SetPongHandler(func(string) error {
		// Liveness signal only; eviction is driven by transport close/error.
		return nil
	})

	for {
		_, raw, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("relay.connection.read_error",
					zap.String("user_id", p.UserID),
					zap.Error(err),
				)
			}
			return
		}
		hub.HandleMessage(p, raw)
	}
}

// writePump drains the send queue to the connection and pings idle
// connections on the heartbeat interval
func (p *Participant) writePump(cfg *config.RelayConfig) {
	ticker := time.NewTicker(cfg.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case env, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteJSON(env); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
