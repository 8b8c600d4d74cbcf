package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is an outbound relay connection used by backend workers (the AI
// responder) to attach to a session alongside the browser. Dial failures are
// retried with capped exponential backoff before giving up.
type Client struct {
	url    string
	userID string
	logger *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient prepares a relay client for the given websocket URL
func NewClient(url, userID string, logger *zap.Logger) *Client {
	return &Client{
		url:    fmt.Sprintf("%s?userId=%s&role=%s", url, userID, RoleAIRelay),
		userID: userID,
		logger: logger,
	}
}

// Connect dials the relay, retrying transient failures up to three times with
// doubling delays
func (c *Client) Connect(ctx context.Context) error {
	operation := func() error {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.logger.Warn("relay.client.dial_failed", zap.Error(err))
			return err
		}
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.Multiplier = 2
	bo.RandomizationFactor = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx)); err != nil {
		return fmt.Errorf("relay dial failed: %w", err)
	}
	return nil
}

// Join announces the client on a session roster
func (c *Client) Join(sessionID string) error {
	return c.Send(Envelope{
		Type:      TypeJoinSession,
		SessionID: sessionID,
		Timestamp: nowMillis(),
	})
}

// SendAIResponse broadcasts an AI utterance into the session
func (c *Client) SendAIResponse(sessionID, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	return c.Send(Envelope{
		Type:      TypeAIResponse,
		SessionID: sessionID,
		Payload:   payload,
		Timestamp: nowMillis(),
	})
}

// Send writes one envelope to the relay
func (c *Client) Send(env Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("relay client not connected")
	}
	return c.conn.WriteJSON(env)
}

// Receive blocks for the next envelope from the relay
func (c *Client) Receive() (Envelope, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return Envelope{}, fmt.Errorf("relay client not connected")
	}

	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Close tears the connection down
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
