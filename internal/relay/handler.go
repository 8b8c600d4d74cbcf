package relay

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/pkg/config"
)

// Handler upgrades HTTP requests to relay connections
type Handler struct {
	hub      *Hub
	cfg      *config.RelayConfig
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a relay handler bound to the shared hub
func NewHandler(hub *Hub, cfg *config.RelayConfig, logger *zap.Logger) *Handler {
	return &Handler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement belongs to the edge proxy; the relay
			// itself accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeWS handles GET /ws. Identity comes from query parameters: a missing
// userId degrades to the anonymous sentinel rather than rejecting the
// connection.
func (h *Handler) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("relay.upgrade_failed", zap.Error(err))
		return err
	}

	userID := c.QueryParam("userId")
	role := Role(c.QueryParam("role"))
	if role != RoleAIRelay {
		role = RoleStudent
	}

	p := NewParticipant(conn, userID, role, h.cfg.SendBufferSize, h.logger)

	h.logger.Info("relay.connection.open",
		zap.String("user_id", p.UserID),
		zap.String("role", string(p.Role)),
	)

	go p.writePump(h.cfg)
	p.readPump(h.hub)
	return nil
}
