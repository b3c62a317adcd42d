package websocket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
)

// IdentityFunc resolves the authenticated identity of a request
type IdentityFunc func(c *gin.Context) (string, bool)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	identity IdentityFunc
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, identity IdentityFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		identity: identity,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Receive new direct messages live
// @Description Upgrades the connection to a WebSocket that receives an event for every message sent to the caller
// @Tags messages
// @Security CookieAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("identity", identity).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 64),
		identity: identity,
		logger:   h.logger,
	}
	if !h.hub.join(client) {
		h.logger.Debug().Str("identity", identity).Msg("Hub stopped, closing new connection")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
