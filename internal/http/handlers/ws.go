package handlers

import (
	"net/http"

	"tasktrack/internal/logger"
	"tasktrack/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WS upgrades the connection and streams task change events for the
// path owner until the client disconnects.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Debug("ws upgrade failed", "error", err)
			return
		}
		hub.Serve(c.Param("username"), conn)
	}
}
