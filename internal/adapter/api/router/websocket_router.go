package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the realtime endpoint. Auth is handled in
// the handler via the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
