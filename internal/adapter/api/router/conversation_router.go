package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupConversationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	conversationHandler := handler.GetConversationHandler()

	group := e.Group("/v1/conversations")
	group.Use(authMiddleware.Authenticate)

	group.POST("", conversationHandler.StartConversation)
	group.GET("", conversationHandler.ListConversations)
	group.GET("/:id", conversationHandler.GetConversation)
	group.PUT("/:id/read", conversationHandler.MarkConversationRead)
	group.DELETE("/:id", conversationHandler.DeleteConversation)

	group.POST("/:id/messages", conversationHandler.SendMessage)
	group.GET("/:id/messages", conversationHandler.ListMessages)
}
