package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupCategoryRouter(e, authMiddleware, adminMiddleware)
	SetupProductRouter(e, authMiddleware)
	SetupCartRouter(e, authMiddleware)
	SetupOrderRouter(e, authMiddleware)
	SetupConversationRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
