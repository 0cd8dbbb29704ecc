package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	e.POST("/v1/auth/register", userHandler.Register)

	users := e.Group("/v1/users")
	users.GET("/me", userHandler.GetProfile, authMiddleware.Authenticate)
	users.PATCH("/me", userHandler.UpdateProfile, authMiddleware.Authenticate)
	users.POST("/me/vendor", userHandler.BecomeVendor, authMiddleware.Authenticate)
	users.DELETE("/me", userHandler.DeleteAccount, authMiddleware.Authenticate)
	users.GET("/:id", userHandler.GetUser)

	e.GET("/v1/vendors", userHandler.ListVendors)
}
