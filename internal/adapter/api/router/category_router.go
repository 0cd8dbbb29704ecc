package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupCategoryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	categoryHandler := handler.GetCategoryHandler()

	e.GET("/v1/categories", categoryHandler.ListCategories)
	e.GET("/v1/categories/:id", categoryHandler.GetCategory)

	admin := e.Group("/v1/admin/categories")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("", categoryHandler.CreateCategory)
	admin.PATCH("/:id", categoryHandler.UpdateCategory)
	admin.DELETE("/:id", categoryHandler.DeleteCategory)
}
