package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("/checkout", orderHandler.Checkout)
	orders.GET("", orderHandler.ListMyOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)

	e.GET("/v1/vendor/orders", orderHandler.ListVendorOrders, authMiddleware.Authenticate)
}
