package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()
	reviewHandler := handler.GetReviewHandler()

	e.GET("/v1/products", productHandler.ListProducts)
	e.GET("/v1/products/search", productHandler.SearchProducts)
	e.GET("/v1/products/:id", productHandler.GetProduct)
	e.GET("/v1/products/:id/reviews", reviewHandler.ListProductReviews)

	vendor := e.Group("/v1/vendor/products")
	vendor.Use(authMiddleware.Authenticate)
	vendor.POST("", productHandler.CreateProduct)
	vendor.GET("", productHandler.ListMyProducts)
	vendor.PATCH("/:id", productHandler.UpdateProduct)
	vendor.DELETE("/:id", productHandler.DeleteProduct)

	e.POST("/v1/products/:id/reviews", reviewHandler.CreateReview, authMiddleware.Authenticate)
	e.PATCH("/v1/reviews/:id", reviewHandler.UpdateReview, authMiddleware.Authenticate)
	e.DELETE("/v1/reviews/:id", reviewHandler.DeleteReview, authMiddleware.Authenticate)
}
