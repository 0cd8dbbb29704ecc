package handler

import (
	"vendora/internal/usecase"
)

var (
	userHandler         *UserHandler
	categoryHandler     *CategoryHandler
	productHandler      *ProductHandler
	reviewHandler       *ReviewHandler
	cartHandler         *CartHandler
	orderHandler        *OrderHandler
	conversationHandler *ConversationHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	productUseCase *usecase.ProductUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	cartUseCase *usecase.CartUseCase,
	orderUseCase *usecase.OrderUseCase,
	conversationUseCase *usecase.ConversationUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	productHandler = NewProductHandler(productUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	conversationHandler = NewConversationHandler(conversationUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetConversationHandler() *ConversationHandler {
	return conversationHandler
}
