package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID := c.Get("uid").(string)

	cart, err := h.cartUseCase.GetCart(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	cart, err := h.cartUseCase.AddItem(c.Request().Context(), userID, usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	cart, err := h.cartUseCase.UpdateQuantity(c.Request().Context(), userID, c.Param("productId"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	cart, err := h.cartUseCase.RemoveItem(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.cartUseCase.ClearCart(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"cleared": true,
	})
}
