package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/response"
	"vendora/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shipped completed cancelled"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	userID := c.Get("uid").(string)

	order, err := h.orderUseCase.Checkout(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	orders, total, err := h.orderUseCase.ListBuyerOrders(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, params.Page, params.PageSize)
}

func (h *OrderHandler) ListVendorOrders(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	orders, total, err := h.orderUseCase.ListVendorOrders(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, params.Page, params.PageSize)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
