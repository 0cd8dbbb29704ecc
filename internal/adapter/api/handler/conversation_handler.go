package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/response"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

type startConversationRequest struct {
	CounterpartID  string `json:"counterpart_id" validate:"required"`
	ProductID      string `json:"product_id"`
	Subject        string `json:"subject"`
	InitialMessage string `json:"initial_message"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// StartConversation finds or creates a conversation with another user.
// Responds 200 with the existing thread or 201 with a new one.
func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conv, created, err := h.conversationUseCase.StartConversation(c.Request().Context(), userID, usecase.StartConversationInput{
		CounterpartID:  req.CounterpartID,
		ProductID:      req.ProductID,
		Subject:        req.Subject,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if created {
		return response.Created(c, conv)
	}
	return response.Success(c, conv)
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	convs, err := h.conversationUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"conversations": convs,
		"count":         len(convs),
	})
}

func (h *ConversationHandler) GetConversation(c echo.Context) error {
	detail, err := h.conversationUseCase.GetConversation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.SendMessage(c.Request().Context(), userID, c.Param("id"), usecase.SendMessageInput{
		Content: req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ConversationHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	messages, err := h.conversationUseCase.ListMessages(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ConversationHandler) MarkConversationRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	updated, err := h.conversationUseCase.MarkConversationRead(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"marked_read": updated,
	})
}

func (h *ConversationHandler) DeleteConversation(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.conversationUseCase.DeleteConversation(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"deleted": true,
	})
}
