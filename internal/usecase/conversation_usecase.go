package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
	"vendora/pkg/metrics"
)

// MessagePusher delivers server-side events to a connected user. Satisfied by
// the websocket manager; delivery is best-effort.
type MessagePusher interface {
	SendToUser(userID string, message []byte)
}

type ConversationUseCase struct {
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	pusher      MessagePusher
}

func NewConversationUseCase(
	convRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	pusher MessagePusher,
) *ConversationUseCase {
	return &ConversationUseCase{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		pusher:      pusher,
	}
}

type StartConversationInput struct {
	CounterpartID  string `json:"counterpart_id" validate:"required"`
	ProductID      string `json:"product_id"`
	Subject        string `json:"subject"`
	InitialMessage string `json:"initial_message"`
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required"`
}

type ConversationResponse struct {
	*entity.Conversation
	OtherUser   *entity.User           `json:"other_user,omitempty"`
	Product     *entity.ProductSummary `json:"product,omitempty"`
	UnreadCount int                    `json:"unread_count"`
}

type ConversationDetail struct {
	*entity.Conversation
	Messages []*entity.Message `json:"messages"`
}

type messageEvent struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversation_id"`
	Message        *entity.Message `json:"message,omitempty"`
}

// StartConversation finds or creates the conversation between the caller and
// the counterpart for the given product association. The returned bool is
// true when a new conversation was created.
func (uc *ConversationUseCase) StartConversation(ctx context.Context, userID string, input StartConversationInput) (*ConversationResponse, bool, error) {
	if input.CounterpartID == userID {
		return nil, false, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	counterpart, err := uc.userRepo.GetByID(ctx, input.CounterpartID)
	if err != nil {
		return nil, false, err
	}

	var product *entity.Product
	if input.ProductID != "" {
		product, err = uc.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return nil, false, err
		}
	}

	existing, err := uc.convRepo.FindByParticipants(ctx, userID, input.CounterpartID, input.ProductID)
	if err == nil {
		resp := uc.toResponse(existing, userID, counterpart, product)
		return resp, false, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, false, err
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Chat with %s", counterpart.Username)
	}

	now := time.Now()
	conv := &entity.Conversation{
		InitiatorID:   userID,
		CounterpartID: input.CounterpartID,
		ProductID:     input.ProductID,
		Subject:       subject,
		LastMessageAt: now,
	}

	if err := uc.convRepo.Create(ctx, conv); err != nil {
		return nil, false, err
	}
	metrics.ConversationsCreated.Inc()

	if content := strings.TrimSpace(input.InitialMessage); content != "" {
		if _, err := uc.appendMessage(ctx, conv, userID, content); err != nil {
			return nil, false, err
		}
	}

	resp := uc.toResponse(conv, userID, counterpart, product)
	return resp, true, nil
}

// ListConversations returns the caller's conversations, most recently active
// first, enriched with the other participant and product summary.
func (uc *ConversationUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationResponse, error) {
	convs, err := uc.convRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		resp := uc.toResponse(conv, userID, nil, nil)

		other, err := uc.userRepo.GetByID(ctx, conv.OtherParticipant(userID))
		if err == nil {
			resp.OtherUser = other
		} else {
			logger.Warn("failed to load participant %s: %v", conv.OtherParticipant(userID), err)
		}

		if conv.ProductID != "" {
			if product, err := uc.productRepo.GetByID(ctx, conv.ProductID); err == nil {
				resp.Product = product.Summary()
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

// GetConversation returns a conversation with its full message history,
// ordered oldest first.
func (uc *ConversationUseCase) GetConversation(ctx context.Context, conversationID string) (*ConversationDetail, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return &ConversationDetail{
		Conversation: conv,
		Messages:     messages,
	}, nil
}

// ListMessages returns the conversation's messages, oldest first.
func (uc *ConversationUseCase) ListMessages(ctx context.Context, userID, conversationID string) ([]*entity.Message, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, errors.Forbidden("Not a participant of this conversation", nil)
	}

	return uc.messageRepo.ListByConversation(ctx, conversationID)
}

// SendMessage appends a message to the conversation and bumps the recipient's
// unread counter. On a counter update failure the appended message is rolled
// back so the thread never shows a message that was not counted.
func (uc *ConversationUseCase) SendMessage(ctx context.Context, userID, conversationID string, input SendMessageInput) (*entity.Message, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, errors.Forbidden("Not a participant of this conversation", nil)
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}

	return uc.appendMessage(ctx, conv, userID, content)
}

func (uc *ConversationUseCase) appendMessage(ctx context.Context, conv *entity.Conversation, senderID, content string) (*entity.Message, error) {
	message := &entity.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	if err := uc.messageRepo.Append(ctx, message); err != nil {
		return nil, err
	}

	recipient := conv.OtherParticipant(senderID)
	if err := uc.convRepo.TouchOnMessage(ctx, conv.ID, message.CreatedAt, content, senderID, recipient); err != nil {
		if delErr := uc.messageRepo.Delete(ctx, conv.ID, message.ID); delErr != nil {
			logger.Error("failed to roll back message %s after counter update failure: %v", message.ID, delErr)
		}
		return nil, errors.Internal("Failed to record message", err)
	}
	metrics.MessagesSent.Inc()

	if uc.pusher != nil {
		payload, err := json.Marshal(messageEvent{
			Type:           "new_message",
			ConversationID: conv.ID,
			Message:        message,
		})
		if err == nil {
			uc.pusher.SendToUser(recipient, payload)
		}
	}

	return message, nil
}

// MarkConversationRead marks every message from the other participant as read
// and zeroes the caller's unread counter. Calling it on an already-read
// conversation is a no-op.
func (uc *ConversationUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) (int64, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !conv.HasParticipant(userID) {
		return 0, errors.Forbidden("Not a participant of this conversation", nil)
	}

	updated, err := uc.messageRepo.MarkReadFrom(ctx, conversationID, userID)
	if err != nil {
		return 0, err
	}

	if err := uc.convRepo.ResetUnreadFor(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	metrics.MessagesMarkedRead.Add(float64(updated))

	return updated, nil
}

// DeleteConversation removes the conversation and all its messages. Only a
// participant may delete a thread.
func (uc *ConversationUseCase) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(userID) {
		return errors.Forbidden("Not a participant of this conversation", nil)
	}

	return uc.convRepo.Delete(ctx, conversationID)
}

func (uc *ConversationUseCase) toResponse(conv *entity.Conversation, userID string, other *entity.User, product *entity.Product) *ConversationResponse {
	resp := &ConversationResponse{
		Conversation: conv,
		UnreadCount:  conv.UnreadFor(userID),
	}
	if other != nil {
		resp.OtherUser = other
	}
	if product != nil {
		resp.Product = product.Summary()
	}
	return resp
}
