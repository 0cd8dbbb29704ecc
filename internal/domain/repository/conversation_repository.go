package repository

import (
	"context"
	"time"

	"vendora/internal/domain/entity"
)

// ConversationRepository is the conversation store. Participant pairs are
// logically unordered; lookups must match both stored orderings.
type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)

	// FindByParticipants returns the conversation for the unordered pair
	// {idA, idB} and the given product association ("" means none), or a
	// NOT_FOUND error.
	FindByParticipants(ctx context.Context, idA, idB, productID string) (*entity.Conversation, error)

	// ListByParticipant returns every conversation the participant belongs
	// to, ordered by lastMessageAt descending.
	ListByParticipant(ctx context.Context, participantID string) ([]*entity.Conversation, error)

	// TouchOnMessage sets lastMessage/lastSenderId/lastMessageAt and
	// atomically increments the unread counter of incrementCounterFor,
	// which must be one of the two participants.
	TouchOnMessage(ctx context.Context, id string, lastMessageAt time.Time, content, senderID, incrementCounterFor string) error

	// ResetUnreadFor zeroes participantID's unread counter. Fails with a
	// FORBIDDEN error if participantID is not on the conversation.
	ResetUnreadFor(ctx context.Context, id, participantID string) error

	// Delete removes the conversation and cascades to its messages.
	Delete(ctx context.Context, id string) error
}
