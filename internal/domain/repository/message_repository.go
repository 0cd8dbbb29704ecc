package repository

import (
	"context"

	"vendora/internal/domain/entity"
)

type MessageRepository interface {
	Append(ctx context.Context, message *entity.Message) error

	// ListByConversation returns all messages of a conversation ordered by
	// createdAt ascending.
	ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error)

	// MarkReadFrom flips isRead on every unread message in the conversation
	// not authored by excludeSenderID and returns how many were updated.
	MarkReadFrom(ctx context.Context, conversationID, excludeSenderID string) (int64, error)

	Delete(ctx context.Context, conversationID, messageID string) error
}
