package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	if conv.LastMessageAt.IsZero() {
		conv.LastMessageAt = now
	}

	_, err := r.client.Collection("conversations").Doc(conv.ID).Set(ctx, conv)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conv entity.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conv, nil
}

// FindByParticipants checks both stored orderings because the pair is
// logically unordered even though storage is two named fields.
func (r *firestoreConversationRepository) FindByParticipants(ctx context.Context, idA, idB, productID string) (*entity.Conversation, error) {
	conv, err := r.findOrdered(ctx, idA, idB, productID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	return r.findOrdered(ctx, idB, idA, productID)
}

func (r *firestoreConversationRepository) findOrdered(ctx context.Context, initiatorID, counterpartID, productID string) (*entity.Conversation, error) {
	query := r.client.Collection("conversations").
		Where("initiatorId", "==", initiatorID).
		Where("counterpartId", "==", counterpartID).
		Where("productId", "==", productID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to query conversation by participants", err)
	}

	var conv entity.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conv, nil
}

func (r *firestoreConversationRepository) ListByParticipant(ctx context.Context, participantID string) ([]*entity.Conversation, error) {
	var conversations []*entity.Conversation

	for _, field := range []string{"initiatorId", "counterpartId"} {
		docs, err := r.client.Collection("conversations").Where(field, "==", participantID).Documents(ctx).GetAll()
		if err != nil {
			logger.Error("Firestore error while fetching conversations for %s: %v", participantID, err)
			return nil, errors.Internal("Failed to fetch conversations", err)
		}

		for _, doc := range docs {
			var conv entity.Conversation
			if err := doc.DataTo(&conv); err != nil {
				logger.Warn("Skipping malformed conversation %s: %v", doc.Ref.ID, err)
				continue
			}
			conversations = append(conversations, &conv)
		}
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	return conversations, nil
}

func (r *firestoreConversationRepository) TouchOnMessage(ctx context.Context, id string, lastMessageAt time.Time, content, senderID, incrementCounterFor string) error {
	conv, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var counterField string
	switch incrementCounterFor {
	case conv.InitiatorID:
		counterField = "initiatorUnread"
	case conv.CounterpartID:
		counterField = "counterpartUnread"
	default:
		return errors.Forbidden("Recipient is not a participant in this conversation", nil)
	}

	// Increment is atomic server-side, so concurrent sends never lose counts.
	_, err = r.client.Collection("conversations").Doc(id).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: content},
		{Path: "lastSenderId", Value: senderID},
		{Path: "lastMessageAt", Value: lastMessageAt},
		{Path: "updatedAt", Value: time.Now()},
		{Path: counterField, Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to update conversation after message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ResetUnreadFor(ctx context.Context, id, participantID string) error {
	conv, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var counterField string
	switch participantID {
	case conv.InitiatorID:
		counterField = "initiatorUnread"
	case conv.CounterpartID:
		counterField = "counterpartUnread"
	default:
		return errors.Forbidden("User is not a participant in this conversation", nil)
	}

	// Set-to-zero, not decrement: a concurrent send that lands after this
	// read snapshot keeps its increment.
	_, err = r.client.Collection("conversations").Doc(id).Update(ctx, []firestore.Update{
		{Path: counterField, Value: 0},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to reset unread counter", err)
	}

	return nil
}

func (r *firestoreConversationRepository) Delete(ctx context.Context, id string) error {
	docRef := r.client.Collection("conversations").Doc(id)
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", nil)
		}
		return errors.Internal("Failed to get conversation", err)
	}

	// Cascade: messages live in a subcollection and go first.
	bw := r.client.BulkWriter(ctx)
	iter := docRef.Collection("messages").Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate messages for delete", err)
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return errors.Internal("Failed to delete conversation messages", err)
		}
	}
	if _, err := bw.Delete(docRef); err != nil {
		return errors.Internal("Failed to delete conversation", err)
	}
	bw.End()

	return nil
}
