package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

// GetByUserID returns the user's cart, creating an empty one if none exists.
func (r *firestoreCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	doc, err := r.client.Collection("carts").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			cart := &entity.Cart{
				UserID:    userID,
				Items:     []entity.CartItem{},
				UpdatedAt: time.Now(),
			}
			if _, err := r.client.Collection("carts").Doc(userID).Set(ctx, cart); err != nil {
				return nil, errors.Internal("Failed to create cart", err)
			}
			return cart, nil
		}
		return nil, errors.Internal("Failed to get cart", err)
	}

	var cart entity.Cart
	if err := doc.DataTo(&cart); err != nil {
		return nil, errors.Internal("Failed to parse cart data", err)
	}

	return &cart, nil
}

func (r *firestoreCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()

	_, err := r.client.Collection("carts").Doc(cart.UserID).Set(ctx, cart)
	if err != nil {
		return errors.Internal("Failed to save cart", err)
	}

	return nil
}

func (r *firestoreCartRepository) Clear(ctx context.Context, userID string) error {
	cart := &entity.Cart{
		UserID:    userID,
		Items:     []entity.CartItem{},
		UpdatedAt: time.Now(),
	}

	_, err := r.client.Collection("carts").Doc(userID).Set(ctx, cart)
	if err != nil {
		return errors.Internal("Failed to clear cart", err)
	}

	return nil
}
