package repository

import (
	"context"

	"vendora/internal/domain/entity"
)

type CartRepository interface {
	// GetByUserID returns the user's cart, creating an empty one if absent.
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Clear(ctx context.Context, userID string) error
}
