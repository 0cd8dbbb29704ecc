package repository

import (
	"context"

	"vendora/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error)
	ListByVendorID(ctx context.Context, vendorID string, limit, offset int) ([]*entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error
}
