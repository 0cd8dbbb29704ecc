package repository

import (
	"context"

	"vendora/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByProductAndReviewer(ctx context.Context, productID, reviewerID string) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Review, int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
}
