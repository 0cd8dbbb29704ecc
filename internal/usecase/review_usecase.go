package usecase

import (
	"context"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content"`
}

// CreateReview records a review for a product the reviewer has bought. A
// reviewer gets one review per product.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID, productID string, input CreateReviewInput) (*entity.Review, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.VendorID == reviewerID {
		return nil, errors.BadRequest("Vendors cannot review their own products", nil)
	}

	if existing, _ := uc.reviewRepo.GetByProductAndReviewer(ctx, productID, reviewerID); existing != nil {
		return nil, errors.Conflict("You have already reviewed this product")
	}

	purchased, err := uc.hasCompletedPurchase(ctx, reviewerID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, errors.Forbidden("Only buyers who completed an order can review this product", nil)
	}

	review := &entity.Review{
		ProductID:  productID,
		ReviewerID: reviewerID,
		Rating:     input.Rating,
		Content:    input.Content,
		Status:     "active",
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.refreshProductRating(ctx, product); err != nil {
		logger.Warn("failed to refresh rating for product %s: %v", productID, err)
	}

	return review, nil
}

type UpdateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content"`
}

// UpdateReview lets the reviewer revise their rating or text.
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, userID, reviewID string, input UpdateReviewInput) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != userID {
		return nil, errors.Forbidden("You can only edit your own reviews", nil)
	}

	review.Rating = input.Rating
	review.Content = input.Content

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if product, err := uc.productRepo.GetByID(ctx, review.ProductID); err == nil {
		if err := uc.refreshProductRating(ctx, product); err != nil {
			logger.Warn("failed to refresh rating for product %s: %v", review.ProductID, err)
		}
	}

	return review, nil
}

func (uc *ReviewUseCase) ListProductReviews(ctx context.Context, productID string, limit, offset int) ([]*entity.Review, int64, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, 0, err
	}

	return uc.reviewRepo.ListByProduct(ctx, productID, limit, offset)
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, userID, reviewID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ReviewerID != userID {
		return errors.Forbidden("You can only delete your own reviews", nil)
	}

	if err := uc.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if product, err := uc.productRepo.GetByID(ctx, review.ProductID); err == nil {
		if err := uc.refreshProductRating(ctx, product); err != nil {
			logger.Warn("failed to refresh rating for product %s: %v", review.ProductID, err)
		}
	}

	return nil
}

func (uc *ReviewUseCase) hasCompletedPurchase(ctx context.Context, buyerID, productID string) (bool, error) {
	orders, _, err := uc.orderRepo.ListByBuyerID(ctx, buyerID, 0, 0)
	if err != nil {
		return false, err
	}

	for _, order := range orders {
		if order.Status != entity.OrderStatusCompleted {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}

	return false, nil
}

// refreshProductRating recomputes the denormalized rating aggregate from the
// product's active reviews.
func (uc *ReviewUseCase) refreshProductRating(ctx context.Context, product *entity.Product) error {
	reviews, total, err := uc.reviewRepo.ListByProduct(ctx, product.ID, 0, 0)
	if err != nil {
		return err
	}

	var sum int
	for _, review := range reviews {
		sum += review.Rating
	}

	if total == 0 {
		product.Rating = 0
		product.ReviewCount = 0
	} else {
		product.Rating = float64(sum) / float64(total)
		product.ReviewCount = int(total)
	}

	return uc.productRepo.Update(ctx, product)
}
