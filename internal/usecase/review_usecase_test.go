package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendora/internal/domain/entity"
	"vendora/pkg/errors"
)

type fakeReviewRepo struct {
	reviews map[string]*entity.Review
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.seq++
	review.ID = fmt.Sprintf("review-%d", r.seq)
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	return review, nil
}

func (r *fakeReviewRepo) GetByProductAndReviewer(ctx context.Context, productID, reviewerID string) (*entity.Review, error) {
	for _, review := range r.reviews {
		if review.ProductID == productID && review.ReviewerID == reviewerID {
			return review, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Review, int64, error) {
	var result []*entity.Review
	for _, review := range r.reviews {
		if review.ProductID == productID && review.Status == "active" {
			result = append(result, review)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	delete(r.reviews, id)
	return nil
}

func newReviewFixture() (*ReviewUseCase, *fakeReviewRepo, *fakeProductRepo) {
	reviewRepo := newFakeReviewRepo()
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", VendorID: "bob", Title: "Mechanical Keyboard", Price: 75, Stock: 10, Status: "active"},
	}}
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.Order{
		"order-done": {
			ID:      "order-done",
			BuyerID: "alice",
			Status:  entity.OrderStatusCompleted,
			Items:   []entity.OrderItem{{ProductID: "prod-1", Quantity: 1, UnitPrice: 75}},
		},
		"order-open": {
			ID:      "order-open",
			BuyerID: "carol",
			Status:  entity.OrderStatusPending,
			Items:   []entity.OrderItem{{ProductID: "prod-1", Quantity: 1, UnitPrice: 75}},
		},
	}}

	return NewReviewUseCase(reviewRepo, productRepo, orderRepo), reviewRepo, productRepo
}

func TestCreateReviewRequiresCompletedOrder(t *testing.T) {
	uc, _, productRepo := newReviewFixture()
	ctx := context.Background()

	review, err := uc.CreateReview(ctx, "alice", "prod-1", CreateReviewInput{Rating: 4, Content: "Solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, float64(4), productRepo.products["prod-1"].Rating)
	assert.Equal(t, 1, productRepo.products["prod-1"].ReviewCount)

	_, err = uc.CreateReview(ctx, "carol", "prod-1", CreateReviewInput{Rating: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateReviewRejectsDuplicateAndSelfReview(t *testing.T) {
	uc, _, _ := newReviewFixture()
	ctx := context.Background()

	_, err := uc.CreateReview(ctx, "alice", "prod-1", CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	_, err = uc.CreateReview(ctx, "alice", "prod-1", CreateReviewInput{Rating: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = uc.CreateReview(ctx, "bob", "prod-1", CreateReviewInput{Rating: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestUpdateReviewByOwnerRefreshesRating(t *testing.T) {
	uc, reviewRepo, productRepo := newReviewFixture()
	ctx := context.Background()

	created, err := uc.CreateReview(ctx, "alice", "prod-1", CreateReviewInput{Rating: 2, Content: "Meh"})
	require.NoError(t, err)
	require.Equal(t, float64(2), productRepo.products["prod-1"].Rating)

	updated, err := uc.UpdateReview(ctx, "alice", created.ID, UpdateReviewInput{Rating: 5, Content: "Grew on me"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Grew on me", updated.Content)
	assert.Equal(t, 5, reviewRepo.reviews[created.ID].Rating)
	assert.Equal(t, float64(5), productRepo.products["prod-1"].Rating)
}

func TestUpdateReviewAccessControl(t *testing.T) {
	uc, _, _ := newReviewFixture()
	ctx := context.Background()

	created, err := uc.CreateReview(ctx, "alice", "prod-1", CreateReviewInput{Rating: 3})
	require.NoError(t, err)

	_, err = uc.UpdateReview(ctx, "carol", created.ID, UpdateReviewInput{Rating: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.UpdateReview(ctx, "alice", "missing", UpdateReviewInput{Rating: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteReviewRefreshesRating(t *testing.T) {
	uc, _, productRepo := newReviewFixture()
	ctx := context.Background()

	created, err := uc.CreateReview(ctx, "alice", "prod-1", CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	require.Error(t, uc.DeleteReview(ctx, "carol", created.ID))

	require.NoError(t, uc.DeleteReview(ctx, "alice", created.ID))
	assert.Equal(t, float64(0), productRepo.products["prod-1"].Rating)
	assert.Equal(t, 0, productRepo.products["prod-1"].ReviewCount)
}
