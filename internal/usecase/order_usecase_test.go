package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendora/internal/domain/entity"
	"vendora/pkg/errors"
)

type fakeCartRepo struct {
	carts map[string]*entity.Cart
}

func (r *fakeCartRepo) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		cart = &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
		r.carts[userID] = cart
	}
	return cart, nil
}

func (r *fakeCartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	r.carts[cart.UserID] = cart
	return nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	r.carts[userID] = &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	seq    int
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.seq++
	order.ID = fmt.Sprintf("order-%d", r.seq)
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (r *fakeOrderRepo) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	var result []*entity.Order
	for _, order := range r.orders {
		if order.BuyerID == buyerID {
			result = append(result, order)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeOrderRepo) ListByVendorID(ctx context.Context, vendorID string, limit, offset int) ([]*entity.Order, int64, error) {
	var result []*entity.Order
	for _, order := range r.orders {
		if order.HasVendor(vendorID) {
			result = append(result, order)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func newOrderFixture() (*OrderUseCase, *fakeCartRepo, *fakeProductRepo, *fakeOrderRepo) {
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", VendorID: "bob", Title: "Mechanical Keyboard", Price: 75, Stock: 10, Status: "active"},
		"prod-2": {ID: "prod-2", VendorID: "dana", Title: "Vertical Mouse", Price: 40, Stock: 2, Status: "active"},
	}}
	cartRepo := &fakeCartRepo{carts: map[string]*entity.Cart{}}
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.Order{}}

	return NewOrderUseCase(orderRepo, cartRepo, productRepo), cartRepo, productRepo, orderRepo
}

func TestCheckoutSnapshotsCartAcrossVendors(t *testing.T) {
	uc, cartRepo, productRepo, _ := newOrderFixture()
	ctx := context.Background()

	cartRepo.carts["alice"] = &entity.Cart{UserID: "alice", Items: []entity.CartItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: 75},
		{ProductID: "prod-2", Quantity: 1, UnitPrice: 40},
	}}

	order, err := uc.Checkout(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", order.BuyerID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.ElementsMatch(t, []string{"bob", "dana"}, order.VendorIDs)
	assert.Equal(t, 190.0, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Mechanical Keyboard", order.Items[0].Title)

	// stock decremented and cart cleared
	keyboard, _ := productRepo.GetByID(ctx, "prod-1")
	assert.Equal(t, 8, keyboard.Stock)
	cart, _ := cartRepo.GetByUserID(ctx, "alice")
	assert.Empty(t, cart.Items)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	uc, _, _, _ := newOrderFixture()

	_, err := uc.Checkout(context.Background(), "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestCheckoutRejectsInsufficientStock(t *testing.T) {
	uc, cartRepo, _, _ := newOrderFixture()

	cartRepo.carts["alice"] = &entity.Cart{UserID: "alice", Items: []entity.CartItem{
		{ProductID: "prod-2", Quantity: 5, UnitPrice: 40},
	}}

	_, err := uc.Checkout(context.Background(), "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestOrderStatusTransitions(t *testing.T) {
	uc, cartRepo, _, _ := newOrderFixture()
	ctx := context.Background()

	cartRepo.carts["alice"] = &entity.Cart{UserID: "alice", Items: []entity.CartItem{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: 75},
	}}
	order, err := uc.Checkout(ctx, "alice")
	require.NoError(t, err)

	// buyer cannot ship
	_, err = uc.UpdateStatus(ctx, "alice", order.ID, entity.OrderStatusShipped)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// vendor ships
	shipped, err := uc.UpdateStatus(ctx, "bob", order.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, shipped.Status)

	// vendor cannot complete
	_, err = uc.UpdateStatus(ctx, "bob", order.ID, entity.OrderStatusCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// buyer completes
	completed, err := uc.UpdateStatus(ctx, "alice", order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)

	// completed is terminal
	_, err = uc.UpdateStatus(ctx, "alice", order.ID, entity.OrderStatusCancelled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestCancelledOrderRestocks(t *testing.T) {
	uc, cartRepo, productRepo, _ := newOrderFixture()
	ctx := context.Background()

	cartRepo.carts["alice"] = &entity.Cart{UserID: "alice", Items: []entity.CartItem{
		{ProductID: "prod-2", Quantity: 2, UnitPrice: 40},
	}}
	order, err := uc.Checkout(ctx, "alice")
	require.NoError(t, err)

	mouse, _ := productRepo.GetByID(ctx, "prod-2")
	assert.Equal(t, 0, mouse.Stock)
	assert.Equal(t, "sold_out", mouse.Status)

	_, err = uc.UpdateStatus(ctx, "alice", order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	mouse, _ = productRepo.GetByID(ctx, "prod-2")
	assert.Equal(t, 2, mouse.Stock)
	assert.Equal(t, "active", mouse.Status)
}

func TestGetOrderAccessControl(t *testing.T) {
	uc, cartRepo, _, _ := newOrderFixture()
	ctx := context.Background()

	cartRepo.carts["alice"] = &entity.Cart{UserID: "alice", Items: []entity.CartItem{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: 75},
	}}
	order, err := uc.Checkout(ctx, "alice")
	require.NoError(t, err)

	_, err = uc.GetOrder(ctx, "alice", order.ID)
	assert.NoError(t, err)
	_, err = uc.GetOrder(ctx, "bob", order.ID)
	assert.NoError(t, err)

	_, err = uc.GetOrder(ctx, "carol", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
