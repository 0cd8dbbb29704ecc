package usecase

import (
	"context"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
	"vendora/pkg/metrics"
)

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// allowed order status transitions
var orderTransitions = map[string][]string{
	entity.OrderStatusPending: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped: {entity.OrderStatusCompleted, entity.OrderStatusCancelled},
}

// Checkout turns the buyer's cart into an order, snapshotting titles and
// prices, decrementing stock, and clearing the cart.
func (uc *OrderUseCase) Checkout(ctx context.Context, buyerID string) (*entity.Order, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.BadRequest("Cart is empty", nil)
	}

	var (
		items     []entity.OrderItem
		vendorIDs []string
		seen      = map[string]bool{}
		total     float64
	)

	for _, cartItem := range cart.Items {
		product, err := uc.productRepo.GetByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Status != "active" {
			return nil, errors.BadRequest("Product is no longer available: "+product.Title, nil)
		}
		if cartItem.Quantity > product.Stock {
			return nil, errors.BadRequest("Insufficient stock for "+product.Title, nil)
		}

		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			VendorID:  product.VendorID,
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  cartItem.Quantity,
		})
		total += product.Price * float64(cartItem.Quantity)

		if !seen[product.VendorID] {
			seen[product.VendorID] = true
			vendorIDs = append(vendorIDs, product.VendorID)
		}

		product.Stock -= cartItem.Quantity
		product.SoldCount += cartItem.Quantity
		if product.Stock == 0 {
			product.Status = "sold_out"
		}
		if err := uc.productRepo.Update(ctx, product); err != nil {
			return nil, err
		}
	}

	order := &entity.Order{
		BuyerID:   buyerID,
		VendorIDs: vendorIDs,
		Items:     items,
		Total:     total,
		Status:    entity.OrderStatusPending,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	if err := uc.cartRepo.Clear(ctx, buyerID); err != nil {
		logger.Warn("failed to clear cart for %s after checkout: %v", buyerID, err)
	}

	return order, nil
}

// GetOrder returns an order to its buyer or one of its vendors.
func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && !order.HasVendor(userID) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) ListBuyerOrders(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByBuyerID(ctx, buyerID, limit, offset)
}

func (uc *OrderUseCase) ListVendorOrders(ctx context.Context, vendorID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByVendorID(ctx, vendorID, limit, offset)
}

// UpdateStatus moves an order along pending -> shipped -> completed, or to
// cancelled. Vendors ship; buyers complete or cancel.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, userID, orderID, newStatus string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	isBuyer := order.BuyerID == userID
	isVendor := order.HasVendor(userID)
	if !isBuyer && !isVendor {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	allowed := false
	for _, next := range orderTransitions[order.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.BadRequest("Cannot change order status from "+order.Status+" to "+newStatus, nil)
	}

	switch newStatus {
	case entity.OrderStatusShipped:
		if !isVendor {
			return nil, errors.Forbidden("Only the vendor can mark an order as shipped", nil)
		}
	case entity.OrderStatusCompleted:
		if !isBuyer {
			return nil, errors.Forbidden("Only the buyer can complete an order", nil)
		}
	case entity.OrderStatusCancelled:
		// either side may cancel while the transition table allows it
	}

	order.Status = newStatus
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if newStatus == entity.OrderStatusCancelled {
		uc.restock(ctx, order)
	}

	return order, nil
}

func (uc *OrderUseCase) restock(ctx context.Context, order *entity.Order) {
	for _, item := range order.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Warn("failed to restock product %s: %v", item.ProductID, err)
			continue
		}
		product.Stock += item.Quantity
		product.SoldCount -= item.Quantity
		if product.Status == "sold_out" && product.Stock > 0 {
			product.Status = "active"
		}
		if err := uc.productRepo.Update(ctx, product); err != nil {
			logger.Warn("failed to restock product %s: %v", item.ProductID, err)
		}
	}
}
