package usecase

import (
	"context"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type AddCartItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CartResponse struct {
	*entity.Cart
	Total float64 `json:"total"`
}

func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CartResponse{Cart: cart, Total: cart.Total()}, nil
}

// AddItem puts a product in the cart, merging quantities if it is already
// there. The unit price is refreshed from the listing on every add.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, input AddCartItemInput) (*CartResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Status != "active" {
		return nil, errors.BadRequest("Product is not available", nil)
	}
	if product.VendorID == userID {
		return nil, errors.BadRequest("You cannot buy your own product", nil)
	}

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if item := cart.ItemFor(input.ProductID); item != nil {
		quantity += item.Quantity
	}
	if quantity > product.Stock {
		return nil, errors.BadRequest("Requested quantity exceeds available stock", nil)
	}

	if item := cart.ItemFor(input.ProductID); item != nil {
		item.Quantity = quantity
		item.UnitPrice = product.Price
	} else {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: input.ProductID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
	}

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return &CartResponse{Cart: cart, Total: cart.Total()}, nil
}

// UpdateQuantity sets a cart line to an exact quantity, in either direction.
// Removing a line goes through RemoveItem, so quantity stays >= 1 here.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*CartResponse, error) {
	if quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, errors.BadRequest("Requested quantity exceeds available stock", nil)
	}

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.ItemFor(productID)
	if item == nil {
		return nil, errors.NotFound("Cart item", nil)
	}
	item.Quantity = quantity
	item.UnitPrice = product.Price

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return &CartResponse{Cart: cart, Total: cart.Total()}, nil
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*CartResponse, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, errors.NotFound("Cart item", nil)
	}
	cart.Items = items

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return &CartResponse{Cart: cart, Total: cart.Total()}, nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) error {
	return uc.cartRepo.Clear(ctx, userID)
}
