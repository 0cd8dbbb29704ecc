package usecase

import (
	"context"

	"github.com/google/uuid"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

type CreateProductInput struct {
	CategoryID  string              `json:"category_id" validate:"required"`
	Title       string              `json:"title" validate:"required,min=3"`
	Description string              `json:"description"`
	Price       float64             `json:"price" validate:"required,gt=0"`
	Stock       int                 `json:"stock" validate:"gte=0"`
	Status      string              `json:"status"`
	Images      []ProductImageInput `json:"images"`
}

type UpdateProductInput struct {
	CategoryID  string              `json:"category_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Stock       *int                `json:"stock"`
	Status      string              `json:"status"`
	Images      []ProductImageInput `json:"images"`
}

type ProductImageInput struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type ListProductsInput struct {
	CategoryID string
	VendorID   string
	Status     string
	Sort       string
	Limit      int
	Offset     int
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, vendorID string, input CreateProductInput) (*entity.Product, error) {
	vendor, err := uc.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != "vendor" && vendor.Role != "admin" {
		return nil, errors.Forbidden("Only vendors can list products", nil)
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errors.BadRequest("Invalid category", err)
	}

	status := input.Status
	if status == "" {
		status = "active"
	}
	if status != "active" && status != "inactive" {
		return nil, errors.BadRequest("Invalid product status", nil)
	}

	images := make([]entity.ProductImage, len(input.Images))
	for i, img := range input.Images {
		images[i] = entity.ProductImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	product := &entity.Product{
		VendorID:    vendorID,
		CategoryID:  category.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      status,
		Images:      images,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("failed to increment views for product %s: %v", id, err)
	}

	return product, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*entity.Product, int64, error) {
	filter := map[string]interface{}{}
	if input.CategoryID != "" {
		filter["categoryId"] = input.CategoryID
	}
	if input.VendorID != "" {
		filter["vendorId"] = input.VendorID
	}
	status := input.Status
	if status == "" {
		status = "active"
	}
	filter["status"] = status

	return uc.productRepo.List(ctx, filter, input.Sort, input.Limit, input.Offset)
}

func (uc *ProductUseCase) SearchProducts(ctx context.Context, query string, input ListProductsInput) ([]*entity.Product, int64, error) {
	if query == "" {
		return nil, 0, errors.BadRequest("Search query is required", nil)
	}

	filter := map[string]interface{}{"status": "active"}
	if input.CategoryID != "" {
		filter["categoryId"] = input.CategoryID
	}

	return uc.productRepo.SearchByTitle(ctx, query, filter, input.Limit, input.Offset)
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, vendorID, productID string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendorID {
		return nil, errors.Forbidden("You can only update your own products", nil)
	}

	if input.CategoryID != "" {
		if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, errors.BadRequest("Invalid category", err)
		}
		product.CategoryID = input.CategoryID
	}
	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, errors.BadRequest("Stock cannot be negative", nil)
		}
		product.Stock = *input.Stock
	}
	if input.Status != "" {
		if input.Status != "active" && input.Status != "inactive" {
			return nil, errors.BadRequest("Invalid product status", nil)
		}
		product.Status = input.Status
	}
	if input.Images != nil {
		images := make([]entity.ProductImage, len(input.Images))
		for i, img := range input.Images {
			images[i] = entity.ProductImage{
				ID:           uuid.New().String(),
				URL:          img.URL,
				DisplayOrder: img.DisplayOrder,
			}
		}
		product.Images = images
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, vendorID, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.VendorID != vendorID {
		return errors.Forbidden("You can only delete your own products", nil)
	}

	return uc.productRepo.SoftDelete(ctx, productID)
}

func (uc *ProductUseCase) ListVendorProducts(ctx context.Context, vendorID, status string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.ListByVendorID(ctx, vendorID, status, limit, offset)
}
