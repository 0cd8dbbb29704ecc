package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/response"
	"vendora/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type createProductRequest struct {
	CategoryID  string                `json:"category_id" validate:"required"`
	Title       string                `json:"title" validate:"required,min=3"`
	Description string                `json:"description"`
	Price       float64               `json:"price" validate:"required,gt=0"`
	Stock       int                   `json:"stock" validate:"gte=0"`
	Status      string                `json:"status" validate:"omitempty,oneof=active inactive"`
	Images      []productImageRequest `json:"images" validate:"dive"`
}

type updateProductRequest struct {
	CategoryID  string                `json:"category_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Price       float64               `json:"price"`
	Stock       *int                  `json:"stock"`
	Status      string                `json:"status" validate:"omitempty,oneof=active inactive"`
	Images      []productImageRequest `json:"images" validate:"dive"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), userID, usecase.CreateProductInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      req.Status,
		Images:      toImageInputs(req.Images),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		CategoryID: c.QueryParam("category_id"),
		VendorID:   c.QueryParam("vendor_id"),
		Sort:       c.QueryParam("sort"),
		Limit:      params.PageSize,
		Offset:     params.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.SearchProducts(c.Request().Context(), c.QueryParam("q"), usecase.ListProductsInput{
		CategoryID: c.QueryParam("category_id"),
		Limit:      params.PageSize,
		Offset:     params.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	var images []usecase.ProductImageInput
	if req.Images != nil {
		images = toImageInputs(req.Images)
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), userID, c.Param("id"), usecase.UpdateProductInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      req.Status,
		Images:      images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"deleted": true,
	})
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	products, total, err := h.productUseCase.ListVendorProducts(c.Request().Context(), userID, c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func toImageInputs(images []productImageRequest) []usecase.ProductImageInput {
	inputs := make([]usecase.ProductImageInput, len(images))
	for i, img := range images {
		inputs[i] = usecase.ProductImageInput{
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}
	return inputs
}
