package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/response"
	"vendora/pkg/utils"
)

type CategoryHandler struct {
	categoryUseCase *usecase.CategoryUseCase
}

func NewCategoryHandler(categoryUseCase *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
	}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.CreateCategory(c.Request().Context(), usecase.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, category)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryUseCase.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	categories, total, err := h.categoryUseCase.ListCategories(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, categories, total, params.Page, params.PageSize)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.UpdateCategory(c.Request().Context(), c.Param("id"), usecase.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryUseCase.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"deleted": true,
	})
}
