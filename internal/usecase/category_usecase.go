package usecase

import (
	"context"
	"regexp"
	"strings"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}

	if existing, _ := uc.categoryRepo.GetBySlug(ctx, slug); existing != nil {
		return nil, errors.Conflict("A category with this slug already exists")
	}

	category := &entity.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

func (uc *CategoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return uc.categoryRepo.GetBySlug(ctx, slug)
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context, limit, offset int) ([]*entity.Category, int64, error) {
	return uc.categoryRepo.List(ctx, limit, offset)
}

func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Slug != "" && input.Slug != category.Slug {
		if existing, _ := uc.categoryRepo.GetBySlug(ctx, input.Slug); existing != nil {
			return nil, errors.Conflict("A category with this slug already exists")
		}
		category.Slug = input.Slug
	}
	if input.Description != "" {
		category.Description = input.Description
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.categoryRepo.Delete(ctx, id)
}
