package service

import (
	"context"
	"fmt"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/interfaces"
	"github.com/finchmedia/finch/pkg/pagination"
)

// CreateCategoryInput carries the fields for creating a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Active      bool
}

// UpdateCategoryInput carries the fields for updating a category.
type UpdateCategoryInput struct {
	Name        string
	Description string
	Active      bool
}

// CategoryService orchestrates category use cases.
type CategoryService struct {
	repo   catalog.CategoryRepository
	logger interfaces.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo catalog.CategoryRepository, logger interfaces.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*catalog.Category, error) {
	category, err := catalog.NewCategory(input.Name, input.Description, input.Active)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", interfaces.Error(err))
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on create category was observed [categoryID:%s]", category.ID()), err)
	}

	s.logger.Info("Category created",
		interfaces.String("id", category.ID().String()),
		interfaces.String("name", category.Name()))
	return category, nil
}

// Get retrieves a category by id.
func (s *CategoryService) Get(ctx context.Context, id catalog.CategoryID) (*catalog.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundWithID("Category", id.String())
		}
		return nil, err
	}
	return category, nil
}

// Update loads, mutates, re-validates, and persists a category.
func (s *CategoryService) Update(ctx context.Context, id catalog.CategoryID, input UpdateCategoryInput) (*catalog.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := category.Update(input.Name, input.Description, input.Active); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on update category was observed [categoryID:%s]", id), err)
	}
	return category, nil
}

// Delete removes a category by id. Deleting an absent category is not an
// error.
func (s *CategoryService) Delete(ctx context.Context, id catalog.CategoryID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil && !errors.IsNotFound(err) {
		return err
	}
	return nil
}

// List returns a page of categories.
func (s *CategoryService) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.Category], error) {
	return s.repo.List(ctx, query)
}
