package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/internal/domain/validation"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/interfaces"
	"github.com/finchmedia/finch/pkg/pagination"
)

// CreateGenreInput carries the fields for creating a genre.
type CreateGenreInput struct {
	Name       string
	Active     bool
	Categories []catalog.CategoryID
}

// UpdateGenreInput carries the fields for updating a genre.
type UpdateGenreInput struct {
	Name       string
	Active     bool
	Categories []catalog.CategoryID
}

// GenreService orchestrates genre use cases, including the category
// cross-reference validation.
type GenreService struct {
	repo         catalog.GenreRepository
	categoryRepo catalog.CategoryRepository
	logger       interfaces.Logger
}

// NewGenreService creates a new genre service.
func NewGenreService(repo catalog.GenreRepository, categoryRepo catalog.CategoryRepository, logger interfaces.Logger) *GenreService {
	return &GenreService{repo: repo, categoryRepo: categoryRepo, logger: logger}
}

// Create validates the referenced categories and the aggregate in one
// pass, surfacing every problem at once, then persists.
func (s *GenreService) Create(ctx context.Context, input CreateGenreInput) (*catalog.Genre, error) {
	n := validation.NewNotification()
	if err := s.validateCategories(ctx, n, input.Categories); err != nil {
		return nil, err
	}

	var genre *catalog.Genre
	n.Check(func() error {
		var err error
		genre, err = catalog.NewGenre(input.Name, input.Active, input.Categories)
		return err
	})

	if err := validation.AsError(n, "could not create aggregate genre"); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on create genre was observed [genreID:%s]", genre.ID()), err)
	}
	return genre, nil
}

// Get retrieves a genre by id.
func (s *GenreService) Get(ctx context.Context, id catalog.GenreID) (*catalog.Genre, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundWithID("Genre", id.String())
		}
		return nil, err
	}
	return genre, nil
}

// Update loads, cross-validates, mutates, and persists a genre.
func (s *GenreService) Update(ctx context.Context, id catalog.GenreID, input UpdateGenreInput) (*catalog.Genre, error) {
	genre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	n := validation.NewNotification()
	if err := s.validateCategories(ctx, n, input.Categories); err != nil {
		return nil, err
	}
	n.Check(func() error {
		_, err := genre.Update(input.Name, input.Active, input.Categories)
		return err
	})

	if err := validation.AsError(n, "could not update aggregate genre"); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on update genre was observed [genreID:%s]", id), err)
	}
	return genre, nil
}

// Delete removes a genre by id. Deleting an absent genre is not an
// error.
func (s *GenreService) Delete(ctx context.Context, id catalog.GenreID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil && !errors.IsNotFound(err) {
		return err
	}
	return nil
}

// List returns a page of genres.
func (s *GenreService) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.Genre], error) {
	return s.repo.List(ctx, query)
}

// validateCategories batch-checks that every referenced category exists:
// one ExistsByIDs round-trip, one aggregated violation naming every
// missing id in request order.
func (s *GenreService) validateCategories(ctx context.Context, h validation.Handler, ids []catalog.CategoryID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.categoryRepo.ExistsByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "failed to check categories existence", err)
	}

	existing := make(map[catalog.CategoryID]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id.String())
			existing[id] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	h.Append(validation.NewError(
		fmt.Sprintf("some categories could not be found: %s", strings.Join(missing, ", "))))
	return nil
}
