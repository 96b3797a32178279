package gorm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/pkg/pagination"
	"github.com/finchmedia/finch/pkg/repository"
)

// CategoryRepository implements catalog.CategoryRepository.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new GORM category repository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	model := &CategoryModel{}
	model.FromDomain(category)
	return repository.Create(ctx, r.db, model)
}

// Update saves a modified category.
func (r *CategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	model := &CategoryModel{}
	model.FromDomain(category)
	return repository.Update(ctx, r.db, model)
}

// FindByID retrieves a category by id.
func (r *CategoryRepository) FindByID(ctx context.Context, id catalog.CategoryID) (*catalog.Category, error) {
	model, err := repository.FindByID[CategoryModel](ctx, r.db, uuid.UUID(id))
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByID removes a category by id.
func (r *CategoryRepository) DeleteByID(ctx context.Context, id catalog.CategoryID) error {
	return repository.Delete[CategoryModel](ctx, r.db, uuid.UUID(id))
}

// List returns a page of categories matching the query.
func (r *CategoryRepository) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.Category], error) {
	var models []CategoryModel
	var total int64

	tx := r.db.WithContext(ctx).Model(&CategoryModel{})
	if query.Terms != "" {
		terms := "%" + strings.ToLower(query.Terms) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", terms, terms)
	}
	if err := tx.Count(&total).Error; err != nil {
		return pagination.Page[*catalog.Category]{}, err
	}

	tx = tx.Order(orderClause(query, "name", map[string]string{"name": "name", "created_at": "created_at"}))
	if err := tx.Offset(query.Offset()).Limit(query.PerPage).Find(&models).Error; err != nil {
		return pagination.Page[*catalog.Category]{}, err
	}

	items := make([]*catalog.Category, len(models))
	for i := range models {
		items[i] = models[i].ToDomain()
	}
	return pagination.Page[*catalog.Category]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
		Total:       total,
		Items:       items,
	}, nil
}

// ExistsByIDs returns the subset of the given category ids that exist.
func (r *CategoryRepository) ExistsByIDs(ctx context.Context, ids []catalog.CategoryID) ([]catalog.CategoryID, error) {
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = uuid.UUID(id)
	}
	found, err := repository.ExistingIDs[CategoryModel](ctx, r.db, raw)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.CategoryID, len(found))
	for i, id := range found {
		out[i] = catalog.CategoryID(id)
	}
	return out, nil
}

// GenreRepository implements catalog.GenreRepository.
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new GORM genre repository.
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create persists a new genre and its category references.
func (r *GenreRepository) Create(ctx context.Context, genre *catalog.Genre) error {
	model := &GenreModel{}
	model.FromDomain(genre)
	return repository.Create(ctx, r.db, model)
}

// Update saves a modified genre, replacing its category references.
func (r *GenreRepository) Update(ctx context.Context, genre *catalog.Genre) error {
	model := &GenreModel{}
	model.FromDomain(genre)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", model.ID).Delete(&GenreCategoryModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
}

// FindByID retrieves a genre by id with its category references.
func (r *GenreRepository) FindByID(ctx context.Context, id catalog.GenreID) (*catalog.Genre, error) {
	model, err := repository.FindByID[GenreModel](ctx, r.db, uuid.UUID(id), "Categories")
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByID removes a genre by id.
func (r *GenreRepository) DeleteByID(ctx context.Context, id catalog.GenreID) error {
	return repository.Delete[GenreModel](ctx, r.db, uuid.UUID(id))
}

// List returns a page of genres matching the query.
func (r *GenreRepository) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.Genre], error) {
	var models []GenreModel
	var total int64

	tx := r.db.WithContext(ctx).Model(&GenreModel{})
	if query.Terms != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Terms)+"%")
	}
	if err := tx.Count(&total).Error; err != nil {
		return pagination.Page[*catalog.Genre]{}, err
	}

	tx = tx.Preload("Categories").
		Order(orderClause(query, "name", map[string]string{"name": "name", "created_at": "created_at"}))
	if err := tx.Offset(query.Offset()).Limit(query.PerPage).Find(&models).Error; err != nil {
		return pagination.Page[*catalog.Genre]{}, err
	}

	items := make([]*catalog.Genre, len(models))
	for i := range models {
		items[i] = models[i].ToDomain()
	}
	return pagination.Page[*catalog.Genre]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
		Total:       total,
		Items:       items,
	}, nil
}

// ExistsByIDs returns the subset of the given genre ids that exist.
func (r *GenreRepository) ExistsByIDs(ctx context.Context, ids []catalog.GenreID) ([]catalog.GenreID, error) {
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = uuid.UUID(id)
	}
	found, err := repository.ExistingIDs[GenreModel](ctx, r.db, raw)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.GenreID, len(found))
	for i, id := range found {
		out[i] = catalog.GenreID(id)
	}
	return out, nil
}

// CastMemberRepository implements catalog.CastMemberRepository.
type CastMemberRepository struct {
	db *gorm.DB
}

// NewCastMemberRepository creates a new GORM cast member repository.
func NewCastMemberRepository(db *gorm.DB) *CastMemberRepository {
	return &CastMemberRepository{db: db}
}

// Create persists a new cast member.
func (r *CastMemberRepository) Create(ctx context.Context, member *catalog.CastMember) error {
	model := &CastMemberModel{}
	model.FromDomain(member)
	return repository.Create(ctx, r.db, model)
}

// Update saves a modified cast member.
func (r *CastMemberRepository) Update(ctx context.Context, member *catalog.CastMember) error {
	model := &CastMemberModel{}
	model.FromDomain(member)
	return repository.Update(ctx, r.db, model)
}

// FindByID retrieves a cast member by id.
func (r *CastMemberRepository) FindByID(ctx context.Context, id catalog.CastMemberID) (*catalog.CastMember, error) {
	model, err := repository.FindByID[CastMemberModel](ctx, r.db, uuid.UUID(id))
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByID removes a cast member by id.
func (r *CastMemberRepository) DeleteByID(ctx context.Context, id catalog.CastMemberID) error {
	return repository.Delete[CastMemberModel](ctx, r.db, uuid.UUID(id))
}

// List returns a page of cast members matching the query.
func (r *CastMemberRepository) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.CastMember], error) {
	var models []CastMemberModel
	var total int64

	tx := r.db.WithContext(ctx).Model(&CastMemberModel{})
	if query.Terms != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Terms)+"%")
	}
	if err := tx.Count(&total).Error; err != nil {
		return pagination.Page[*catalog.CastMember]{}, err
	}

	tx = tx.Order(orderClause(query, "name", map[string]string{"name": "name", "type": "type", "created_at": "created_at"}))
	if err := tx.Offset(query.Offset()).Limit(query.PerPage).Find(&models).Error; err != nil {
		return pagination.Page[*catalog.CastMember]{}, err
	}

	items := make([]*catalog.CastMember, len(models))
	for i := range models {
		items[i] = models[i].ToDomain()
	}
	return pagination.Page[*catalog.CastMember]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
		Total:       total,
		Items:       items,
	}, nil
}

// ExistsByIDs returns the subset of the given cast member ids that
// exist.
func (r *CastMemberRepository) ExistsByIDs(ctx context.Context, ids []catalog.CastMemberID) ([]catalog.CastMemberID, error) {
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = uuid.UUID(id)
	}
	found, err := repository.ExistingIDs[CastMemberModel](ctx, r.db, raw)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.CastMemberID, len(found))
	for i, id := range found {
		out[i] = catalog.CastMemberID(id)
	}
	return out, nil
}

// orderClause builds the ORDER BY expression from the query's sort
// field, restricted to the whitelisted columns; unknown fields fall
// back to the first declared column.
func orderClause(query pagination.SearchQuery, fallback string, columns map[string]string) string {
	column, ok := columns[query.Sort]
	if !ok {
		column = fallback
	}
	direction := "ASC"
	if query.Direction == "desc" {
		direction = "DESC"
	}
	return column + " " + direction
}
