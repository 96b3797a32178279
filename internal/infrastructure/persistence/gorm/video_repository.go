package gorm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/pkg/pagination"
	"github.com/finchmedia/finch/pkg/repository"
)

// VideoRepository implements video.Repository.
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new GORM video repository.
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video and its relation references.
func (r *VideoRepository) Create(ctx context.Context, v *video.Video) error {
	model := &VideoModel{}
	model.FromDomain(v)
	return repository.Create(ctx, r.db, model)
}

// Update saves a modified video, replacing its relation references.
func (r *VideoRepository) Update(ctx context.Context, v *video.Video) error {
	model := &VideoModel{}
	model.FromDomain(v)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", model.ID).Delete(&VideoCategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", model.ID).Delete(&VideoGenreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", model.ID).Delete(&VideoCastMemberModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
}

// FindByID retrieves a video by id with its relation references.
func (r *VideoRepository) FindByID(ctx context.Context, id video.VideoID) (*video.Video, error) {
	model, err := repository.FindByID[VideoModel](ctx, r.db, uuid.UUID(id),
		"Categories", "Genres", "CastMembers")
	if err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// DeleteByID removes a video by id; join rows cascade.
func (r *VideoRepository) DeleteByID(ctx context.Context, id video.VideoID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		raw := uuid.UUID(id)
		if err := tx.Where("video_id = ?", raw).Delete(&VideoCategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", raw).Delete(&VideoGenreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", raw).Delete(&VideoCastMemberModel{}).Error; err != nil {
			return err
		}
		return repository.Delete[VideoModel](ctx, tx, raw)
	})
}

// videoPreviewRow is the listing projection: no media columns, no
// relation preloads.
type videoPreviewRow struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// List returns a page of video previews matching the query. Relation
// filters restrict through the join tables; the projection never loads
// media columns or relation sets.
func (r *VideoRepository) List(ctx context.Context, query video.SearchQuery) (pagination.Page[video.Preview], error) {
	tx := r.db.WithContext(ctx).Model(&VideoModel{})

	if query.Terms != "" {
		terms := "%" + strings.ToLower(query.Terms) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", terms, terms)
	}
	if len(query.Categories) > 0 {
		ids := make([]uuid.UUID, len(query.Categories))
		for i, id := range query.Categories {
			ids[i] = uuid.UUID(id)
		}
		tx = tx.Where("id IN (?)",
			r.db.Model(&VideoCategoryModel{}).Select("video_id").Where("category_id IN ?", ids))
	}
	if len(query.Genres) > 0 {
		ids := make([]uuid.UUID, len(query.Genres))
		for i, id := range query.Genres {
			ids[i] = uuid.UUID(id)
		}
		tx = tx.Where("id IN (?)",
			r.db.Model(&VideoGenreModel{}).Select("video_id").Where("genre_id IN ?", ids))
	}
	if len(query.CastMembers) > 0 {
		ids := make([]uuid.UUID, len(query.CastMembers))
		for i, id := range query.CastMembers {
			ids[i] = uuid.UUID(id)
		}
		tx = tx.Where("id IN (?)",
			r.db.Model(&VideoCastMemberModel{}).Select("video_id").Where("cast_member_id IN ?", ids))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return pagination.Page[video.Preview]{}, err
	}

	var rows []videoPreviewRow
	err := tx.Select("id", "title", "description", "created_at", "updated_at").
		Order(orderClause(query.SearchQuery, "title", map[string]string{
			"title":       "title",
			"launched_at": "launched_at",
			"created_at":  "created_at",
		})).
		Offset(query.Offset()).Limit(query.PerPage).
		Scan(&rows).Error
	if err != nil {
		return pagination.Page[video.Preview]{}, err
	}

	items := make([]video.Preview, len(rows))
	for i, row := range rows {
		items[i] = video.Preview{
			ID:          video.VideoID(row.ID),
			Title:       row.Title,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return pagination.Page[video.Preview]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
		Total:       total,
		Items:       items,
	}, nil
}
