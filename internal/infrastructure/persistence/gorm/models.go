package gorm

import (
	"time"

	"github.com/google/uuid"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/internal/domain/video"
)

// CategoryModel is the database row for a category aggregate.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null;index"`
	Description string
	Active      bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (CategoryModel) TableName() string { return "categories" }

// ToDomain rebuilds the category aggregate.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return catalog.RestoreCategory(
		catalog.CategoryID(m.ID), m.Name, m.Description, m.Active,
		m.CreatedAt, m.UpdatedAt,
	)
}

// FromDomain fills the row from the aggregate.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.ID = uuid.UUID(c.ID())
	m.Name = c.Name()
	m.Description = c.Description()
	m.Active = c.IsActive()
	m.CreatedAt = c.CreatedAt()
	m.UpdatedAt = c.UpdatedAt()
}

// GenreModel is the database row for a genre aggregate.
type GenreModel struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key"`
	Name       string               `gorm:"not null;index"`
	Active     bool                 `gorm:"not null"`
	CreatedAt  time.Time            `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time            `gorm:"autoUpdateTime:false"`
	Categories []GenreCategoryModel `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

func (GenreModel) TableName() string { return "genres" }

// GenreCategoryModel is one genre-to-category reference.
type GenreCategoryModel struct {
	GenreID    uuid.UUID `gorm:"type:uuid;primary_key"`
	CategoryID uuid.UUID `gorm:"type:uuid;primary_key"`
}

func (GenreCategoryModel) TableName() string { return "genres_categories" }

// ToDomain rebuilds the genre aggregate.
func (m *GenreModel) ToDomain() *catalog.Genre {
	categories := make([]catalog.CategoryID, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = catalog.CategoryID(c.CategoryID)
	}
	return catalog.RestoreGenre(
		catalog.GenreID(m.ID), m.Name, m.Active, categories,
		m.CreatedAt, m.UpdatedAt,
	)
}

// FromDomain fills the row from the aggregate.
func (m *GenreModel) FromDomain(g *catalog.Genre) {
	m.ID = uuid.UUID(g.ID())
	m.Name = g.Name()
	m.Active = g.IsActive()
	m.CreatedAt = g.CreatedAt()
	m.UpdatedAt = g.UpdatedAt()

	categories := g.Categories()
	m.Categories = make([]GenreCategoryModel, len(categories))
	for i, id := range categories {
		m.Categories[i] = GenreCategoryModel{GenreID: m.ID, CategoryID: uuid.UUID(id)}
	}
}

// CastMemberModel is the database row for a cast member aggregate.
type CastMemberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;index"`
	Type      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (CastMemberModel) TableName() string { return "cast_members" }

// ToDomain rebuilds the cast member aggregate.
func (m *CastMemberModel) ToDomain() *catalog.CastMember {
	return catalog.RestoreCastMember(
		catalog.CastMemberID(m.ID), m.Name, catalog.CastMemberType(m.Type),
		m.CreatedAt, m.UpdatedAt,
	)
}

// FromDomain fills the row from the aggregate.
func (m *CastMemberModel) FromDomain(c *catalog.CastMember) {
	m.ID = uuid.UUID(c.ID())
	m.Name = c.Name()
	m.Type = string(c.Type())
	m.CreatedAt = c.CreatedAt()
	m.UpdatedAt = c.UpdatedAt()
}

// VideoModel is the database row for a video aggregate. The five media
// slots are flattened into columns; a slot is present when its checksum
// column is non-empty.
type VideoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null;index"`
	Description string
	LaunchedAt  int
	Duration    float64
	Rating      string    `gorm:"not null"`
	Opened      bool      `gorm:"not null"`
	Published   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	VideoChecksum        string
	VideoName            string
	VideoRawLocation     string
	VideoEncodedLocation string
	VideoStatus          string

	TrailerChecksum        string
	TrailerName            string
	TrailerRawLocation     string
	TrailerEncodedLocation string
	TrailerStatus          string

	BannerChecksum string
	BannerName     string
	BannerLocation string

	ThumbnailChecksum string
	ThumbnailName     string
	ThumbnailLocation string

	ThumbnailHalfChecksum string
	ThumbnailHalfName     string
	ThumbnailHalfLocation string

	Categories  []VideoCategoryModel   `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Genres      []VideoGenreModel      `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	CastMembers []VideoCastMemberModel `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

func (VideoModel) TableName() string { return "videos" }

// VideoCategoryModel is one video-to-category reference.
type VideoCategoryModel struct {
	VideoID    uuid.UUID `gorm:"type:uuid;primary_key"`
	CategoryID uuid.UUID `gorm:"type:uuid;primary_key"`
}

func (VideoCategoryModel) TableName() string { return "videos_categories" }

// VideoGenreModel is one video-to-genre reference.
type VideoGenreModel struct {
	VideoID uuid.UUID `gorm:"type:uuid;primary_key"`
	GenreID uuid.UUID `gorm:"type:uuid;primary_key"`
}

func (VideoGenreModel) TableName() string { return "videos_genres" }

// VideoCastMemberModel is one video-to-cast-member reference.
type VideoCastMemberModel struct {
	VideoID      uuid.UUID `gorm:"type:uuid;primary_key"`
	CastMemberID uuid.UUID `gorm:"type:uuid;primary_key"`
}

func (VideoCastMemberModel) TableName() string { return "videos_cast_members" }

// ToDomain rebuilds the video aggregate, including its media slot
// descriptors.
func (m *VideoModel) ToDomain() (*video.Video, error) {
	categories := make([]catalog.CategoryID, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = catalog.CategoryID(c.CategoryID)
	}
	genres := make([]catalog.GenreID, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = catalog.GenreID(g.GenreID)
	}
	castMembers := make([]catalog.CastMemberID, len(m.CastMembers))
	for i, c := range m.CastMembers {
		castMembers[i] = catalog.CastMemberID(c.CastMemberID)
	}

	state := video.RestoredVideo{
		ID:          video.VideoID(m.ID),
		Title:       m.Title,
		Description: m.Description,
		LaunchedAt:  m.LaunchedAt,
		Duration:    m.Duration,
		Rating:      video.Rating(m.Rating),
		Opened:      m.Opened,
		Published:   m.Published,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Categories:  categories,
		Genres:      genres,
		CastMembers: castMembers,
	}

	if m.VideoChecksum != "" {
		media, err := video.NewAudioVideoMedia(
			m.VideoChecksum, m.VideoName, m.VideoRawLocation,
			m.VideoEncodedLocation, video.MediaStatus(m.VideoStatus))
		if err != nil {
			return nil, err
		}
		state.Video = &media
	}
	if m.TrailerChecksum != "" {
		media, err := video.NewAudioVideoMedia(
			m.TrailerChecksum, m.TrailerName, m.TrailerRawLocation,
			m.TrailerEncodedLocation, video.MediaStatus(m.TrailerStatus))
		if err != nil {
			return nil, err
		}
		state.Trailer = &media
	}
	if m.BannerChecksum != "" {
		media, err := video.NewImageMedia(m.BannerChecksum, m.BannerName, m.BannerLocation)
		if err != nil {
			return nil, err
		}
		state.Banner = &media
	}
	if m.ThumbnailChecksum != "" {
		media, err := video.NewImageMedia(m.ThumbnailChecksum, m.ThumbnailName, m.ThumbnailLocation)
		if err != nil {
			return nil, err
		}
		state.Thumbnail = &media
	}
	if m.ThumbnailHalfChecksum != "" {
		media, err := video.NewImageMedia(m.ThumbnailHalfChecksum, m.ThumbnailHalfName, m.ThumbnailHalfLocation)
		if err != nil {
			return nil, err
		}
		state.ThumbnailHalf = &media
	}

	return video.RestoreVideo(state), nil
}

// FromDomain fills the row from the aggregate.
func (m *VideoModel) FromDomain(v *video.Video) {
	m.ID = uuid.UUID(v.ID())
	m.Title = v.Title()
	m.Description = v.Description()
	m.LaunchedAt = v.LaunchedAt()
	m.Duration = v.Duration()
	m.Rating = string(v.Rating())
	m.Opened = v.IsOpened()
	m.Published = v.IsPublished()
	m.CreatedAt = v.CreatedAt()
	m.UpdatedAt = v.UpdatedAt()

	m.VideoChecksum, m.VideoName, m.VideoRawLocation, m.VideoEncodedLocation, m.VideoStatus = flattenAudioVideo(v.Video())
	m.TrailerChecksum, m.TrailerName, m.TrailerRawLocation, m.TrailerEncodedLocation, m.TrailerStatus = flattenAudioVideo(v.Trailer())
	m.BannerChecksum, m.BannerName, m.BannerLocation = flattenImage(v.Banner())
	m.ThumbnailChecksum, m.ThumbnailName, m.ThumbnailLocation = flattenImage(v.Thumbnail())
	m.ThumbnailHalfChecksum, m.ThumbnailHalfName, m.ThumbnailHalfLocation = flattenImage(v.ThumbnailHalf())

	categories := v.Categories()
	m.Categories = make([]VideoCategoryModel, len(categories))
	for i, id := range categories {
		m.Categories[i] = VideoCategoryModel{VideoID: m.ID, CategoryID: uuid.UUID(id)}
	}
	genres := v.Genres()
	m.Genres = make([]VideoGenreModel, len(genres))
	for i, id := range genres {
		m.Genres[i] = VideoGenreModel{VideoID: m.ID, GenreID: uuid.UUID(id)}
	}
	castMembers := v.CastMembers()
	m.CastMembers = make([]VideoCastMemberModel, len(castMembers))
	for i, id := range castMembers {
		m.CastMembers[i] = VideoCastMemberModel{VideoID: m.ID, CastMemberID: uuid.UUID(id)}
	}
}

func flattenAudioVideo(media *video.AudioVideoMedia) (checksum, name, rawLocation, encodedLocation, status string) {
	if media == nil {
		return "", "", "", "", ""
	}
	return media.Checksum(), media.Name(), media.RawLocation(), media.EncodedLocation(), string(media.Status())
}

func flattenImage(media *video.ImageMedia) (checksum, name, location string) {
	if media == nil {
		return "", "", ""
	}
	return media.Checksum(), media.Name(), media.Location()
}
