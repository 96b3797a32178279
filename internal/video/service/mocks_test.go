package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/pkg/pagination"
)

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, v *video.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVideoRepository) Update(ctx context.Context, v *video.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id video.VideoID) (*video.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockVideoRepository) DeleteByID(ctx context.Context, id video.VideoID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) List(ctx context.Context, query video.SearchQuery) (pagination.Page[video.Preview], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(pagination.Page[video.Preview]), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id catalog.CategoryID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteByID(ctx context.Context, id catalog.CategoryID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.Category], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(pagination.Page[*catalog.Category]), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByIDs(ctx context.Context, ids []catalog.CategoryID) ([]catalog.CategoryID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CategoryID), args.Error(1)
}

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *catalog.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) Update(ctx context.Context, genre *catalog.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) FindByID(ctx context.Context, id catalog.GenreID) (*catalog.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteByID(ctx context.Context, id catalog.GenreID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGenreRepository) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.Genre], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(pagination.Page[*catalog.Genre]), args.Error(1)
}

func (m *MockGenreRepository) ExistsByIDs(ctx context.Context, ids []catalog.GenreID) ([]catalog.GenreID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.GenreID), args.Error(1)
}

type MockCastMemberRepository struct {
	mock.Mock
}

func (m *MockCastMemberRepository) Create(ctx context.Context, member *catalog.CastMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockCastMemberRepository) Update(ctx context.Context, member *catalog.CastMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockCastMemberRepository) FindByID(ctx context.Context, id catalog.CastMemberID) (*catalog.CastMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CastMember), args.Error(1)
}

func (m *MockCastMemberRepository) DeleteByID(ctx context.Context, id catalog.CastMemberID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCastMemberRepository) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.CastMember], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(pagination.Page[*catalog.CastMember]), args.Error(1)
}

func (m *MockCastMemberRepository) ExistsByIDs(ctx context.Context, ids []catalog.CastMemberID) ([]catalog.CastMemberID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CastMemberID), args.Error(1)
}

type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) StoreAudioVideo(ctx context.Context, id video.VideoID, resource video.VideoResource) (video.AudioVideoMedia, error) {
	args := m.Called(ctx, id, resource)
	return args.Get(0).(video.AudioVideoMedia), args.Error(1)
}

func (m *MockMediaStorage) StoreImage(ctx context.Context, id video.VideoID, resource video.VideoResource) (video.ImageMedia, error) {
	args := m.Called(ctx, id, resource)
	return args.Get(0).(video.ImageMedia), args.Error(1)
}

func (m *MockMediaStorage) GetResource(ctx context.Context, id video.VideoID, mediaType video.MediaType) (*video.Resource, error) {
	args := m.Called(ctx, id, mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Resource), args.Error(1)
}

func (m *MockMediaStorage) ClearResources(ctx context.Context, id video.VideoID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
