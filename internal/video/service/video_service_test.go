package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/internal/video/service"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/events"
	"github.com/finchmedia/finch/pkg/logger"
	"github.com/finchmedia/finch/pkg/pagination"
)

type VideoServiceTestSuite struct {
	suite.Suite
	repo           *MockVideoRepository
	categoryRepo   *MockCategoryRepository
	genreRepo      *MockGenreRepository
	castMemberRepo *MockCastMemberRepository
	storage        *MockMediaStorage
	eventBus       *events.InMemoryEventBus
	service        *service.VideoService
	ctx            context.Context
}

func (s *VideoServiceTestSuite) SetupTest() {
	s.repo = new(MockVideoRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.genreRepo = new(MockGenreRepository)
	s.castMemberRepo = new(MockCastMemberRepository)
	s.storage = new(MockMediaStorage)
	s.eventBus = events.NewInMemoryEventBus(logger.NewNoopLogger())
	s.service = service.NewVideoService(
		s.repo, s.categoryRepo, s.genreRepo, s.castMemberRepo,
		s.storage, s.eventBus, logger.NewNoopLogger(),
	)
	s.ctx = context.Background()
}

func (s *VideoServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.categoryRepo.AssertExpectations(s.T())
	s.genreRepo.AssertExpectations(s.T())
	s.castMemberRepo.AssertExpectations(s.T())
	s.storage.AssertExpectations(s.T())
}

func (s *VideoServiceTestSuite) validInput(categories []catalog.CategoryID, genres []catalog.GenreID, castMembers []catalog.CastMemberID) service.CreateVideoInput {
	return service.CreateVideoInput{
		Title:       "System Design Interviews",
		Description: "A video about distributed systems",
		LaunchedAt:  2022,
		Duration:    120.10,
		Rating:      video.RatingL,
		Opened:      false,
		Published:   true,
		Categories:  categories,
		Genres:      genres,
		CastMembers: castMembers,
	}
}

func (s *VideoServiceTestSuite) TestCreate() {
	categories := []catalog.CategoryID{catalog.NewCategoryID()}
	genres := []catalog.GenreID{catalog.NewGenreID()}
	castMembers := []catalog.CastMemberID{catalog.NewCastMemberID()}

	s.categoryRepo.On("ExistsByIDs", s.ctx, categories).Return(categories, nil)
	s.genreRepo.On("ExistsByIDs", s.ctx, genres).Return(genres, nil)
	s.castMemberRepo.On("ExistsByIDs", s.ctx, castMembers).Return(castMembers, nil)
	s.repo.On("Create", s.ctx, mock.AnythingOfType("*video.Video")).Return(nil)

	v, err := s.service.Create(s.ctx, s.validInput(categories, genres, castMembers))

	s.Require().NoError(err)
	s.Equal("System Design Interviews", v.Title())
	s.Equal(categories, v.Categories())
}

func (s *VideoServiceTestSuite) TestCreate_WithoutRelations() {
	s.repo.On("Create", s.ctx, mock.AnythingOfType("*video.Video")).Return(nil)

	v, err := s.service.Create(s.ctx, s.validInput(nil, nil, nil))

	s.Require().NoError(err)
	s.Empty(v.Categories())
}

func (s *VideoServiceTestSuite) TestCreate_MissingCategoryIsReportedOnce() {
	existing := catalog.NewCategoryID()
	missing := catalog.NewCategoryID()
	categories := []catalog.CategoryID{existing, missing}

	s.categoryRepo.On("ExistsByIDs", s.ctx, categories).
		Return([]catalog.CategoryID{existing}, nil)

	_, err := s.service.Create(s.ctx, s.validInput(categories, nil, nil))

	s.Require().Error(err)
	s.True(errors.IsValidation(err))
	s.Equal([]string{
		fmt.Sprintf("some categories could not be found: %s", missing),
	}, errors.ValidationMessages(err))
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *VideoServiceTestSuite) TestCreate_DuplicateCategoryIDsAreNotAViolation() {
	existing := catalog.NewCategoryID()
	categories := []catalog.CategoryID{existing, existing}

	s.categoryRepo.On("ExistsByIDs", s.ctx, categories).
		Return([]catalog.CategoryID{existing}, nil)
	s.repo.On("Create", s.ctx, mock.AnythingOfType("*video.Video")).Return(nil)

	v, err := s.service.Create(s.ctx, s.validInput(categories, nil, nil))

	s.Require().NoError(err)
	s.Equal([]catalog.CategoryID{existing}, v.Categories())
}

func (s *VideoServiceTestSuite) TestCreate_AccumulatesRelationAndFieldViolations() {
	missingGenre := catalog.NewGenreID()
	genres := []catalog.GenreID{missingGenre}

	s.genreRepo.On("ExistsByIDs", s.ctx, genres).Return([]catalog.GenreID{}, nil)

	input := s.validInput(nil, genres, nil)
	input.Title = ""

	_, err := s.service.Create(s.ctx, input)

	s.Require().Error(err)
	s.Equal([]string{
		fmt.Sprintf("some genres could not be found: %s", missingGenre),
		"'title' should not be empty",
	}, errors.ValidationMessages(err))
}

func (s *VideoServiceTestSuite) TestCreate_GatewayFailureShortCircuits() {
	categories := []catalog.CategoryID{catalog.NewCategoryID()}

	s.categoryRepo.On("ExistsByIDs", s.ctx, categories).
		Return(nil, fmt.Errorf("connection refused"))

	_, err := s.service.Create(s.ctx, s.validInput(categories, nil, nil))

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *VideoServiceTestSuite) TestGet_NotFound() {
	id := video.NewVideoID()
	s.repo.On("FindByID", s.ctx, id).Return(nil, errors.NotFound("missing"))

	_, err := s.service.Get(s.ctx, id)

	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), fmt.Sprintf("Video with ID %s was not found", id))
}

func (s *VideoServiceTestSuite) TestUpdate() {
	existing := s.newPersistedVideo()
	id := existing.ID()

	s.repo.On("FindByID", s.ctx, id).Return(existing, nil)
	s.repo.On("Update", s.ctx, existing).Return(nil)

	updated, err := s.service.Update(s.ctx, id, service.UpdateVideoInput{
		Title:       "New Title",
		Description: "New description",
		LaunchedAt:  2023,
		Duration:    90.5,
		Rating:      video.Rating12,
		Opened:      true,
		Published:   false,
	})

	s.Require().NoError(err)
	s.Equal("New Title", updated.Title())
	s.Equal(video.Rating12, updated.Rating())
}

func (s *VideoServiceTestSuite) TestUpdate_MissingRelationsBlockPersist() {
	existing := s.newPersistedVideo()
	id := existing.ID()
	missing := catalog.NewCastMemberID()
	castMembers := []catalog.CastMemberID{missing}

	s.repo.On("FindByID", s.ctx, id).Return(existing, nil)
	s.castMemberRepo.On("ExistsByIDs", s.ctx, castMembers).
		Return([]catalog.CastMemberID{}, nil)

	_, err := s.service.Update(s.ctx, id, service.UpdateVideoInput{
		Title:       "New Title",
		Description: "New description",
		LaunchedAt:  2023,
		Duration:    90.5,
		Rating:      video.Rating12,
		CastMembers: castMembers,
	})

	s.Require().Error(err)
	s.Equal([]string{
		fmt.Sprintf("some cast members could not be found: %s", missing),
	}, errors.ValidationMessages(err))
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *VideoServiceTestSuite) TestDelete() {
	id := video.NewVideoID()

	s.repo.On("DeleteByID", s.ctx, id).Return(nil)
	s.storage.On("ClearResources", s.ctx, id).Return(nil)

	s.NoError(s.service.Delete(s.ctx, id))
}

func (s *VideoServiceTestSuite) TestDelete_AbsentVideoIsNotAnError() {
	id := video.NewVideoID()

	s.repo.On("DeleteByID", s.ctx, id).Return(errors.NotFound("missing"))
	s.storage.On("ClearResources", s.ctx, id).Return(nil)

	s.NoError(s.service.Delete(s.ctx, id))
}

func (s *VideoServiceTestSuite) TestDelete_StorageFailureIsSwallowed() {
	id := video.NewVideoID()

	s.repo.On("DeleteByID", s.ctx, id).Return(nil)
	s.storage.On("ClearResources", s.ctx, id).Return(fmt.Errorf("bucket unavailable"))

	s.NoError(s.service.Delete(s.ctx, id))
}

func (s *VideoServiceTestSuite) TestList() {
	query := video.SearchQuery{SearchQuery: pagination.NewSearchQuery(1, 10, "sys", "title", "asc")}
	page := pagination.Page[video.Preview]{CurrentPage: 1, PerPage: 10, Total: 0}

	s.repo.On("List", s.ctx, query).Return(page, nil)

	result, err := s.service.List(s.ctx, query)

	s.Require().NoError(err)
	s.Equal(page, result)
}

func (s *VideoServiceTestSuite) newPersistedVideo() *video.Video {
	v, err := video.NewVideo(
		"System Design Interviews", "A video about distributed systems",
		2022, 120.10, video.RatingL, false, true, nil, nil, nil,
	)
	s.Require().NoError(err)
	return v
}

func TestVideoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VideoServiceTestSuite))
}
