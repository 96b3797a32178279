package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/internal/video/service"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/events"
	"github.com/finchmedia/finch/pkg/logger"
)

type MediaServiceTestSuite struct {
	suite.Suite
	repo     *MockVideoRepository
	storage  *MockMediaStorage
	eventBus *events.InMemoryEventBus
	service  *service.MediaService
	ctx      context.Context
}

func (s *MediaServiceTestSuite) SetupTest() {
	s.repo = new(MockVideoRepository)
	s.storage = new(MockMediaStorage)
	s.eventBus = events.NewInMemoryEventBus(logger.NewNoopLogger())
	s.service = service.NewMediaService(s.repo, s.storage, s.eventBus, logger.NewNoopLogger())
	s.ctx = context.Background()
}

func (s *MediaServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.storage.AssertExpectations(s.T())
}

func (s *MediaServiceTestSuite) newVideo() *video.Video {
	v, err := video.NewVideo(
		"System Design Interviews", "A video about distributed systems",
		2022, 120.10, video.RatingL, false, true, nil, nil, nil,
	)
	s.Require().NoError(err)
	return v
}

func (s *MediaServiceTestSuite) TestUpload_AudioVideo() {
	v := s.newVideo()
	resource := video.VideoResource{
		Type: video.MediaTypeVideo,
		Resource: video.Resource{
			Content: []byte("raw bytes"), Checksum: "abc",
			ContentType: "video/mp4", Name: "f.mp4",
		},
	}
	stored, err := video.NewPendingAudioVideoMedia("abc", "f.mp4", "/raw/f.mp4")
	s.Require().NoError(err)

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)
	s.storage.On("StoreAudioVideo", s.ctx, v.ID(), resource).Return(stored, nil)
	s.repo.On("Update", s.ctx, v).Return(nil)

	updated, err := s.service.Upload(s.ctx, v.ID(), resource)

	s.Require().NoError(err)
	s.Require().NotNil(updated.Video())
	s.Equal(video.MediaStatusPending, updated.Video().Status())
	s.Equal("abc", updated.Video().Checksum())

	published := s.eventBus.Published()
	s.Require().Len(published, 1)
	s.Equal(video.MediaUpdatedEventType, published[0].EventType())
}

func (s *MediaServiceTestSuite) TestUpload_Image() {
	v := s.newVideo()
	resource := video.VideoResource{
		Type: video.MediaTypeBanner,
		Resource: video.Resource{
			Content: []byte("png bytes"), Checksum: "bbb",
			ContentType: "image/png", Name: "banner.png",
		},
	}
	stored, err := video.NewImageMedia("bbb", "banner.png", "/img/banner.png")
	s.Require().NoError(err)

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)
	s.storage.On("StoreImage", s.ctx, v.ID(), resource).Return(stored, nil)
	s.repo.On("Update", s.ctx, v).Return(nil)

	updated, err := s.service.Upload(s.ctx, v.ID(), resource)

	s.Require().NoError(err)
	s.Require().NotNil(updated.Banner())
	s.Equal("bbb", updated.Banner().Checksum())
}

func (s *MediaServiceTestSuite) TestUpload_UnknownMediaTypeIsRejected() {
	id := video.NewVideoID()

	_, err := s.service.Upload(s.ctx, id, video.VideoResource{
		Type: video.MediaType("SUBTITLE"),
		Resource: video.Resource{
			Content: []byte("srt bytes"), Checksum: "ccc", Name: "f.srt",
		},
	})

	s.Require().Error(err)
	s.True(errors.IsValidation(err))
	s.storage.AssertNotCalled(s.T(), "StoreAudioVideo", mock.Anything, mock.Anything, mock.Anything)
	s.storage.AssertNotCalled(s.T(), "StoreImage", mock.Anything, mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *MediaServiceTestSuite) TestUpload_VideoNotFound() {
	id := video.NewVideoID()
	s.repo.On("FindByID", s.ctx, id).Return(nil, errors.NotFound("missing"))

	_, err := s.service.Upload(s.ctx, id, video.VideoResource{Type: video.MediaTypeVideo})

	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

// The full encoding lifecycle: upload leaves the slot PENDING, a
// PROCESSING signal advances it, and a COMPLETED signal lands the
// encoded location.
func (s *MediaServiceTestSuite) TestEncodingLifecycle() {
	v := s.newVideo()
	resource := video.VideoResource{
		Type: video.MediaTypeVideo,
		Resource: video.Resource{
			Content: []byte("raw bytes"), Checksum: "abc",
			ContentType: "video/mp4", Name: "f.mp4",
		},
	}
	stored, err := video.NewPendingAudioVideoMedia("abc", "f.mp4", "/raw/f.mp4")
	s.Require().NoError(err)

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)
	s.storage.On("StoreAudioVideo", s.ctx, v.ID(), resource).Return(stored, nil)
	s.repo.On("Update", s.ctx, v).Return(nil)

	_, err = s.service.Upload(s.ctx, v.ID(), resource)
	s.Require().NoError(err)
	s.Equal(video.MediaStatusPending, v.Video().Status())

	err = s.service.UpdateStatus(s.ctx, service.UpdateMediaStatusInput{
		Status:   video.MediaStatusProcessing,
		VideoID:  v.ID(),
		Checksum: "abc",
	})
	s.Require().NoError(err)
	s.Equal(video.MediaStatusProcessing, v.Video().Status())

	err = s.service.UpdateStatus(s.ctx, service.UpdateMediaStatusInput{
		Status:   video.MediaStatusCompleted,
		VideoID:  v.ID(),
		Checksum: "abc",
		Folder:   "enc",
		Filename: "f.mp4",
	})
	s.Require().NoError(err)
	s.Equal(video.MediaStatusCompleted, v.Video().Status())
	s.Equal("enc/f.mp4", v.Video().EncodedLocation())
}

func (s *MediaServiceTestSuite) TestUpdateStatus_MatchesTrailerSlot() {
	v := s.newVideo()
	trailer, err := video.NewPendingAudioVideoMedia("def", "t.mp4", "/raw/t.mp4")
	s.Require().NoError(err)
	v.SetTrailer(&trailer)
	v.PullEvents()

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)
	s.repo.On("Update", s.ctx, v).Return(nil)

	err = s.service.UpdateStatus(s.ctx, service.UpdateMediaStatusInput{
		Status:   video.MediaStatusCompleted,
		VideoID:  v.ID(),
		Checksum: "def",
		Folder:   "enc",
		Filename: "t.mp4",
	})

	s.Require().NoError(err)
	s.Equal(video.MediaStatusCompleted, v.Trailer().Status())
	s.Equal("enc/t.mp4", v.Trailer().EncodedLocation())
}

func (s *MediaServiceTestSuite) TestUpdateStatus_UnmatchedChecksumIsDropped() {
	v := s.newVideo()
	media, err := video.NewPendingAudioVideoMedia("abc", "f.mp4", "/raw/f.mp4")
	s.Require().NoError(err)
	v.SetVideo(&media)
	v.PullEvents()

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)

	err = s.service.UpdateStatus(s.ctx, service.UpdateMediaStatusInput{
		Status:   video.MediaStatusCompleted,
		VideoID:  v.ID(),
		Checksum: "stale",
		Folder:   "enc",
		Filename: "f.mp4",
	})

	s.Require().NoError(err)
	s.Equal(video.MediaStatusPending, v.Video().Status())
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *MediaServiceTestSuite) TestUpdateStatus_PendingSignalDoesNotPersist() {
	v := s.newVideo()
	media, err := video.NewPendingAudioVideoMedia("abc", "f.mp4", "/raw/f.mp4")
	s.Require().NoError(err)
	v.SetVideo(&media)
	v.PullEvents()

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)

	err = s.service.UpdateStatus(s.ctx, service.UpdateMediaStatusInput{
		Status:   video.MediaStatusPending,
		VideoID:  v.ID(),
		Checksum: "abc",
	})

	s.Require().NoError(err)
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *MediaServiceTestSuite) TestUpdateStatus_UnknownStatusIsRejected() {
	v := s.newVideo()
	media, err := video.NewPendingAudioVideoMedia("abc", "f.mp4", "/raw/f.mp4")
	s.Require().NoError(err)
	v.SetVideo(&media)
	v.PullEvents()

	s.repo.On("FindByID", s.ctx, v.ID()).Return(v, nil)

	err = s.service.UpdateStatus(s.ctx, service.UpdateMediaStatusInput{
		Status:   video.MediaStatus("ENCODING"),
		VideoID:  v.ID(),
		Checksum: "abc",
	})

	s.Require().Error(err)
	s.True(errors.IsValidation(err))
}

func (s *MediaServiceTestSuite) TestGetResource() {
	id := video.NewVideoID()
	resource := &video.Resource{Content: []byte("raw"), Checksum: "abc", Name: "f.mp4"}

	s.storage.On("GetResource", s.ctx, id, video.MediaTypeVideo).Return(resource, nil)

	result, err := s.service.GetResource(s.ctx, id, video.MediaTypeVideo)

	s.Require().NoError(err)
	s.Equal(resource, result)
}

func (s *MediaServiceTestSuite) TestGetResource_Absent() {
	id := video.NewVideoID()

	s.storage.On("GetResource", s.ctx, id, video.MediaTypeTrailer).Return(nil, nil)

	_, err := s.service.GetResource(s.ctx, id, video.MediaTypeTrailer)

	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *MediaServiceTestSuite) TestGetResource_StorageFailure() {
	id := video.NewVideoID()

	s.storage.On("GetResource", s.ctx, id, video.MediaTypeVideo).
		Return(nil, fmt.Errorf("bucket unavailable"))

	_, err := s.service.GetResource(s.ctx, id, video.MediaTypeVideo)

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func TestMediaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MediaServiceTestSuite))
}
