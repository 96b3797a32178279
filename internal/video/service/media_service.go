package service

import (
	"context"
	"fmt"

	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/interfaces"
)

// UpdateMediaStatusInput carries an encoder progress signal. The
// checksum identifies which audio/video slot the signal is about;
// folder and filename locate the encoded output.
type UpdateMediaStatusInput struct {
	Status   video.MediaStatus
	VideoID  video.VideoID
	Checksum string
	Folder   string
	Filename string
}

// MediaService orchestrates the media use cases: uploading binaries
// into a video's slots, serving them back, and applying encoder
// progress signals.
type MediaService struct {
	repo     video.Repository
	storage  video.MediaStorage
	eventBus interfaces.EventBus
	logger   interfaces.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(repo video.Repository, storage video.MediaStorage, eventBus interfaces.EventBus, logger interfaces.Logger) *MediaService {
	return &MediaService{repo: repo, storage: storage, eventBus: eventBus, logger: logger}
}

// Upload stores the binary, binds the returned descriptor to the
// targeted slot, and persists the video. Events accumulated by the slot
// update are published after the persist succeeds.
func (s *MediaService) Upload(ctx context.Context, id video.VideoID, resource video.VideoResource) (*video.Video, error) {
	if !resource.Type.Valid() {
		return nil, errors.New(errors.ErrorTypeValidation,
			fmt.Sprintf("unknown media type %q", resource.Type))
	}

	v, err := s.findVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	if resource.Type.IsAudioVideo() {
		media, err := s.storage.StoreAudioVideo(ctx, id, resource)
		if err != nil {
			return nil, errors.Wrap(errors.ErrorTypeInternal,
				fmt.Sprintf("failed to store audio video media [videoID:%s type:%s]", id, resource.Type), err)
		}
		switch resource.Type {
		case video.MediaTypeVideo:
			v.SetVideo(&media)
		case video.MediaTypeTrailer:
			v.SetTrailer(&media)
		}
	} else {
		media, err := s.storage.StoreImage(ctx, id, resource)
		if err != nil {
			return nil, errors.Wrap(errors.ErrorTypeInternal,
				fmt.Sprintf("failed to store image media [videoID:%s type:%s]", id, resource.Type), err)
		}
		switch resource.Type {
		case video.MediaTypeBanner:
			v.SetBanner(&media)
		case video.MediaTypeThumbnail:
			v.SetThumbnail(&media)
		case video.MediaTypeThumbnailHalf:
			v.SetThumbnailHalf(&media)
		}
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on update video was observed [videoID:%s]", id), err)
	}

	s.logger.Info("Media uploaded",
		interfaces.String("video_id", id.String()),
		interfaces.String("media_type", string(resource.Type)),
		interfaces.String("checksum", resource.Resource.Checksum))

	s.publishEvents(ctx, v)
	return v, nil
}

// GetResource retrieves the stored raw binary for a video's slot. An
// absent resource is a not-found error, not a nil result.
func (s *MediaService) GetResource(ctx context.Context, id video.VideoID, mediaType video.MediaType) (*video.Resource, error) {
	resource, err := s.storage.GetResource(ctx, id, mediaType)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("failed to get resource [videoID:%s type:%s]", id, mediaType), err)
	}
	if resource == nil {
		return nil, errors.NotFound(
			fmt.Sprintf("resource %s for video %s was not found", mediaType, id))
	}
	return resource, nil
}

// UpdateStatus applies an encoder progress signal. The checksum is
// matched against the video slot first, then the trailer slot; a signal
// whose checksum matches neither is silently dropped, because the
// encoder may report on media that has since been replaced.
func (s *MediaService) UpdateStatus(ctx context.Context, input UpdateMediaStatusInput) error {
	v, err := s.findVideo(ctx, input.VideoID)
	if err != nil {
		return err
	}

	mediaType, ok := matchAudioVideoSlot(v, input.Checksum)
	if !ok {
		s.logger.Warn("Encoder signal matched no media slot",
			interfaces.String("video_id", input.VideoID.String()),
			interfaces.String("checksum", input.Checksum))
		return nil
	}

	switch input.Status {
	case video.MediaStatusPending:
		// encoders never legitimately report PENDING; nothing to persist
		return nil
	case video.MediaStatusProcessing:
		if err := v.Processing(mediaType); err != nil {
			return err
		}
	case video.MediaStatusCompleted:
		encodedPath := fmt.Sprintf("%s/%s", input.Folder, input.Filename)
		if err := v.Completed(mediaType, encodedPath); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrorTypeValidation,
			fmt.Sprintf("unknown media status %q", input.Status))
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on update video was observed [videoID:%s]", input.VideoID), err)
	}

	s.logger.Info("Media status updated",
		interfaces.String("video_id", input.VideoID.String()),
		interfaces.String("media_type", string(mediaType)),
		interfaces.String("status", string(input.Status)))

	s.publishEvents(ctx, v)
	return nil
}

func (s *MediaService) findVideo(ctx context.Context, id video.VideoID) (*video.Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundWithID("Video", id.String())
		}
		return nil, err
	}
	return v, nil
}

func (s *MediaService) publishEvents(ctx context.Context, v *video.Video) {
	for _, event := range v.PullEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish video event",
				interfaces.String("video_id", v.ID().String()),
				interfaces.String("event_type", event.EventType()),
				interfaces.Error(err))
		}
	}
}

// matchAudioVideoSlot resolves which audio/video slot a checksum refers
// to, checking the video slot before the trailer slot.
func matchAudioVideoSlot(v *video.Video, checksum string) (video.MediaType, bool) {
	if m := v.Video(); m != nil && m.Checksum() == checksum {
		return video.MediaTypeVideo, true
	}
	if m := v.Trailer(); m != nil && m.Checksum() == checksum {
		return video.MediaTypeTrailer, true
	}
	return "", false
}
