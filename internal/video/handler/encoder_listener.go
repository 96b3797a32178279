package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/internal/video/service"
	"github.com/finchmedia/finch/pkg/interfaces"
)

// EncoderMessage is the tagged union the external encoder publishes.
// Status discriminates the variant; only COMPLETED carries the video
// payload with the encoded output coordinates.
type EncoderMessage struct {
	Status           string              `json:"status"`
	ID               string              `json:"id"`
	OutputBucketPath string              `json:"output_bucket_path"`
	Error            string              `json:"error,omitempty"`
	Video            EncoderVideoPayload `json:"video"`
}

// EncoderVideoPayload locates the encoder's output for one media asset.
type EncoderVideoPayload struct {
	EncodedVideoFolder string `json:"encoded_video_folder"`
	ResourceID         string `json:"resource_id"`
	FilePath           string `json:"file_path"`
}

// EncoderListener consumes encoder progress messages and drives the
// media status use case. COMPLETED and PROCESSING variants advance the
// matching slot; every other variant is logged and dropped.
type EncoderListener struct {
	mediaService *service.MediaService
	logger       interfaces.Logger
}

// NewEncoderListener creates a new encoder listener.
func NewEncoderListener(mediaService *service.MediaService, logger interfaces.Logger) *EncoderListener {
	return &EncoderListener{mediaService: mediaService, logger: logger}
}

// HandleMessage parses one raw encoder message and dispatches on its
// status discriminator. A malformed payload is an error so the consumer
// can decide about redelivery; an unrecognized status is not.
func (l *EncoderListener) HandleMessage(ctx context.Context, raw []byte) error {
	var msg EncoderMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("unmarshaling encoder message: %w", err)
	}

	switch msg.Status {
	case string(video.MediaStatusCompleted):
		return l.applyStatus(ctx, msg, video.MediaStatusCompleted)
	case string(video.MediaStatusProcessing):
		return l.applyStatus(ctx, msg, video.MediaStatusProcessing)
	case "ERROR":
		l.logger.Error("Encoder reported a failure",
			interfaces.String("video_id", msg.ID),
			interfaces.String("message", msg.Error))
		return nil
	default:
		l.logger.Warn("Ignoring encoder message with unrecognized status",
			interfaces.String("status", msg.Status),
			interfaces.String("video_id", msg.ID))
		return nil
	}
}

func (l *EncoderListener) applyStatus(ctx context.Context, msg EncoderMessage, status video.MediaStatus) error {
	id, err := video.ParseVideoID(msg.ID)
	if err != nil {
		return fmt.Errorf("parsing video id from encoder message: %w", err)
	}

	return l.mediaService.UpdateStatus(ctx, service.UpdateMediaStatusInput{
		Status:   status,
		VideoID:  id,
		Checksum: msg.Video.ResourceID,
		Folder:   msg.Video.EncodedVideoFolder,
		Filename: msg.Video.FilePath,
	})
}
