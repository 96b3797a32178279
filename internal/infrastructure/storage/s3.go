package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/pkg/config"
	"github.com/finchmedia/finch/pkg/interfaces"
)

const (
	metadataChecksum    = "checksum"
	metadataName        = "name"
	metadataContentType = "content-type"
)

// S3MediaStorage implements the media storage gateway on S3. Each video
// owns a folder keyed by the location pattern; each media slot is one
// object inside it named by the filename pattern, so a slot re-upload
// overwrites the previous binary.
type S3MediaStorage struct {
	client          *s3.Client
	bucket          string
	prefix          string
	locationPattern string
	filenamePattern string
	logger          interfaces.Logger
}

// NewS3MediaStorage loads the default AWS config and binds the storage
// to the configured bucket and key patterns.
func NewS3MediaStorage(ctx context.Context, cfg config.StorageConfig, logger interfaces.Logger) (*S3MediaStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3MediaStorage{
		client:          s3.NewFromConfig(awsCfg),
		bucket:          cfg.Bucket,
		prefix:          cfg.Prefix,
		locationPattern: orDefault(cfg.LocationPattern, "videoId-{videoId}"),
		filenamePattern: orDefault(cfg.FilenamePattern, "{type}"),
		logger:          logger,
	}, nil
}

// StoreAudioVideo uploads a raw audio/video binary and returns its
// PENDING descriptor pointing at the stored key.
func (s *S3MediaStorage) StoreAudioVideo(ctx context.Context, id video.VideoID, resource video.VideoResource) (video.AudioVideoMedia, error) {
	key := s.slotKey(id, resource.Type)
	if err := s.put(ctx, key, resource.Resource); err != nil {
		return video.AudioVideoMedia{}, err
	}
	return video.NewPendingAudioVideoMedia(resource.Resource.Checksum, resource.Resource.Name, key)
}

// StoreImage uploads a raw image binary and returns its descriptor.
func (s *S3MediaStorage) StoreImage(ctx context.Context, id video.VideoID, resource video.VideoResource) (video.ImageMedia, error) {
	key := s.slotKey(id, resource.Type)
	if err := s.put(ctx, key, resource.Resource); err != nil {
		return video.ImageMedia{}, err
	}
	return video.NewImageMedia(resource.Resource.Checksum, resource.Resource.Name, key)
}

// GetResource downloads the stored raw binary for a slot, or nil when
// the slot has no stored object.
func (s *S3MediaStorage) GetResource(ctx context.Context, id video.VideoID, mediaType video.MediaType) (*video.Resource, error) {
	key := s.slotKey(id, mediaType)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting object %s: %w", key, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", key, err)
	}

	return &video.Resource{
		Content:     content,
		Checksum:    out.Metadata[metadataChecksum],
		ContentType: out.Metadata[metadataContentType],
		Name:        out.Metadata[metadataName],
	}, nil
}

// ClearResources deletes every object under the video's folder.
func (s *S3MediaStorage) ClearResources(ctx context.Context, id video.VideoID) error {
	folder := s.folderKey(id) + "/"

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(folder),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("listing objects under %s: %w", folder, err)
		}
		for _, object := range page.Contents {
			_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    object.Key,
			})
			if err != nil {
				return fmt.Errorf("deleting object %s: %w", aws.ToString(object.Key), err)
			}
		}
	}

	s.logger.Debug("Cleared video resources",
		interfaces.String("video_id", id.String()),
		interfaces.String("folder", folder))
	return nil
}

func (s *S3MediaStorage) put(ctx context.Context, key string, resource video.Resource) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(resource.Content),
		ContentType: aws.String(resource.ContentType),
		Metadata: map[string]string{
			metadataChecksum:    resource.Checksum,
			metadataName:        resource.Name,
			metadataContentType: resource.ContentType,
		},
	})
	if err != nil {
		return fmt.Errorf("uploading object %s: %w", key, err)
	}
	return nil
}

func (s *S3MediaStorage) folderKey(id video.VideoID) string {
	folder := strings.ReplaceAll(s.locationPattern, "{videoId}", id.String())
	if s.prefix != "" {
		return s.prefix + "/" + folder
	}
	return folder
}

// slotKey expands the filename pattern inside the video's folder. Only
// the {type} placeholder is supported: slot keys must be stable across
// re-uploads so the new binary replaces the old one and GetResource can
// address a slot without knowing its checksum.
func (s *S3MediaStorage) slotKey(id video.VideoID, mediaType video.MediaType) string {
	name := strings.ReplaceAll(s.filenamePattern, "{type}", string(mediaType))
	return s.folderKey(id) + "/" + name
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
