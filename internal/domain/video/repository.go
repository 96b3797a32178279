package video

import (
	"context"

	"github.com/finchmedia/finch/pkg/pagination"
)

// Repository defines the persistence gateway for video aggregates.
type Repository interface {
	Create(ctx context.Context, video *Video) error
	Update(ctx context.Context, video *Video) error
	FindByID(ctx context.Context, id VideoID) (*Video, error)
	DeleteByID(ctx context.Context, id VideoID) error
	List(ctx context.Context, query SearchQuery) (pagination.Page[Preview], error)
}

// MediaStorage is the binary storage gateway. Stored resources are keyed
// by video id and media type; the returned descriptors are the only
// valid way to populate a video's media slots.
type MediaStorage interface {
	// StoreAudioVideo stores a raw audio/video binary and returns its
	// PENDING descriptor.
	StoreAudioVideo(ctx context.Context, id VideoID, resource VideoResource) (AudioVideoMedia, error)

	// StoreImage stores a raw image binary and returns its descriptor.
	StoreImage(ctx context.Context, id VideoID, resource VideoResource) (ImageMedia, error)

	// GetResource retrieves the stored raw resource for the given slot,
	// or nil when absent.
	GetResource(ctx context.Context, id VideoID, mediaType MediaType) (*Resource, error)

	// ClearResources removes every stored binary belonging to the video.
	ClearResources(ctx context.Context, id VideoID) error
}
