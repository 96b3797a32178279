package video

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/internal/domain/validation"
	pkgerrors "github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/interfaces"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 255
)

// VideoID identifies a Video aggregate.
type VideoID uuid.UUID

// NewVideoID creates a fresh random video identifier.
func NewVideoID() VideoID {
	return VideoID(uuid.New())
}

// ParseVideoID parses the canonical string form.
func ParseVideoID(s string) (VideoID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return VideoID{}, err
	}
	return VideoID(id), nil
}

// String returns the canonical lowercase hex-dash form.
func (id VideoID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is unset.
func (id VideoID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Video is the aggregate root of the media catalog. It owns the sets of
// category/genre/cast-member references, the five optional media slots,
// and the encoding state machine of the audio/video slots. Media slots
// are only ever populated with descriptors produced by the media
// storage gateway.
type Video struct {
	id          VideoID
	title       string
	description string
	launchedAt  int
	duration    float64
	rating      Rating
	opened      bool
	published   bool
	createdAt   time.Time
	updatedAt   time.Time

	categories  []catalog.CategoryID
	genres      []catalog.GenreID
	castMembers []catalog.CastMemberID

	video         *AudioVideoMedia
	trailer       *AudioVideoMedia
	banner        *ImageMedia
	thumbnail     *ImageMedia
	thumbnailHalf *ImageMedia

	events []interfaces.Event
}

// NewVideo constructs a video with a fresh identifier and createdAt,
// then validates. On invariant violation it returns an error carrying
// the full list of violation messages, not just the first. Relation
// sets are de-duplicated preserving encounter order.
func NewVideo(
	title, description string,
	launchedAt int,
	duration float64,
	rating Rating,
	opened, published bool,
	categories []catalog.CategoryID,
	genres []catalog.GenreID,
	castMembers []catalog.CastMemberID,
) (*Video, error) {
	v := &Video{
		id:          NewVideoID(),
		title:       title,
		description: description,
		launchedAt:  launchedAt,
		duration:    duration,
		rating:      rating,
		opened:      opened,
		published:   published,
		createdAt:   time.Now(),
		categories:  dedupCategories(categories),
		genres:      dedupGenres(genres),
		castMembers: dedupCastMembers(castMembers),
	}

	n := validation.NewNotification()
	v.Validate(n)
	if err := validation.AsError(n, "could not create aggregate video"); err != nil {
		return nil, err
	}
	return v, nil
}

// RestoredVideo carries the persisted state needed to rebuild a video
// without re-validating.
type RestoredVideo struct {
	ID            VideoID
	Title         string
	Description   string
	LaunchedAt    int
	Duration      float64
	Rating        Rating
	Opened        bool
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Categories    []catalog.CategoryID
	Genres        []catalog.GenreID
	CastMembers   []catalog.CastMemberID
	Video         *AudioVideoMedia
	Trailer       *AudioVideoMedia
	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia
}

// RestoreVideo rebuilds a video from persisted state.
func RestoreVideo(state RestoredVideo) *Video {
	return &Video{
		id:            state.ID,
		title:         state.Title,
		description:   state.Description,
		launchedAt:    state.LaunchedAt,
		duration:      state.Duration,
		rating:        state.Rating,
		opened:        state.Opened,
		published:     state.Published,
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		categories:    dedupCategories(state.Categories),
		genres:        dedupGenres(state.Genres),
		castMembers:   dedupCastMembers(state.CastMembers),
		video:         state.Video,
		trailer:       state.Trailer,
		banner:        state.Banner,
		thumbnail:     state.Thumbnail,
		thumbnailHalf: state.ThumbnailHalf,
	}
}

// Update replaces the listed fields, bumps updatedAt, and re-validates.
// It returns the same instance so callers can chain media attachment.
func (v *Video) Update(
	title, description string,
	launchedAt int,
	duration float64,
	rating Rating,
	opened, published bool,
	categories []catalog.CategoryID,
	genres []catalog.GenreID,
	castMembers []catalog.CastMemberID,
) (*Video, error) {
	v.title = title
	v.description = description
	v.launchedAt = launchedAt
	v.duration = duration
	v.rating = rating
	v.opened = opened
	v.published = published
	v.categories = dedupCategories(categories)
	v.genres = dedupGenres(genres)
	v.castMembers = dedupCastMembers(castMembers)
	v.touch()

	n := validation.NewNotification()
	v.Validate(n)
	if err := validation.AsError(n, "could not update aggregate video"); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate appends every invariant violation to the handler; it never
// stops at the first.
func (v *Video) Validate(h validation.Handler) {
	validation.CheckStringLength(h, "title", v.title, maxTitleLength)
	validation.CheckStringLength(h, "description", v.description, maxDescriptionLength)
	if !v.rating.Valid() {
		h.Append(validation.NewError("'rating' should not be empty"))
	}
	if v.duration < 0 {
		h.Append(validation.NewError("'duration' must not be negative"))
	}
}

// SetVideo replaces the video slot; nil clears it. Registers a media
// updated event. Slot assignment is structurally valid once the media
// descriptor exists, so no re-validation happens here.
func (v *Video) SetVideo(media *AudioVideoMedia) *Video {
	v.video = media
	v.onMediaUpdated(MediaTypeVideo, audioVideoChecksum(media))
	return v
}

// SetTrailer replaces the trailer slot; nil clears it.
func (v *Video) SetTrailer(media *AudioVideoMedia) *Video {
	v.trailer = media
	v.onMediaUpdated(MediaTypeTrailer, audioVideoChecksum(media))
	return v
}

// SetBanner replaces the banner slot; nil clears it.
func (v *Video) SetBanner(media *ImageMedia) *Video {
	v.banner = media
	v.onMediaUpdated(MediaTypeBanner, imageChecksum(media))
	return v
}

// SetThumbnail replaces the thumbnail slot; nil clears it.
func (v *Video) SetThumbnail(media *ImageMedia) *Video {
	v.thumbnail = media
	v.onMediaUpdated(MediaTypeThumbnail, imageChecksum(media))
	return v
}

// SetThumbnailHalf replaces the half-size thumbnail slot; nil clears it.
func (v *Video) SetThumbnailHalf(media *ImageMedia) *Video {
	v.thumbnailHalf = media
	v.onMediaUpdated(MediaTypeThumbnailHalf, imageChecksum(media))
	return v
}

// Processing moves the given audio/video slot to PROCESSING. Absent
// slots are a silent no-op; non-audio/video media types are an error.
func (v *Video) Processing(mediaType MediaType) error {
	slot, err := v.audioVideoSlot(mediaType)
	if err != nil {
		return err
	}
	if *slot == nil {
		return nil
	}
	media := (*slot).Processing()
	*slot = &media
	v.touch()
	return nil
}

// Completed moves the given audio/video slot to COMPLETED carrying the
// encoded location. Absent slots are a silent no-op; non-audio/video
// media types are an error. Re-invoking is idempotent.
func (v *Video) Completed(mediaType MediaType, encodedLocation string) error {
	slot, err := v.audioVideoSlot(mediaType)
	if err != nil {
		return err
	}
	if *slot == nil {
		return nil
	}
	media := (*slot).Completed(encodedLocation)
	*slot = &media
	v.touch()
	return nil
}

// PullEvents drains and returns the events accumulated since the last
// drain, in registration order.
func (v *Video) PullEvents() []interfaces.Event {
	events := v.events
	v.events = nil
	return events
}

// ID returns the video identifier.
func (v *Video) ID() VideoID { return v.id }

// Title returns the title.
func (v *Video) Title() string { return v.title }

// Description returns the description.
func (v *Video) Description() string { return v.description }

// LaunchedAt returns the launch year.
func (v *Video) LaunchedAt() int { return v.launchedAt }

// Duration returns the duration in fractional minutes.
func (v *Video) Duration() float64 { return v.duration }

// Rating returns the content rating.
func (v *Video) Rating() Rating { return v.rating }

// IsOpened reports the opened flag.
func (v *Video) IsOpened() bool { return v.opened }

// IsPublished reports the published flag.
func (v *Video) IsPublished() bool { return v.published }

// CreatedAt returns the creation time.
func (v *Video) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last mutation time; zero for a fresh video.
func (v *Video) UpdatedAt() time.Time { return v.updatedAt }

// Categories returns a copy of the referenced category identifiers.
func (v *Video) Categories() []catalog.CategoryID {
	out := make([]catalog.CategoryID, len(v.categories))
	copy(out, v.categories)
	return out
}

// Genres returns a copy of the referenced genre identifiers.
func (v *Video) Genres() []catalog.GenreID {
	out := make([]catalog.GenreID, len(v.genres))
	copy(out, v.genres)
	return out
}

// CastMembers returns a copy of the referenced cast member identifiers.
func (v *Video) CastMembers() []catalog.CastMemberID {
	out := make([]catalog.CastMemberID, len(v.castMembers))
	copy(out, v.castMembers)
	return out
}

// Video returns the video slot, nil when absent.
func (v *Video) Video() *AudioVideoMedia { return v.video }

// Trailer returns the trailer slot, nil when absent.
func (v *Video) Trailer() *AudioVideoMedia { return v.trailer }

// Banner returns the banner slot, nil when absent.
func (v *Video) Banner() *ImageMedia { return v.banner }

// Thumbnail returns the thumbnail slot, nil when absent.
func (v *Video) Thumbnail() *ImageMedia { return v.thumbnail }

// ThumbnailHalf returns the half-size thumbnail slot, nil when absent.
func (v *Video) ThumbnailHalf() *ImageMedia { return v.thumbnailHalf }

func (v *Video) audioVideoSlot(mediaType MediaType) (**AudioVideoMedia, error) {
	switch mediaType {
	case MediaTypeVideo:
		return &v.video, nil
	case MediaTypeTrailer:
		return &v.trailer, nil
	default:
		return nil, pkgerrors.New(pkgerrors.ErrorTypeValidation,
			fmt.Sprintf("media type %s is not an audio video media", mediaType))
	}
}

func (v *Video) onMediaUpdated(mediaType MediaType, checksum string) {
	v.touch()
	v.events = append(v.events, NewMediaUpdatedEvent(v.id, mediaType, checksum))
}

func (v *Video) touch() {
	v.updatedAt = time.Now()
}

func audioVideoChecksum(m *AudioVideoMedia) string {
	if m == nil {
		return ""
	}
	return m.Checksum()
}

func imageChecksum(m *ImageMedia) string {
	if m == nil {
		return ""
	}
	return m.Checksum()
}

func dedupCategories(ids []catalog.CategoryID) []catalog.CategoryID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[catalog.CategoryID]struct{}, len(ids))
	out := make([]catalog.CategoryID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupGenres(ids []catalog.GenreID) []catalog.GenreID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[catalog.GenreID]struct{}, len(ids))
	out := make([]catalog.GenreID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupCastMembers(ids []catalog.CastMemberID) []catalog.CastMemberID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[catalog.CastMemberID]struct{}, len(ids))
	out := make([]catalog.CastMemberID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
