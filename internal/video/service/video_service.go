package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/internal/domain/validation"
	"github.com/finchmedia/finch/internal/domain/video"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/interfaces"
	"github.com/finchmedia/finch/pkg/pagination"
)

// CreateVideoInput carries the fields for creating a video.
type CreateVideoInput struct {
	Title       string
	Description string
	LaunchedAt  int
	Duration    float64
	Rating      video.Rating
	Opened      bool
	Published   bool
	Categories  []catalog.CategoryID
	Genres      []catalog.GenreID
	CastMembers []catalog.CastMemberID
}

// UpdateVideoInput carries the fields for updating a video.
type UpdateVideoInput struct {
	Title       string
	Description string
	LaunchedAt  int
	Duration    float64
	Rating      video.Rating
	Opened      bool
	Published   bool
	Categories  []catalog.CategoryID
	Genres      []catalog.GenreID
	CastMembers []catalog.CastMemberID
}

// VideoService orchestrates video use cases: it accumulates every
// cross-reference and field violation before deciding to persist, so
// callers see the union of problems in one rejection.
type VideoService struct {
	repo           video.Repository
	categoryRepo   catalog.CategoryRepository
	genreRepo      catalog.GenreRepository
	castMemberRepo catalog.CastMemberRepository
	storage        video.MediaStorage
	eventBus       interfaces.EventBus
	logger         interfaces.Logger
}

// NewVideoService creates a new video service.
func NewVideoService(
	repo video.Repository,
	categoryRepo catalog.CategoryRepository,
	genreRepo catalog.GenreRepository,
	castMemberRepo catalog.CastMemberRepository,
	storage video.MediaStorage,
	eventBus interfaces.EventBus,
	logger interfaces.Logger,
) *VideoService {
	return &VideoService{
		repo:           repo,
		categoryRepo:   categoryRepo,
		genreRepo:      genreRepo,
		castMemberRepo: castMemberRepo,
		storage:        storage,
		eventBus:       eventBus,
		logger:         logger,
	}
}

// Create cross-validates every referenced aggregate and the video's own
// invariants, then persists. Persistence is attempted only after all
// validation passes.
func (s *VideoService) Create(ctx context.Context, input CreateVideoInput) (*video.Video, error) {
	n := validation.NewNotification()
	if err := s.validateRelations(ctx, n, input.Categories, input.Genres, input.CastMembers); err != nil {
		return nil, err
	}

	var v *video.Video
	n.Check(func() error {
		var err error
		v, err = video.NewVideo(
			input.Title, input.Description, input.LaunchedAt, input.Duration,
			input.Rating, input.Opened, input.Published,
			input.Categories, input.Genres, input.CastMembers,
		)
		return err
	})

	if err := validation.AsError(n, "could not create aggregate video"); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on create video was observed [videoID:%s]", v.ID()), err)
	}

	s.logger.Info("Video created",
		interfaces.String("id", v.ID().String()),
		interfaces.String("title", v.Title()))
	return v, nil
}

// Update loads the video, accumulates cross-reference and field
// violations, and persists only when the whole set is clean.
func (s *VideoService) Update(ctx context.Context, id video.VideoID, input UpdateVideoInput) (*video.Video, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	n := validation.NewNotification()
	if err := s.validateRelations(ctx, n, input.Categories, input.Genres, input.CastMembers); err != nil {
		return nil, err
	}
	n.Check(func() error {
		_, err := v.Update(
			input.Title, input.Description, input.LaunchedAt, input.Duration,
			input.Rating, input.Opened, input.Published,
			input.Categories, input.Genres, input.CastMembers,
		)
		return err
	})

	if err := validation.AsError(n, "could not update aggregate video"); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on update video was observed [videoID:%s]", id), err)
	}

	s.publishEvents(ctx, v)
	return v, nil
}

// Get retrieves a video by id.
func (s *VideoService) Get(ctx context.Context, id video.VideoID) (*video.Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundWithID("Video", id.String())
		}
		return nil, err
	}
	return v, nil
}

// Delete removes a video and clears its stored binaries. Deleting an
// absent video is not an error, and storage failures are logged rather
// than propagated.
func (s *VideoService) Delete(ctx context.Context, id video.VideoID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil && !errors.IsNotFound(err) {
		return err
	}

	if err := s.storage.ClearResources(ctx, id); err != nil {
		s.logger.Error("Failed to clear video resources",
			interfaces.String("video_id", id.String()),
			interfaces.Error(err))
	}
	return nil
}

// List returns a page of video previews.
func (s *VideoService) List(ctx context.Context, query video.SearchQuery) (pagination.Page[video.Preview], error) {
	return s.repo.List(ctx, query)
}

// validateRelations batch-checks every foreign reference set. Gateway
// failures short-circuit; missing references accumulate one aggregated
// violation per set.
func (s *VideoService) validateRelations(
	ctx context.Context,
	h validation.Handler,
	categories []catalog.CategoryID,
	genres []catalog.GenreID,
	castMembers []catalog.CastMemberID,
) error {
	if len(categories) > 0 {
		found, err := s.categoryRepo.ExistsByIDs(ctx, categories)
		if err != nil {
			return errors.Wrap(errors.ErrorTypeInternal, "failed to check categories existence", err)
		}
		appendMissing(h, "categories", categoryIDStrings(categories), categoryIDStrings(found))
	}
	if len(genres) > 0 {
		found, err := s.genreRepo.ExistsByIDs(ctx, genres)
		if err != nil {
			return errors.Wrap(errors.ErrorTypeInternal, "failed to check genres existence", err)
		}
		appendMissing(h, "genres", genreIDStrings(genres), genreIDStrings(found))
	}
	if len(castMembers) > 0 {
		found, err := s.castMemberRepo.ExistsByIDs(ctx, castMembers)
		if err != nil {
			return errors.Wrap(errors.ErrorTypeInternal, "failed to check cast members existence", err)
		}
		appendMissing(h, "cast members", castMemberIDStrings(castMembers), castMemberIDStrings(found))
	}
	return nil
}

// publishEvents drains the aggregate's accumulated events and forwards
// them to the bus, once per successful persist.
func (s *VideoService) publishEvents(ctx context.Context, v *video.Video) {
	for _, event := range v.PullEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish video event",
				interfaces.String("video_id", v.ID().String()),
				interfaces.String("event_type", event.EventType()),
				interfaces.Error(err))
		}
	}
}

// appendMissing compares the requested ids against the ids the gateway
// reported and appends a single aggregated violation naming every
// missing one, in request order. Duplicate requested ids count once, so
// a request repeating an existing id is not a violation.
func appendMissing(h validation.Handler, kind string, requested, found []string) {
	existing := make(map[string]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
			existing[id] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return
	}
	h.Append(validation.NewError(
		fmt.Sprintf("some %s could not be found: %s", kind, strings.Join(missing, ", "))))
}

func categoryIDStrings(ids []catalog.CategoryID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func genreIDStrings(ids []catalog.GenreID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func castMemberIDStrings(ids []catalog.CastMemberID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
