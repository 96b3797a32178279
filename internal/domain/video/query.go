package video

import (
	"time"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/pkg/pagination"
)

// SearchQuery extends the common listing parameters with the video
// relation filters.
type SearchQuery struct {
	pagination.SearchQuery
	Categories  []catalog.CategoryID
	Genres      []catalog.GenreID
	CastMembers []catalog.CastMemberID
}

// Preview is the lightweight projection returned by listing: it is not
// a full aggregate.
type Preview struct {
	ID          VideoID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
