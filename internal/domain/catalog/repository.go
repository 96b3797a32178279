package catalog

import (
	"context"

	"github.com/finchmedia/finch/pkg/pagination"
)

// CategoryRepository defines the persistence gateway for categories.
// ExistsByIDs is the batch existence check used by cross-reference
// validation: one round-trip regardless of set size.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id CategoryID) (*Category, error)
	DeleteByID(ctx context.Context, id CategoryID) error
	List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*Category], error)
	ExistsByIDs(ctx context.Context, ids []CategoryID) ([]CategoryID, error)
}

// GenreRepository defines the persistence gateway for genres.
type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	Update(ctx context.Context, genre *Genre) error
	FindByID(ctx context.Context, id GenreID) (*Genre, error)
	DeleteByID(ctx context.Context, id GenreID) error
	List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*Genre], error)
	ExistsByIDs(ctx context.Context, ids []GenreID) ([]GenreID, error)
}

// CastMemberRepository defines the persistence gateway for cast members.
type CastMemberRepository interface {
	Create(ctx context.Context, member *CastMember) error
	Update(ctx context.Context, member *CastMember) error
	FindByID(ctx context.Context, id CastMemberID) (*CastMember, error)
	DeleteByID(ctx context.Context, id CastMemberID) error
	List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*CastMember], error)
	ExistsByIDs(ctx context.Context, ids []CastMemberID) ([]CastMemberID, error)
}
