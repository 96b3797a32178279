package catalog

import (
	"time"

	"github.com/finchmedia/finch/internal/domain/validation"
)

// Genre is a catalog classification aggregate referencing the categories
// it belongs to.
type Genre struct {
	id         GenreID
	name       string
	active     bool
	categories []CategoryID
	createdAt  time.Time
	updatedAt  time.Time
}

// NewGenre constructs a genre with a fresh identifier and runs
// validation, reporting every violation found. The category set is
// de-duplicated preserving encounter order.
func NewGenre(name string, active bool, categories []CategoryID) (*Genre, error) {
	g := &Genre{
		id:         NewGenreID(),
		name:       name,
		active:     active,
		categories: dedupCategoryIDs(categories),
		createdAt:  time.Now(),
	}

	n := validation.NewNotification()
	g.Validate(n)
	if err := validation.AsError(n, "could not create aggregate genre"); err != nil {
		return nil, err
	}
	return g, nil
}

// RestoreGenre rebuilds a genre from persisted state without
// re-validating.
func RestoreGenre(id GenreID, name string, active bool, categories []CategoryID, createdAt, updatedAt time.Time) *Genre {
	return &Genre{
		id:         id,
		name:       name,
		active:     active,
		categories: dedupCategoryIDs(categories),
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Update replaces the genre's fields, bumps updatedAt, and re-validates.
func (g *Genre) Update(name string, active bool, categories []CategoryID) (*Genre, error) {
	g.name = name
	g.active = active
	g.categories = dedupCategoryIDs(categories)
	g.updatedAt = time.Now()

	n := validation.NewNotification()
	g.Validate(n)
	if err := validation.AsError(n, "could not update aggregate genre"); err != nil {
		return nil, err
	}
	return g, nil
}

// AddCategory appends a category reference if not already present.
func (g *Genre) AddCategory(id CategoryID) *Genre {
	for _, existing := range g.categories {
		if existing == id {
			return g
		}
	}
	g.categories = append(g.categories, id)
	g.updatedAt = time.Now()
	return g
}

// RemoveCategory drops a category reference if present.
func (g *Genre) RemoveCategory(id CategoryID) *Genre {
	for i, existing := range g.categories {
		if existing == id {
			g.categories = append(g.categories[:i], g.categories[i+1:]...)
			g.updatedAt = time.Now()
			break
		}
	}
	return g
}

// Validate appends every invariant violation to the handler.
func (g *Genre) Validate(h validation.Handler) {
	validation.CheckStringLength(h, "name", g.name, maxNameLength)
}

// ID returns the genre identifier.
func (g *Genre) ID() GenreID { return g.id }

// Name returns the genre name.
func (g *Genre) Name() string { return g.name }

// IsActive reports whether the genre is active.
func (g *Genre) IsActive() bool { return g.active }

// Categories returns a copy of the referenced category identifiers.
func (g *Genre) Categories() []CategoryID {
	out := make([]CategoryID, len(g.categories))
	copy(out, g.categories)
	return out
}

// CreatedAt returns the creation time.
func (g *Genre) CreatedAt() time.Time { return g.createdAt }

// UpdatedAt returns the last mutation time; zero for a fresh genre.
func (g *Genre) UpdatedAt() time.Time { return g.updatedAt }

func dedupCategoryIDs(ids []CategoryID) []CategoryID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[CategoryID]struct{}, len(ids))
	out := make([]CategoryID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
