package catalog

import (
	"time"

	"github.com/finchmedia/finch/internal/domain/validation"
)

const maxNameLength = 255

// Category is a catalog classification aggregate (e.g. "Documentary").
type Category struct {
	id          CategoryID
	name        string
	description string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory constructs a category with a fresh identifier and runs
// validation, reporting every violation found.
func NewCategory(name, description string, active bool) (*Category, error) {
	c := &Category{
		id:          NewCategoryID(),
		name:        name,
		description: description,
		active:      active,
		createdAt:   time.Now(),
	}

	n := validation.NewNotification()
	c.Validate(n)
	if err := validation.AsError(n, "could not create aggregate category"); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCategory rebuilds a category from persisted state without
// re-validating.
func RestoreCategory(id CategoryID, name, description string, active bool, createdAt, updatedAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Update replaces the category's fields, bumps updatedAt, and
// re-validates.
func (c *Category) Update(name, description string, active bool) (*Category, error) {
	c.name = name
	c.description = description
	c.active = active
	c.updatedAt = time.Now()

	n := validation.NewNotification()
	c.Validate(n)
	if err := validation.AsError(n, "could not update aggregate category"); err != nil {
		return nil, err
	}
	return c, nil
}

// Activate marks the category active.
func (c *Category) Activate() *Category {
	c.active = true
	c.updatedAt = time.Now()
	return c
}

// Deactivate marks the category inactive.
func (c *Category) Deactivate() *Category {
	c.active = false
	c.updatedAt = time.Now()
	return c
}

// Validate appends every invariant violation to the handler.
func (c *Category) Validate(h validation.Handler) {
	validation.CheckStringLength(h, "name", c.name, maxNameLength)
}

// ID returns the category identifier.
func (c *Category) ID() CategoryID { return c.id }

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Description returns the category description.
func (c *Category) Description() string { return c.description }

// IsActive reports whether the category is active.
func (c *Category) IsActive() bool { return c.active }

// CreatedAt returns the creation time.
func (c *Category) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last mutation time; zero for a fresh category.
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }
