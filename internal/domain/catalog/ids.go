package catalog

import "github.com/google/uuid"

// Identifier types are distinct per aggregate kind and never
// interchangeable: a CategoryID cannot be passed where a GenreID is
// expected. All of them wrap a random 128-bit value and render in the
// canonical lowercase hex-dash form.

// CategoryID identifies a Category aggregate.
type CategoryID uuid.UUID

// NewCategoryID creates a fresh random category identifier.
func NewCategoryID() CategoryID {
	return CategoryID(uuid.New())
}

// ParseCategoryID parses the canonical string form.
func ParseCategoryID(s string) (CategoryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CategoryID{}, err
	}
	return CategoryID(id), nil
}

// String returns the canonical lowercase hex-dash form.
func (id CategoryID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is unset.
func (id CategoryID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// GenreID identifies a Genre aggregate.
type GenreID uuid.UUID

// NewGenreID creates a fresh random genre identifier.
func NewGenreID() GenreID {
	return GenreID(uuid.New())
}

// ParseGenreID parses the canonical string form.
func ParseGenreID(s string) (GenreID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return GenreID{}, err
	}
	return GenreID(id), nil
}

// String returns the canonical lowercase hex-dash form.
func (id GenreID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is unset.
func (id GenreID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// CastMemberID identifies a CastMember aggregate.
type CastMemberID uuid.UUID

// NewCastMemberID creates a fresh random cast member identifier.
func NewCastMemberID() CastMemberID {
	return CastMemberID(uuid.New())
}

// ParseCastMemberID parses the canonical string form.
func ParseCastMemberID(s string) (CastMemberID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CastMemberID{}, err
	}
	return CastMemberID(id), nil
}

// String returns the canonical lowercase hex-dash form.
func (id CastMemberID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is unset.
func (id CastMemberID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}
