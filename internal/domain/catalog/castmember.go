package catalog

import (
	"fmt"
	"time"

	"github.com/finchmedia/finch/internal/domain/validation"
)

// CastMemberType is the closed set of roles a cast member can have.
type CastMemberType string

const (
	CastMemberTypeActor    CastMemberType = "ACTOR"
	CastMemberTypeDirector CastMemberType = "DIRECTOR"
)

// ParseCastMemberType resolves a string to a cast member type.
func ParseCastMemberType(s string) (CastMemberType, error) {
	switch CastMemberType(s) {
	case CastMemberTypeActor, CastMemberTypeDirector:
		return CastMemberType(s), nil
	default:
		return "", fmt.Errorf("unknown cast member type %q", s)
	}
}

// Valid reports whether the type is one of the closed set.
func (t CastMemberType) Valid() bool {
	return t == CastMemberTypeActor || t == CastMemberTypeDirector
}

// CastMember is a person credited on videos, either actor or director.
type CastMember struct {
	id        CastMemberID
	name      string
	kind      CastMemberType
	createdAt time.Time
	updatedAt time.Time
}

// NewCastMember constructs a cast member with a fresh identifier and
// runs validation, reporting every violation found.
func NewCastMember(name string, kind CastMemberType) (*CastMember, error) {
	m := &CastMember{
		id:        NewCastMemberID(),
		name:      name,
		kind:      kind,
		createdAt: time.Now(),
	}

	n := validation.NewNotification()
	m.Validate(n)
	if err := validation.AsError(n, "could not create aggregate cast member"); err != nil {
		return nil, err
	}
	return m, nil
}

// RestoreCastMember rebuilds a cast member from persisted state without
// re-validating.
func RestoreCastMember(id CastMemberID, name string, kind CastMemberType, createdAt, updatedAt time.Time) *CastMember {
	return &CastMember{
		id:        id,
		name:      name,
		kind:      kind,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Update replaces the cast member's fields, bumps updatedAt, and
// re-validates.
func (m *CastMember) Update(name string, kind CastMemberType) (*CastMember, error) {
	m.name = name
	m.kind = kind
	m.updatedAt = time.Now()

	n := validation.NewNotification()
	m.Validate(n)
	if err := validation.AsError(n, "could not update aggregate cast member"); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate appends every invariant violation to the handler.
func (m *CastMember) Validate(h validation.Handler) {
	validation.CheckStringLength(h, "name", m.name, maxNameLength)
	if !m.kind.Valid() {
		h.Append(validation.NewError("'type' must be either ACTOR or DIRECTOR"))
	}
}

// ID returns the cast member identifier.
func (m *CastMember) ID() CastMemberID { return m.id }

// Name returns the cast member name.
func (m *CastMember) Name() string { return m.name }

// Type returns the cast member type.
func (m *CastMember) Type() CastMemberType { return m.kind }

// CreatedAt returns the creation time.
func (m *CastMember) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the last mutation time; zero for a fresh member.
func (m *CastMember) UpdatedAt() time.Time { return m.updatedAt }
