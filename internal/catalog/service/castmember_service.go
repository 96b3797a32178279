package service

import (
	"context"
	"fmt"

	"github.com/finchmedia/finch/internal/domain/catalog"
	"github.com/finchmedia/finch/pkg/errors"
	"github.com/finchmedia/finch/pkg/interfaces"
	"github.com/finchmedia/finch/pkg/pagination"
)

// CreateCastMemberInput carries the fields for creating a cast member.
type CreateCastMemberInput struct {
	Name string
	Type catalog.CastMemberType
}

// UpdateCastMemberInput carries the fields for updating a cast member.
type UpdateCastMemberInput struct {
	Name string
	Type catalog.CastMemberType
}

// CastMemberService orchestrates cast member use cases.
type CastMemberService struct {
	repo   catalog.CastMemberRepository
	logger interfaces.Logger
}

// NewCastMemberService creates a new cast member service.
func NewCastMemberService(repo catalog.CastMemberRepository, logger interfaces.Logger) *CastMemberService {
	return &CastMemberService{repo: repo, logger: logger}
}

// Create validates and persists a new cast member.
func (s *CastMemberService) Create(ctx context.Context, input CreateCastMemberInput) (*catalog.CastMember, error) {
	member, err := catalog.NewCastMember(input.Name, input.Type)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on create cast member was observed [castMemberID:%s]", member.ID()), err)
	}
	return member, nil
}

// Get retrieves a cast member by id.
func (s *CastMemberService) Get(ctx context.Context, id catalog.CastMemberID) (*catalog.CastMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundWithID("CastMember", id.String())
		}
		return nil, err
	}
	return member, nil
}

// Update loads, mutates, re-validates, and persists a cast member.
func (s *CastMemberService) Update(ctx context.Context, id catalog.CastMemberID, input UpdateCastMemberInput) (*catalog.CastMember, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := member.Update(input.Name, input.Type); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal,
			fmt.Sprintf("an error on update cast member was observed [castMemberID:%s]", id), err)
	}
	return member, nil
}

// Delete removes a cast member by id. Deleting an absent member is not
// an error.
func (s *CastMemberService) Delete(ctx context.Context, id catalog.CastMemberID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil && !errors.IsNotFound(err) {
		return err
	}
	return nil
}

// List returns a page of cast members.
func (s *CastMemberService) List(ctx context.Context, query pagination.SearchQuery) (pagination.Page[*catalog.CastMember], error) {
	return s.repo.List(ctx, query)
}
