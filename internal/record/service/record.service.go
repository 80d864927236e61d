package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifehub/internal/record/model"
	"lifehub/internal/record/repository"
	"lifehub/pkg/apperr"
)

// Service binds the generic scoped repository to the list-view contract:
// search echoed verbatim, incomplete count taken from the unfiltered owned
// set, identity fields stamped at creation. Every entry point requires a
// principal before any store access.
type Service[T any, PT interface {
	*T
	model.Stampable
}] struct {
	Repo *repository.Repository[T]
}

func New[T any, PT interface {
	*T
	model.Stampable
}](repo *repository.Repository[T]) *Service[T, PT] {
	return &Service[T, PT]{Repo: repo}
}

func (s *Service[T, PT]) ListPage(ctx context.Context, ownerID, search string) (model.ListPage[T], error) {
	var page model.ListPage[T]
	if ownerID == "" {
		return page, apperr.ErrUnauthenticated
	}

	items, err := s.Repo.List(ctx, ownerID, search)
	if err != nil {
		return page, err
	}
	page.Items = items
	page.SearchInput = search

	if s.Repo.Schema.HasComplete {
		count, err := s.Repo.CountIncomplete(ctx, ownerID)
		if err != nil {
			return page, err
		}
		page.Count = &count
	}
	return page, nil
}

func (s *Service[T, PT]) Get(ctx context.Context, ownerID, id string) (T, error) {
	var zero T
	if ownerID == "" {
		return zero, apperr.ErrUnauthenticated
	}
	return s.Repo.Get(ctx, ownerID, id)
}

// Create stamps the record with a fresh ID, the calling principal as owner,
// and the current time. The owner assignment is unconditional.
func (s *Service[T, PT]) Create(ctx context.Context, ownerID string, rec T) (T, error) {
	if ownerID == "" {
		var zero T
		return zero, apperr.ErrUnauthenticated
	}
	PT(&rec).Stamp(uuid.NewString(), ownerID, time.Now().UTC())
	if err := s.Repo.Create(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Update loads the caller's record, applies the editable fields and writes
// it back. The repository's update statement only touches editable columns,
// so owner and creation time cannot change even if apply were to set them.
func (s *Service[T, PT]) Update(ctx context.Context, ownerID, id string, apply func(*T)) (T, error) {
	var zero T
	if ownerID == "" {
		return zero, apperr.ErrUnauthenticated
	}
	rec, err := s.Repo.Get(ctx, ownerID, id)
	if err != nil {
		return zero, err
	}
	apply(&rec)
	if err := s.Repo.Update(ctx, ownerID, id, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

func (s *Service[T, PT]) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return apperr.ErrUnauthenticated
	}
	return s.Repo.Delete(ctx, ownerID, id)
}
