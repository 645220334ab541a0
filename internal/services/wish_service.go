package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"github.com/sirupsen/logrus"
)

// WishStatus values reported by GetStatus.
const (
	StatusActive = "active"
	StatusGone   = "gone"
)

const slugMaxAttempts = 3

// WishService owns the wish lifecycle: creation, the view protocol, and
// soft deletion. Hard deletion belongs to the cleanup sweeper alone.
type WishService struct {
	repo WishStore
}

func NewWishService(repo WishStore) *WishService {
	return &WishService{repo: repo}
}

// CreateWish validates the fields, generates a unique slug and stores the
// wish.
func (s *WishService) CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	if wish.Message == "" {
		return nil, fmt.Errorf("%w: wish must have a message", ErrValidation)
	}
	if wish.MaxViews != nil && *wish.MaxViews <= 0 {
		return nil, fmt.Errorf("%w: max_views must be positive", ErrValidation)
	}

	slug, err := GenerateUniqueSlug(ctx, s.repo, slugMaxAttempts)
	if err != nil {
		return nil, err
	}
	wish.Slug = slug
	wish.CurrentViews = 0
	wish.IsDeleted = false

	created, err := s.repo.CreateWish(ctx, wish)
	if err != nil {
		return nil, err
	}

	logrus.WithField("slug", created.Slug).Info("Wish created")
	return created, nil
}

// ViewWish runs the read protocol, in this order:
//  1. load the wish; unknown slug is NotFound
//  2. already soft-deleted is Gone, no view counted
//  3. already expired is Gone, no view counted; the wish is soft-deleted
//  4. otherwise count the view atomically, then re-check: if this view
//     consumed the last one the wish is soft-deleted, but the content is
//     still returned to this caller. The next caller sees Gone.
//
// With max_views = N the content is served exactly N times.
func (s *WishService) ViewWish(ctx context.Context, slug string, now time.Time) (*models.Wish, error) {
	wish, err := s.repo.GetWishBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if wish == nil {
		return nil, ErrNotFound
	}

	if wish.IsDeleted {
		return nil, ErrGone
	}

	if result := Evaluate(wish, now); result.Expired {
		if err := s.repo.SoftDelete(ctx, wish.ID, now); err != nil {
			logrus.WithError(err).WithField("slug", slug).Error("Failed to soft delete expired wish")
		}
		return nil, fmt.Errorf("%w: %s", ErrGone, result.Reason)
	}

	updated, err := s.repo.IncrementViews(ctx, wish.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// A concurrent viewer consumed the last view between our load and
		// the increment.
		return nil, ErrGone
	}

	if ShouldSoftDelete(updated, now) {
		if err := s.repo.SoftDelete(ctx, updated.ID, now); err != nil {
			logrus.WithError(err).WithField("slug", slug).Error("Failed to soft delete wish after final view")
		}
	}

	return updated, nil
}

// DeleteWish soft-deletes a wish on user request. Deleting a wish that is
// already soft-deleted succeeds without changing anything.
func (s *WishService) DeleteWish(ctx context.Context, slug string, now time.Time) error {
	wish, err := s.repo.GetWishBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if wish == nil {
		return ErrNotFound
	}

	if err := s.repo.SoftDelete(ctx, wish.ID, now); err != nil {
		return err
	}

	logrus.WithField("slug", slug).Info("Wish deleted")
	return nil
}

// GetStatus reports active or gone without counting a view.
func (s *WishService) GetStatus(ctx context.Context, slug string, now time.Time) (string, error) {
	wish, err := s.repo.GetWishBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if wish == nil {
		return "", ErrNotFound
	}

	if wish.IsDeleted || Evaluate(wish, now).Expired {
		return StatusGone, nil
	}
	return StatusActive, nil
}

// GetWishBySlug exposes the raw lookup to the upload orchestration.
func (s *WishService) GetWishBySlug(ctx context.Context, slug string) (*models.Wish, error) {
	wish, err := s.repo.GetWishBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if wish == nil {
		return nil, ErrNotFound
	}
	return wish, nil
}
