package services

import (
	"context"
	"sync"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeWishStore mirrors the conditional-update semantics of the Mongo
// repository: IncrementViews only succeeds while the wish is live and below
// its ceiling, under one lock so racing viewers serialize as the real
// single-document update does.
type fakeWishStore struct {
	mu     sync.Mutex
	wishes map[primitive.ObjectID]*models.Wish
}

func newFakeWishStore() *fakeWishStore {
	return &fakeWishStore{wishes: make(map[primitive.ObjectID]*models.Wish)}
}

func copyWish(w *models.Wish) *models.Wish {
	c := *w
	return &c
}

func (s *fakeWishStore) CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wish.ID = primitive.NewObjectID()
	wish.CreatedAt = time.Now()
	s.wishes[wish.ID] = copyWish(wish)
	return copyWish(wish), nil
}

func (s *fakeWishStore) GetWishBySlug(ctx context.Context, slug string) (*models.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.wishes {
		if w.Slug == slug {
			return copyWish(w), nil
		}
	}
	return nil, nil
}

func (s *fakeWishStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.wishes {
		if w.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeWishStore) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wishes[id]
	if !ok || w.IsDeleted {
		return nil, nil
	}
	if w.MaxViews != nil && w.CurrentViews >= *w.MaxViews {
		return nil, nil
	}
	w.CurrentViews++
	return copyWish(w), nil
}

func (s *fakeWishStore) SoftDelete(ctx context.Context, id primitive.ObjectID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wishes[id]
	if !ok || w.IsDeleted {
		return nil
	}
	w.IsDeleted = true
	w.DeletedAt = &now
	return nil
}

func (s *fakeWishStore) DeleteWish(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.wishes, id)
	return nil
}

func (s *fakeWishStore) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Wish
	for _, w := range s.wishes {
		if w.IsDeleted && w.DeletedAt != nil && w.DeletedAt.Before(cutoff) {
			out = append(out, *copyWish(w))
		}
	}
	return out, nil
}

func (s *fakeWishStore) FindSilentlyExpired(ctx context.Context, now time.Time) ([]models.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Wish
	for _, w := range s.wishes {
		if !w.IsDeleted && w.ExpiresAt != nil && w.ExpiresAt.Before(now) {
			out = append(out, *copyWish(w))
		}
	}
	return out, nil
}

type fakeImageStore struct {
	mu     sync.Mutex
	images map[primitive.ObjectID]*models.WishImage
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{images: make(map[primitive.ObjectID]*models.WishImage)}
}

func (s *fakeImageStore) CreateImage(ctx context.Context, image *models.WishImage) (*models.WishImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	image.ID = primitive.NewObjectID()
	image.CreatedAt = time.Now()
	c := *image
	s.images[image.ID] = &c
	return image, nil
}

func (s *fakeImageStore) GetImage(ctx context.Context, id, wishID primitive.ObjectID) (*models.WishImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.images[id]
	if !ok || img.WishID != wishID {
		return nil, nil
	}
	c := *img
	return &c, nil
}

func (s *fakeImageStore) ListImagesByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.WishImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.WishImage
	for _, img := range s.images {
		if img.WishID == wishID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (s *fakeImageStore) CountImagesByWish(ctx context.Context, wishID primitive.ObjectID) (int64, error) {
	imgs, _ := s.ListImagesByWish(ctx, wishID)
	return int64(len(imgs)), nil
}

func (s *fakeImageStore) DeleteImage(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.images, id)
	return nil
}

func (s *fakeImageStore) DeleteImagesByWish(ctx context.Context, wishID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, img := range s.images {
		if img.WishID == wishID {
			delete(s.images, id)
		}
	}
	return nil
}

type fakeDiskGate struct {
	ok bool
}

func (g *fakeDiskGate) HasFreeSpace() (bool, error) {
	return g.ok, nil
}
