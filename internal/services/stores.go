package services

import (
	"context"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishStore is the record-store surface the lifecycle logic runs against.
// Lookups that match nothing return (nil, nil); errors are reserved for
// store failures.
type WishStore interface {
	SlugChecker

	CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	GetWishBySlug(ctx context.Context, slug string) (*models.Wish, error)

	// IncrementViews adds one view to the wish, but only while the wish is
	// not deleted and, when a view ceiling exists, still below it. It
	// returns the post-increment record, or nil when no eligible record
	// matched. The update-and-check is a single store operation, which is
	// what keeps two racing final views from both being served.
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Wish, error)

	// SoftDelete marks the wish deleted at the given instant. Calling it on
	// an already-deleted wish is a no-op, so DeletedAt is never moved.
	SoftDelete(ctx context.Context, id primitive.ObjectID, now time.Time) error

	DeleteWish(ctx context.Context, id primitive.ObjectID) error

	// FindDeletedBefore returns soft-deleted wishes whose DeletedAt is
	// older than the cutoff.
	FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Wish, error)

	// FindSilentlyExpired returns non-deleted wishes whose ExpiresAt has
	// passed, regardless of whether anyone viewed them.
	FindSilentlyExpired(ctx context.Context, now time.Time) ([]models.Wish, error)
}

// ImageStore holds the image records owned by wishes.
type ImageStore interface {
	CreateImage(ctx context.Context, image *models.WishImage) (*models.WishImage, error)
	GetImage(ctx context.Context, id, wishID primitive.ObjectID) (*models.WishImage, error)
	ListImagesByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.WishImage, error)
	CountImagesByWish(ctx context.Context, wishID primitive.ObjectID) (int64, error)
	DeleteImage(ctx context.Context, id primitive.ObjectID) error
	DeleteImagesByWish(ctx context.Context, wishID primitive.ObjectID) error
}
