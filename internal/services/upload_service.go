package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiskGate is the admission-control check the cleanup sweeper exposes to
// the upload path.
type DiskGate interface {
	HasFreeSpace() (bool, error)
}

// UploadService orchestrates image uploads around the stateless pipeline:
// wish must be active, the per-wish image ceiling and the global disk floor
// are checked here, and validation completes before any byte is written.
type UploadService struct {
	wishes    WishStore
	images    ImageStore
	pipeline  *ImageService
	disk      DiskGate
	maxImages int
}

func NewUploadService(wishes WishStore, images ImageStore, pipeline *ImageService, disk DiskGate, maxImages int) *UploadService {
	return &UploadService{
		wishes:    wishes,
		images:    images,
		pipeline:  pipeline,
		disk:      disk,
		maxImages: maxImages,
	}
}

func (s *UploadService) UploadImage(ctx context.Context, slug string, file io.ReadSeeker, filename, contentType string, now time.Time) (*models.WishImage, error) {
	wish, err := s.wishes.GetWishBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if wish == nil {
		return nil, ErrNotFound
	}
	if wish.IsDeleted || Evaluate(wish, now).Expired {
		return nil, ErrGone
	}

	count, err := s.images.CountImagesByWish(ctx, wish.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxImages) {
		return nil, fmt.Errorf("%w: maximum %d images per wish", ErrQuotaExceeded, s.maxImages)
	}

	if err := s.pipeline.Validate(file, filename, contentType); err != nil {
		return nil, err
	}

	ok, err := s.disk.HasFreeSpace()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStorageExhausted
	}

	relPath, err := s.pipeline.Process(file, filename, wish.ID.Hex())
	if err != nil {
		return nil, err
	}

	image, err := s.images.CreateImage(ctx, &models.WishImage{
		WishID: wish.ID,
		Path:   relPath,
	})
	if err != nil {
		// The record is the source of truth; don't leave the file behind.
		s.pipeline.Delete(relPath)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"slug": slug, "path": relPath}).Info("Image uploaded")
	return image, nil
}

func (s *UploadService) DeleteImage(ctx context.Context, slug string, imageID primitive.ObjectID) error {
	wish, err := s.wishes.GetWishBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if wish == nil {
		return ErrNotFound
	}

	image, err := s.images.GetImage(ctx, imageID, wish.ID)
	if err != nil {
		return err
	}
	if image == nil {
		return fmt.Errorf("%w: image", ErrNotFound)
	}

	s.pipeline.Delete(image.Path)

	if err := s.images.DeleteImage(ctx, image.ID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"slug": slug, "image_id": imageID.Hex()}).Info("Image deleted")
	return nil
}

func (s *UploadService) ListImages(ctx context.Context, slug string) ([]models.WishImage, error) {
	wish, err := s.wishes.GetWishBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if wish == nil {
		return nil, ErrNotFound
	}

	return s.images.ListImagesByWish(ctx, wish.ID)
}
