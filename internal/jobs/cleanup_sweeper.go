package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/services"
	"github.com/Thejackcode565/Wish-A-Day/internal/storage"
	"github.com/sirupsen/logrus"
)

// CleanupSweeper is the only actor that hard-deletes wishes. It runs on a
// fixed interval, independent of request handling.
type CleanupSweeper struct {
	Wishes       services.WishStore
	Images       services.ImageStore
	Pipeline     *services.ImageService
	Files        storage.FileStore
	GracePeriod  time.Duration
	MinFreeBytes uint64
}

func NewCleanupSweeper(wishes services.WishStore, images services.ImageStore, pipeline *services.ImageService, files storage.FileStore, gracePeriod time.Duration, minFreeBytes uint64) *CleanupSweeper {
	return &CleanupSweeper{
		Wishes:       wishes,
		Images:       images,
		Pipeline:     pipeline,
		Files:        files,
		GracePeriod:  gracePeriod,
		MinFreeBytes: minFreeBytes,
	}
}

// RunSweep soft-deletes silently expired wishes, then purges wishes whose
// soft-deletion is older than the grace period.
func (c *CleanupSweeper) RunSweep(ctx context.Context) error {
	now := time.Now()

	if err := c.sweepSilentlyExpired(ctx, now); err != nil {
		return err
	}
	if err := c.purgeDeleted(ctx, now); err != nil {
		return err
	}

	logrus.Info("Cleanup sweep completed")
	return nil
}

// sweepSilentlyExpired marks time-expired wishes nobody viewed, so the
// grace-period purge is not starved by lack of traffic.
func (c *CleanupSweeper) sweepSilentlyExpired(ctx context.Context, now time.Time) error {
	expired, err := c.Wishes.FindSilentlyExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to fetch expired wishes: %v", err)
	}

	for _, wish := range expired {
		if err := c.Wishes.SoftDelete(ctx, wish.ID, now); err != nil {
			logrus.WithError(err).WithField("slug", wish.Slug).Error("Failed to soft delete expired wish")
			continue
		}
		logrus.WithField("slug", wish.Slug).Debug("Soft deleted silently expired wish")
	}
	return nil
}

// purgeDeleted removes files, image records and the wish record for every
// wish past grace. Each wish is purged as one unit: files first, then image
// records, then the wish record, so a crash mid sweep leaves the wish either
// present or fully purged on the next run.
func (c *CleanupSweeper) purgeDeleted(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-c.GracePeriod)
	doomed, err := c.Wishes.FindDeletedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to fetch deleted wishes: %v", err)
	}

	for _, wish := range doomed {
		images, err := c.Images.ListImagesByWish(ctx, wish.ID)
		if err != nil {
			logrus.WithError(err).WithField("slug", wish.Slug).Error("Failed to list images for purge")
			continue
		}

		for _, image := range images {
			if !c.Pipeline.Delete(image.Path) {
				logrus.WithField("path", image.Path).Debug("Image file already gone")
			}
		}

		if err := c.Images.DeleteImagesByWish(ctx, wish.ID); err != nil {
			logrus.WithError(err).WithField("slug", wish.Slug).Error("Failed to delete image records")
			continue
		}
		if err := c.Wishes.DeleteWish(ctx, wish.ID); err != nil {
			logrus.WithError(err).WithField("slug", wish.Slug).Error("Failed to purge wish")
			continue
		}

		logrus.WithField("slug", wish.Slug).Info("Purged wish past grace period")
	}
	return nil
}

// HasFreeSpace is the admission gate the upload path consults. It is a
// global floor on free disk space, not a per-file check.
func (c *CleanupSweeper) HasFreeSpace() (bool, error) {
	free, err := c.Files.FreeSpace()
	if err != nil {
		return false, err
	}
	return free >= c.MinFreeBytes, nil
}
