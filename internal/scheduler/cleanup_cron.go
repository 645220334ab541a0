package cron

import (
	"context"
	"fmt"

	"github.com/Thejackcode565/Wish-A-Day/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCleanupCron schedules the cleanup sweeper at the configured interval
// and runs one sweep immediately so a restart does not delay purging.
func StartCleanupCron(sweeper *jobs.CleanupSweeper, intervalMinutes int) *cron.Cron {
	c := cron.New()

	c.AddFunc(fmt.Sprintf("@every %dm", intervalMinutes), func() {
		if err := sweeper.RunSweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Cleanup sweep failed")
		}
	})

	c.Start()

	go func() {
		if err := sweeper.RunSweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Initial cleanup sweep failed")
		}
	}()

	return c
}
