package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

// TrashCleaner permanently deletes trashed resources older than the
// retention window. It reuses the same purge path as a manual purge,
// so object deletion stays best-effort and folder purges cascade.
type TrashCleaner struct {
	trashService *services.TrashService
	retention    time.Duration
	scheduler    *gocron.Scheduler
}

func NewTrashCleaner(trashService *services.TrashService, retention time.Duration) *TrashCleaner {
	return &TrashCleaner{
		trashService: trashService,
		retention:    retention,
		scheduler:    gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the cleanup to run at the given interval. The first
// run fires immediately so a restart never extends retention.
func (tc *TrashCleaner) Start(interval time.Duration) error {
	_, err := tc.scheduler.Every(interval).StartImmediately().Do(tc.runCleanup)
	if err != nil {
		return err
	}
	tc.scheduler.StartAsync()
	utils.LogInfo(fmt.Sprintf("Trash cleaner scheduled every %v (retention %v)", interval, tc.retention))
	return nil
}

func (tc *TrashCleaner) Stop() {
	tc.scheduler.Stop()
}

func (tc *TrashCleaner) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-tc.retention)

	purged, err := tc.trashService.PurgeExpired(ctx, cutoff)
	if err != nil {
		utils.LogError("Trash cleanup pass failed", err)
		return
	}
	if purged > 0 {
		utils.LogInfo(fmt.Sprintf("Trash cleanup purged %d expired resources", purged))
	}
}
