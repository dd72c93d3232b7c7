package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
)

// Soft-deleted pins are kept around for this many days before the purge
// removes them for good.
const purgeRetentionDays = 30

// PinPurgeScheduler permanently removes soft-deleted pins past the retention
// window so the table stays bounded.
type PinPurgeScheduler struct {
	cron    *cron.Cron
	pinRepo repository.PinRepository
}

func NewPinPurgeScheduler(pinRepo repository.PinRepository) *PinPurgeScheduler {
	return &PinPurgeScheduler{
		cron:    cron.New(),
		pinRepo: pinRepo,
	}
}

// Start schedules the purge to run daily at 04:00.
func (s *PinPurgeScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		logger.Info("Starting scheduled pin purge", nil)

		purged, err := s.pinRepo.PurgeDeletedBefore(purgeRetentionDays)
		if err != nil {
			logger.Error("Failed to purge deleted pins", err)
			return
		}

		logger.Info("Pin purge completed", map[string]interface{}{
			"purged":         purged,
			"retention_days": purgeRetentionDays,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for pin purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Pin purge scheduler started (daily at 4:00 AM)", nil)

	return nil
}

// Stop stops the scheduler
func (s *PinPurgeScheduler) Stop() {
	logger.Info("Stopping pin purge scheduler...", nil)
	s.cron.Stop()
}
