package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
)

// BackupPruner removes backup files older than the retention window kept by
// the file document store.
type BackupPruner struct {
	store    BackupStore
	interval time.Duration
	logger   *logger.Logger
}

func NewBackupPruner(store BackupStore, interval time.Duration, logger *logger.Logger) *BackupPruner {
	return &BackupPruner{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

func (p *BackupPruner) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("backup pruner started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("backup pruner stopped")
			return
		case <-ticker.C:
			p.store.PruneBackups(ctx)
		}
	}
}
