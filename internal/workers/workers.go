package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
)

// Workers runs the application's background workers together and waits for
// all of them on shutdown.
type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers for the configured storage:
// the session janitor always, the backup pruner only when the document store
// keeps on-disk backups.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	workers := []Worker{
		NewSessionJanitor(storages.SessionRepository, cfg.JanitorInterval, logger),
	}

	if pruner, ok := storages.Documents.(BackupStore); ok {
		workers = append(workers, NewBackupPruner(pruner, cfg.PruneInterval, logger))
	}

	return &Workers{workers: workers}
}

// Run launches every worker on its own goroutine and blocks until all of
// them have returned after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		worker := worker
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}

// BackupStore is implemented by document stores that keep timestamped backup
// copies next to their data files.
type BackupStore interface {
	PruneBackups(ctx context.Context)
}
