package workers

import (
	"github.com/Deadmanswitch/encryption/internal/adapter"
	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the vault client.
func NewWorkers(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewUploadWorker(storages.OutboxRepository, serverAdapter, cfg.UploadInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
