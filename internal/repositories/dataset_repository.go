package repositories

import (
	"log/slog"
	"sync"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

type datasetRepository struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	loaded       bool
}

// NewDatasetRepository creates an empty in-memory dataset store.
func NewDatasetRepository() DatasetRepositoryInterface {
	return &datasetRepository{}
}

func (r *datasetRepository) Snapshot() ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, ErrDatasetNotLoaded
	}
	return r.transactions, nil
}

func (r *datasetRepository) Replace(transactions []models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = transactions
	r.loaded = true

	slog.Info("dataset snapshot replaced", "transactions", len(transactions))
}

func (r *datasetRepository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}
