// Package repositories holds the dataset snapshot store. There is no
// database: the service recomputes everything from an immutable in-memory
// snapshot of classified transactions.
package repositories

import (
	"errors"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

var ErrDatasetNotLoaded = errors.New("no dataset loaded")

// DatasetRepositoryInterface provides access to the current classified
// dataset snapshot.
type DatasetRepositoryInterface interface {
	// Snapshot returns the current classified dataset. The returned slice
	// must be treated as read-only.
	Snapshot() ([]models.Transaction, error)
	// Replace swaps in a new classified dataset atomically.
	Replace(transactions []models.Transaction)
	// Loaded reports whether a dataset is available.
	Loaded() bool
}
