package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gulnaramus-data/greenfintech/internal/classification"
	"github.com/gulnaramus-data/greenfintech/internal/ingest"
	"github.com/gulnaramus-data/greenfintech/internal/models"
	"github.com/gulnaramus-data/greenfintech/internal/repositories"
)

// DatasetServiceInterface loads, classifies and installs dataset snapshots.
type DatasetServiceInterface interface {
	// LoadFromFiles reads the transactions and MCC reference CSVs,
	// classifies and installs the result as the current snapshot.
	LoadFromFiles(transactionsPath, referencePath string) error
	// LoadDemo generates, classifies and installs a demo dataset.
	LoadDemo(users, perUser int, from, to time.Time) error
}

type datasetService struct {
	loader    *ingest.Loader
	generator DemoGeneratorInterface
	scoring   ScoringServiceInterface
	repo      repositories.DatasetRepositoryInterface
	metrics   MetricsRecorderInterface
}

// NewDatasetService creates the dataset lifecycle orchestrator.
func NewDatasetService(
	loader *ingest.Loader,
	generator DemoGeneratorInterface,
	scoring ScoringServiceInterface,
	repo repositories.DatasetRepositoryInterface,
	metrics MetricsRecorderInterface,
) DatasetServiceInterface {
	return &datasetService{
		loader:    loader,
		generator: generator,
		scoring:   scoring,
		repo:      repo,
		metrics:   metrics,
	}
}

func (s *datasetService) LoadFromFiles(transactionsPath, referencePath string) error {
	transactions, err := s.loader.LoadTransactions(transactionsPath)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	reference, err := s.loader.LoadReference(referencePath)
	if err != nil {
		return fmt.Errorf("load MCC reference: %w", err)
	}

	return s.install(transactions, reference)
}

func (s *datasetService) LoadDemo(users, perUser int, from, to time.Time) error {
	transactions := s.generator.Transactions(users, perUser, from, to)
	reference := s.generator.Reference()

	slog.Info("demo dataset generated",
		"users", users,
		"transactions", len(transactions))

	return s.install(transactions, reference)
}

func (s *datasetService) install(transactions []models.Transaction, reference *models.ReferenceTable) error {
	start := time.Now()
	classified, stats, err := classification.ClassifyDetailed(transactions, reference)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	s.repo.Replace(classified)

	s.metrics.RecordClassification(time.Since(start), stats.Total, stats.Unmatched)
	s.metrics.RecordDatasetSize(len(classified), len(s.scoring.UniqueUsers(classified)))

	return nil
}
