// Package ingest loads transaction and MCC reference datasets from CSV
// files. It is the only place in the service that touches the filesystem;
// everything downstream works on in-memory snapshots.
package ingest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

// Transaction column aliases accepted in input files.
var (
	txCodeAliases = []string{"merchant_category_code", "mcc_code", "mcc", "mcc_cd"}
	dateLayouts   = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "02.01.2006"}
)

// Loader reads CSV datasets with a single-entry cache per input kind. The
// cache is keyed by file identity (path, size, mtime) and replaced whenever
// a file with a different identity is supplied.
type Loader struct {
	mu sync.Mutex

	txKey    string
	txCached []models.Transaction

	refKey    string
	refCached *models.ReferenceTable
}

// NewLoader creates a dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTransactions parses a transactions CSV. Results are cached until a
// file with a different identity is loaded.
func (l *Loader) LoadTransactions(path string) ([]models.Transaction, error) {
	key, err := fileIdentity(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if key == l.txKey && l.txCached != nil {
		slog.Debug("transactions served from cache", "path", path)
		return l.txCached, nil
	}

	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	transactions, err := parseTransactions(records)
	if err != nil {
		return nil, err
	}

	l.txKey = key
	l.txCached = transactions

	slog.Info("transactions loaded",
		"path", path,
		"count", len(transactions))

	return transactions, nil
}

// LoadReference parses an MCC reference CSV into a raw table. Header
// resolution is deferred to the classifier.
func (l *Loader) LoadReference(path string) (*models.ReferenceTable, error) {
	key, err := fileIdentity(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if key == l.refKey && l.refCached != nil {
		slog.Debug("MCC reference served from cache", "path", path)
		return l.refCached, nil
	}

	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reference file %s is empty", path)
	}

	ref := &models.ReferenceTable{
		Columns: records[0],
		Rows:    records[1:],
	}

	l.refKey = key
	l.refCached = ref

	slog.Info("MCC reference loaded",
		"path", path,
		"rows", len(ref.Rows))

	return ref, nil
}

// FilterByDate returns the transactions whose date falls inside the
// inclusive [from, to] window. A zero bound is open on that side.
func FilterByDate(transactions []models.Transaction, from, to time.Time) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Date.After(to) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

func fileIdentity(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()), nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func parseTransactions(records [][]string) ([]models.Transaction, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("transactions file is empty")
	}

	header := records[0]
	idx := func(names ...string) int {
		for _, name := range names {
			for i, col := range header {
				if strings.EqualFold(strings.TrimSpace(col), name) {
					return i
				}
			}
		}
		return -1
	}

	userIdx := idx("user_id")
	amountIdx := idx("amount")
	categoryIdx := idx("category")
	codeIdx := idx(txCodeAliases...)
	dateIdx := idx("date")
	statusIdx := idx("status")

	if userIdx < 0 || amountIdx < 0 || dateIdx < 0 {
		return nil, fmt.Errorf("transactions file must contain user_id, amount and date columns")
	}

	transactions := make([]models.Transaction, 0, len(records)-1)
	for n, row := range records[1:] {
		tx, err := parseTransactionRow(row, userIdx, amountIdx, categoryIdx, codeIdx, dateIdx, statusIdx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func parseTransactionRow(row []string, userIdx, amountIdx, categoryIdx, codeIdx, dateIdx, statusIdx int) (models.Transaction, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var tx models.Transaction

	userID, err := strconv.ParseInt(cell(userIdx), 10, 64)
	if err != nil {
		return tx, fmt.Errorf("invalid user_id %q", cell(userIdx))
	}
	tx.UserID = userID

	tx.Amount, err = decimal.NewFromString(cell(amountIdx))
	if err != nil {
		return tx, fmt.Errorf("invalid amount %q", cell(amountIdx))
	}

	tx.Category = cell(categoryIdx)
	tx.MCCCode = cell(codeIdx)

	tx.Date, err = parseDate(cell(dateIdx))
	if err != nil {
		return tx, err
	}

	if status := strings.ToLower(cell(statusIdx)); status != "" {
		if status == string(models.StatusGreen) {
			tx.Status = models.StatusGreen
		} else {
			tx.Status = models.StatusNotGreen
		}
	}

	if err := tx.Validate(); err != nil {
		return tx, err
	}

	return tx, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}
