// Package classification joins raw transactions to the MCC reference table
// to resolve each transaction's green status.
package classification

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

// SchemaError indicates the reference table is unusable: no merchant
// category code column could be resolved under any known alias.
type SchemaError struct {
	Missing string
	Tried   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("reference data has no %s column (tried: %s)",
		e.Missing, strings.Join(e.Tried, ", "))
}

// Header aliases accepted in reference data. Status resolution falls back
// to all-NotGreen when nothing matches; code resolution is fatal.
var (
	statusAliases = []string{"status", "green_status", "is_green", "color"}
	codeAliases   = []string{"merchant_category_code", "mcc_code", "mcc", "mcc_cd"}
)

// Stats describes one classification run.
type Stats struct {
	Total     int
	Unmatched int
}

// Classify left-joins transactions to the MCC reference and returns a new
// slice in which every transaction carries a resolved status. Input slices
// are never mutated. If the transactions already carry a status the input
// is passed through unchanged, so reclassification is a no-op.
func Classify(transactions []models.Transaction, ref *models.ReferenceTable) ([]models.Transaction, error) {
	classified, _, err := ClassifyDetailed(transactions, ref)
	return classified, err
}

// ClassifyDetailed is Classify plus run statistics for observability.
func ClassifyDetailed(transactions []models.Transaction, ref *models.ReferenceTable) ([]models.Transaction, Stats, error) {
	stats := Stats{Total: len(transactions)}

	if alreadyClassified(transactions) {
		return transactions, stats, nil
	}

	statusByCode, err := buildStatusIndex(ref)
	if err != nil {
		return nil, stats, err
	}

	classified := make([]models.Transaction, len(transactions))
	unmatched := 0
	for i, tx := range transactions {
		classified[i] = tx
		if tx.IsClassified() {
			continue
		}
		status, ok := statusByCode[strings.TrimSpace(tx.MCCCode)]
		if !ok {
			// Unknown codes are not an error: default to not green.
			status = models.StatusNotGreen
			unmatched++
		}
		classified[i].Status = status
	}

	if unmatched > 0 {
		slog.Debug("transactions with unmatched MCC codes defaulted to not green",
			"unmatched", unmatched,
			"total", len(transactions))
	}

	stats.Unmatched = unmatched
	return classified, stats, nil
}

// alreadyClassified reports whether every transaction carries a status.
// A dataset that is only partially classified still goes through the join
// so the remaining rows get resolved.
func alreadyClassified(transactions []models.Transaction) bool {
	if len(transactions) == 0 {
		return false
	}
	for i := range transactions {
		if !transactions[i].IsClassified() {
			return false
		}
	}
	return true
}

// buildStatusIndex resolves the reference table's code and status columns
// under their header aliases and returns a code -> status lookup.
func buildStatusIndex(ref *models.ReferenceTable) (map[string]models.GreenStatus, error) {
	if ref == nil {
		return nil, &SchemaError{Missing: "merchant category code", Tried: codeAliases}
	}

	codeIdx := resolveColumn(ref, codeAliases)
	if codeIdx < 0 {
		return nil, &SchemaError{Missing: "merchant category code", Tried: codeAliases}
	}

	statusIdx := resolveColumn(ref, statusAliases)
	statusCol := ""
	if statusIdx >= 0 {
		statusCol = strings.ToLower(strings.TrimSpace(ref.Columns[statusIdx]))
	}

	index := make(map[string]models.GreenStatus, len(ref.Rows))
	for _, row := range ref.Rows {
		if codeIdx >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[codeIdx])
		if code == "" {
			continue
		}
		if statusIdx < 0 || statusIdx >= len(row) {
			// No usable status column: everything defaults to not green.
			index[code] = models.StatusNotGreen
			continue
		}
		index[code] = parseStatusValue(row[statusIdx], statusCol)
	}

	return index, nil
}

func resolveColumn(ref *models.ReferenceTable, aliases []string) int {
	for _, alias := range aliases {
		for i, col := range ref.Columns {
			if strings.EqualFold(strings.TrimSpace(col), alias) {
				return i
			}
		}
	}
	return -1
}

// parseStatusValue maps a raw cell to a green status. The is_green alias
// carries booleans; every other alias carries the status words directly.
func parseStatusValue(raw, column string) models.GreenStatus {
	value := strings.ToLower(strings.TrimSpace(raw))

	if column == "is_green" {
		switch value {
		case "true", "t", "1", "yes":
			return models.StatusGreen
		default:
			return models.StatusNotGreen
		}
	}

	if value == string(models.StatusGreen) {
		return models.StatusGreen
	}
	return models.StatusNotGreen
}
