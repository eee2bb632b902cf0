package services

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

const (
	// DefaultActiveThreshold is the green percentage a user needs to count
	// as an active participant of the green program.
	DefaultActiveThreshold = 20.0
	// DefaultTargetGreenScore is the fleet-wide strategic target.
	DefaultTargetGreenScore = 20.0
)

type scoringService struct{}

// NewScoringService creates the per-user and fleet-wide scoring engine.
func NewScoringService() ScoringServiceInterface {
	return &scoringService{}
}

// userAccumulator collects everything scoring needs about one user in a
// single linear pass over the dataset.
type userAccumulator struct {
	userID      int64
	total       int64
	statusTotal int64
	green       int64
	greenAmount decimal.Decimal
	firstDate   time.Time
	lastDate    time.Time
}

// greenPercentage counts every row of the user in the denominator, which
// matches how rows without a resolved status behaved upstream.
func (a *userAccumulator) greenPercentage() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.green) / float64(a.total) * 100
}

// classifiedGreenPercentage only counts rows that carry a status. Used by
// the top-users ranking, which excludes unclassified rows entirely.
func (a *userAccumulator) classifiedGreenPercentage() float64 {
	if a.statusTotal == 0 {
		return 0
	}
	return float64(a.green) / float64(a.statusTotal) * 100
}

// userStats keeps accumulators in first-appearance order. That order is
// load-bearing: ranking ties are broken by it.
type userStats struct {
	order []int64
	byID  map[int64]*userAccumulator
}

func buildUserStats(dataset []models.Transaction) *userStats {
	stats := &userStats{byID: make(map[int64]*userAccumulator)}
	for i := range dataset {
		tx := &dataset[i]
		acc, ok := stats.byID[tx.UserID]
		if !ok {
			acc = &userAccumulator{
				userID:      tx.UserID,
				greenAmount: decimal.Zero,
				firstDate:   tx.Date,
				lastDate:    tx.Date,
			}
			stats.byID[tx.UserID] = acc
			stats.order = append(stats.order, tx.UserID)
		}

		acc.total++
		if tx.IsClassified() {
			acc.statusTotal++
		}
		if tx.IsGreen() {
			acc.green++
			acc.greenAmount = acc.greenAmount.Add(tx.Amount)
		}
		if tx.Date.Before(acc.firstDate) {
			acc.firstDate = tx.Date
		}
		if tx.Date.After(acc.lastDate) {
			acc.lastDate = tx.Date
		}
	}
	return stats
}

// rankedUsers returns accumulators sorted descending by green percentage.
// The sort is stable, so tied users keep their first-appearance order.
func (s *userStats) rankedUsers() []*userAccumulator {
	ranked := make([]*userAccumulator, 0, len(s.order))
	for _, id := range s.order {
		ranked = append(ranked, s.byID[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].greenPercentage() > ranked[j].greenPercentage()
	})
	return ranked
}

func (s *scoringService) AverageGreenScore(dataset []models.Transaction) float64 {
	stats := buildUserStats(dataset)
	if len(stats.order) == 0 {
		// Undefined, not zero. Callers must treat NaN distinctly.
		return math.NaN()
	}

	sum := 0.0
	for _, id := range stats.order {
		sum += stats.byID[id].greenPercentage()
	}
	return sum / float64(len(stats.order))
}

func (s *scoringService) ActiveClientsRatio(dataset []models.Transaction, threshold float64) float64 {
	stats := buildUserStats(dataset)
	if len(stats.order) == 0 {
		return 0
	}

	active := 0
	for _, id := range stats.order {
		if stats.byID[id].greenPercentage() >= threshold {
			active++
		}
	}
	return float64(active) / float64(len(stats.order)) * 100
}

func (s *scoringService) TotalEcoPoints(dataset []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range dataset {
		if dataset[i].IsGreen() {
			total = total.Add(dataset[i].Amount)
		}
	}
	return total
}

func (s *scoringService) TargetProgress(current, target float64) float64 {
	progress := current / target * 100
	if progress > 100 {
		return 100
	}
	// NaN falls through unchanged so an undefined score stays undefined.
	return progress
}

func (s *scoringService) ClientGreenScore(dataset []models.Transaction, userID int64) float64 {
	stats := buildUserStats(dataset)
	acc, ok := stats.byID[userID]
	if !ok {
		return 0
	}
	return acc.greenPercentage()
}

func (s *scoringService) ClientRanking(dataset []models.Transaction, userID int64) int {
	stats := buildUserStats(dataset)
	ranked := stats.rankedUsers()
	for i, acc := range ranked {
		if acc.userID == userID {
			return i + 1
		}
	}
	return len(ranked) + 1
}

func (s *scoringService) ClientEcoPoints(dataset []models.Transaction, userID int64) decimal.Decimal {
	stats := buildUserStats(dataset)
	acc, ok := stats.byID[userID]
	if !ok {
		return decimal.Zero
	}
	return acc.greenAmount
}

func (s *scoringService) ClientActivityPeriod(dataset []models.Transaction, userID int64) (string, string) {
	stats := buildUserStats(dataset)
	acc, ok := stats.byID[userID]
	if !ok {
		return models.ActivityDateUnknown, models.ActivityDateUnknown
	}
	return acc.firstDate.Format("2006-01-02"), acc.lastDate.Format("2006-01-02")
}

func (s *scoringService) TopGreenUsers(dataset []models.Transaction, n int) []int64 {
	stats := buildUserStats(dataset)

	// Users whose rows all lack a status never enter the pool; they are
	// excluded rather than scored as 0%.
	pool := make([]*userAccumulator, 0, len(stats.order))
	for _, id := range stats.order {
		if acc := stats.byID[id]; acc.statusTotal > 0 {
			pool = append(pool, acc)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].classifiedGreenPercentage() > pool[j].classifiedGreenPercentage()
	})

	if n > len(pool) {
		n = len(pool)
	}
	top := make([]int64, 0, n)
	for _, acc := range pool[:n] {
		top = append(top, acc.userID)
	}
	return top
}

func (s *scoringService) UniqueUsers(dataset []models.Transaction) []int64 {
	stats := buildUserStats(dataset)
	users := make([]int64, len(stats.order))
	copy(users, stats.order)
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

func (s *scoringService) StatusBreakdown(dataset []models.Transaction) models.StatusBreakdown {
	var breakdown models.StatusBreakdown
	for i := range dataset {
		switch dataset[i].Status {
		case models.StatusGreen:
			breakdown.Green++
		case models.StatusNotGreen:
			breakdown.NotGreen++
		}
	}
	return breakdown
}

func (s *scoringService) TopCategories(dataset []models.Transaction, status models.GreenStatus, n int) []models.CategoryAmount {
	return topCategories(dataset, nil, status, n)
}

func (s *scoringService) ClientTopCategories(dataset []models.Transaction, userID int64, status models.GreenStatus, n int) []models.CategoryAmount {
	return topCategories(dataset, &userID, status, n)
}

func topCategories(dataset []models.Transaction, userID *int64, status models.GreenStatus, n int) []models.CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for i := range dataset {
		tx := &dataset[i]
		if tx.Status != status {
			continue
		}
		if userID != nil && tx.UserID != *userID {
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	ranked := make([]models.CategoryAmount, 0, len(order))
	for _, category := range order {
		ranked = append(ranked, models.CategoryAmount{Category: category, Amount: sums[category]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
