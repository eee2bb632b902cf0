// Package services implements the GreenScore analytics core: scoring,
// trend aggregation, tiering/benefits and recommendations. Every service
// is stateless and recomputes its result from the dataset snapshot it is
// handed, so calls are idempotent and safe to run concurrently.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

type ScoringServiceInterface interface {
	// AverageGreenScore returns the arithmetic mean of per-user green
	// percentages, each user weighted equally. NaN when there are no users.
	AverageGreenScore(dataset []models.Transaction) float64
	// ActiveClientsRatio returns the percentage of users whose green
	// percentage meets the threshold. 0 when there are no users.
	ActiveClientsRatio(dataset []models.Transaction, threshold float64) float64
	// TotalEcoPoints sums the amounts of all green transactions.
	TotalEcoPoints(dataset []models.Transaction) decimal.Decimal
	// TargetProgress returns min(current/target*100, 100). NaN propagates.
	TargetProgress(current, target float64) float64
	ClientGreenScore(dataset []models.Transaction, userID int64) float64
	ClientRanking(dataset []models.Transaction, userID int64) int
	ClientEcoPoints(dataset []models.Transaction, userID int64) decimal.Decimal
	ClientActivityPeriod(dataset []models.Transaction, userID int64) (string, string)
	TopGreenUsers(dataset []models.Transaction, n int) []int64
	UniqueUsers(dataset []models.Transaction) []int64
	StatusBreakdown(dataset []models.Transaction) models.StatusBreakdown
	TopCategories(dataset []models.Transaction, status models.GreenStatus, n int) []models.CategoryAmount
	ClientTopCategories(dataset []models.Transaction, userID int64, status models.GreenStatus, n int) []models.CategoryAmount
}

type TrendServiceInterface interface {
	// Trend buckets the dataset by granularity and returns the fleet-wide
	// green-percentage series in ascending period order.
	Trend(dataset []models.Transaction, granularity models.Granularity) []models.TrendPoint
	// UserTrend is Trend restricted to one user, with a trailing rolling
	// average of the green percentage added to each point.
	UserTrend(dataset []models.Transaction, userID int64, granularity models.Granularity) []models.UserTrendPoint
}

type BenefitsServiceInterface interface {
	// Tier classifies a score into a status tier. isTopUser forces the
	// highest tier regardless of score.
	Tier(score float64, isTopUser bool) models.Tier
	// Benefits returns the tier plus the unlocked and locked portions of
	// its catalog for the given eco-point balance.
	Benefits(score float64, ecoPoints decimal.Decimal, isTopUser bool) (models.Tier, []models.Benefit, []models.LockedBenefit)
}

type RecommendationServiceInterface interface {
	// Recommendations returns the ordered suggestion list for a user.
	Recommendations(dataset []models.Transaction, userID int64) []string
}

type DemoGeneratorInterface interface {
	// Transactions produces a deterministic demo transaction set for the
	// given seed, spread over the date range.
	Transactions(users, perUser int, from, to time.Time) []models.Transaction
	// Reference produces the matching MCC reference table.
	Reference() *models.ReferenceTable
}

type MetricsRecorderInterface interface {
	RecordClassification(duration time.Duration, total, unmatched int)
	RecordDatasetSize(transactions int, users int)
	RecordQuery(endpoint string, duration time.Duration)
}
