package services

import (
	"strings"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

// Suggestion texts surfaced to the dashboard. The low-score nudge wording
// is part of the UI contract, keep it stable.
const (
	MsgNoData = "Not enough transaction data to build recommendations yet."

	MsgCafeSuggestion = "You often buy coffee in single-use cups. " +
		"Try cafes with reusable tableware programs — it adds +10 points!"

	MsgFuelSuggestion = "You spend a lot on fuel. Consider public transport " +
		"or car sharing — it can add up to +15 points!"

	MsgGenericEncouragement = "Keep using green services! Every transaction " +
		"in sustainable categories helps the environment."

	MsgLowScoreNudge = "You can raise your GreenScore by choosing more " +
		"sustainable goods and services. Start small — for example, bring " +
		"reusable bags when shopping."
)

// lowScoreThreshold is the green percentage below which the nudge is added.
const lowScoreThreshold = 10.0

// topSpendCategories is how many not-green categories are scanned for a
// pattern match, in descending-spend order.
const topSpendCategories = 3

var (
	cafeKeywords = []string{"cafe", "restaurant", "coffee"}
	fuelKeywords = []string{"auto", "fuel", "gas", "petrol"}
)

type recommendationService struct {
	scoring ScoringServiceInterface
}

// NewRecommendationService creates the personalized suggestion engine.
func NewRecommendationService(scoring ScoringServiceInterface) RecommendationServiceInterface {
	return &recommendationService{scoring: scoring}
}

// Recommendations inspects the user's heaviest not-green spending and emits
// at most one pattern-based suggestion, plus the low-score nudge when the
// user's green percentage is below the threshold.
func (s *recommendationService) Recommendations(dataset []models.Transaction, userID int64) []string {
	if !userHasTransactions(dataset, userID) {
		return []string{MsgNoData}
	}

	recommendations := make([]string, 0, 2)

	topNotGreen := s.scoring.ClientTopCategories(dataset, userID, models.StatusNotGreen, topSpendCategories)
	for _, entry := range topNotGreen {
		category := strings.ToLower(entry.Category)
		if matchesAny(category, cafeKeywords) {
			recommendations = append(recommendations, MsgCafeSuggestion)
			break
		}
		if matchesAny(category, fuelKeywords) {
			recommendations = append(recommendations, MsgFuelSuggestion)
			break
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, MsgGenericEncouragement)
	}

	if s.scoring.ClientGreenScore(dataset, userID) < lowScoreThreshold {
		recommendations = append(recommendations, MsgLowScoreNudge)
	}

	return recommendations
}

func userHasTransactions(dataset []models.Transaction, userID int64) bool {
	for i := range dataset {
		if dataset[i].UserID == userID {
			return true
		}
	}
	return false
}

func matchesAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
