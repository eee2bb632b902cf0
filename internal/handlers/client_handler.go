package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apierrors "github.com/gulnaramus-data/greenfintech/internal/errors"
	"github.com/gulnaramus-data/greenfintech/internal/models"
	"github.com/gulnaramus-data/greenfintech/internal/repositories"
	"github.com/gulnaramus-data/greenfintech/internal/services"
)

type ClientHandler struct {
	repo            repositories.DatasetRepositoryInterface
	scoring         services.ScoringServiceInterface
	trend           services.TrendServiceInterface
	benefits        services.BenefitsServiceInterface
	recommendations services.RecommendationServiceInterface
	metrics         services.MetricsRecorderInterface
}

func NewClientHandler(
	repo repositories.DatasetRepositoryInterface,
	scoring services.ScoringServiceInterface,
	trend services.TrendServiceInterface,
	benefits services.BenefitsServiceInterface,
	recommendations services.RecommendationServiceInterface,
	metrics services.MetricsRecorderInterface,
) *ClientHandler {
	return &ClientHandler{
		repo:            repo,
		scoring:         scoring,
		trend:           trend,
		benefits:        benefits,
		recommendations: recommendations,
		metrics:         metrics,
	}
}

// ClientProfileResponse is the per-user view the dashboard renders.
type ClientProfileResponse struct {
	UserID                int64                   `json:"user_id"`
	GreenScore            float64                 `json:"greenscore"`
	Rank                  int                     `json:"rank"`
	EcoPoints             decimal.Decimal         `json:"eco_points"`
	FirstActivity         string                  `json:"first_activity"`
	LastActivity          string                  `json:"last_activity"`
	Tier                  models.Tier             `json:"tier"`
	IsTopUser             bool                    `json:"is_top_user"`
	TopGreenCategories    []models.CategoryAmount `json:"top_green_categories"`
	TopNotGreenCategories []models.CategoryAmount `json:"top_not_green_categories"`
	GeneratedAt           time.Time               `json:"generated_at"`
}

// BenefitsResponse lists the unlocked and locked parts of the tier catalog.
type BenefitsResponse struct {
	UserID    int64                  `json:"user_id"`
	Tier      models.Tier            `json:"tier"`
	EcoPoints decimal.Decimal        `json:"eco_points"`
	Unlocked  []models.Benefit       `json:"unlocked"`
	Locked    []models.LockedBenefit `json:"locked"`
}

// ListUsers returns the sorted user IDs present in the dataset.
//
// Method: GET /api/v1/users
func (h *ClientHandler) ListUsers(c echo.Context) error {
	dataset, err := datasetWindow(c, h.repo)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: h.scoring.UniqueUsers(dataset),
	})
}

// GetProfile returns the per-user score card.
//
// Method: GET /api/v1/users/:id/profile
//
// Query parameters:
//   - from, to: optional ISO dates restricting the analyzed window
//
// Unknown users are not an error: the profile carries zero score, zero
// points, rank pool+1 and the N/A activity sentinel.
func (h *ClientHandler) GetProfile(c echo.Context) error {
	start := time.Now()

	userID, err := parseUserIDParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	dataset, err := datasetWindow(c, h.repo)
	if err != nil {
		return sendDatasetError(c, err)
	}

	score := h.scoring.ClientGreenScore(dataset, userID)
	first, last := h.scoring.ClientActivityPeriod(dataset, userID)
	isTop := h.isTopUser(dataset, userID)

	response := ClientProfileResponse{
		UserID:                userID,
		GreenScore:            score,
		Rank:                  h.scoring.ClientRanking(dataset, userID),
		EcoPoints:             h.scoring.ClientEcoPoints(dataset, userID),
		FirstActivity:         first,
		LastActivity:          last,
		Tier:                  h.benefits.Tier(score, isTop),
		IsTopUser:             isTop,
		TopGreenCategories:    h.scoring.ClientTopCategories(dataset, userID, models.StatusGreen, topUsersCount),
		TopNotGreenCategories: h.scoring.ClientTopCategories(dataset, userID, models.StatusNotGreen, topUsersCount),
		GeneratedAt:           time.Now().UTC(),
	}

	h.metrics.RecordQuery("client_profile", time.Since(start))

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// GetBenefits returns the user's tier catalog split by redeemability.
//
// Method: GET /api/v1/users/:id/benefits
func (h *ClientHandler) GetBenefits(c echo.Context) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	dataset, err := datasetWindow(c, h.repo)
	if err != nil {
		return sendDatasetError(c, err)
	}

	score := h.scoring.ClientGreenScore(dataset, userID)
	points := h.scoring.ClientEcoPoints(dataset, userID)

	tier, unlocked, locked := h.benefits.Benefits(score, points, h.isTopUser(dataset, userID))

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: BenefitsResponse{
			UserID:    userID,
			Tier:      tier,
			EcoPoints: points,
			Unlocked:  unlocked,
			Locked:    locked,
		},
	})
}

// GetRecommendations returns the ordered suggestion list for a user.
//
// Method: GET /api/v1/users/:id/recommendations
func (h *ClientHandler) GetRecommendations(c echo.Context) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	dataset, err := datasetWindow(c, h.repo)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: h.recommendations.Recommendations(dataset, userID),
	})
}

// GetTrend returns the user's personal green-percentage trend with the
// trailing rolling average.
//
// Method: GET /api/v1/users/:id/trend
//
// Query parameters:
//   - granularity: day (default), week or month
//   - from, to: optional ISO dates restricting the analyzed window
func (h *ClientHandler) GetTrend(c echo.Context) error {
	start := time.Now()

	userID, err := parseUserIDParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	granularity, err := parseGranularity(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidGranularity)
	}

	dataset, err := datasetWindow(c, h.repo)
	if err != nil {
		return sendDatasetError(c, err)
	}

	points := h.trend.UserTrend(dataset, userID, granularity)

	h.metrics.RecordQuery("client_trend", time.Since(start))

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: points,
		Meta: map[string]string{"granularity": string(granularity)},
	})
}

func (h *ClientHandler) isTopUser(dataset []models.Transaction, userID int64) bool {
	for _, id := range h.scoring.TopGreenUsers(dataset, topUsersCount) {
		if id == userID {
			return true
		}
	}
	return false
}
