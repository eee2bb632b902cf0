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

const topUsersCount = 5

type DashboardHandler struct {
	repo            repositories.DatasetRepositoryInterface
	scoring         services.ScoringServiceInterface
	trend           services.TrendServiceInterface
	metrics         services.MetricsRecorderInterface
	activeThreshold float64
	targetScore     float64
}

func NewDashboardHandler(
	repo repositories.DatasetRepositoryInterface,
	scoring services.ScoringServiceInterface,
	trend services.TrendServiceInterface,
	metrics services.MetricsRecorderInterface,
	activeThreshold, targetScore float64,
) *DashboardHandler {
	return &DashboardHandler{
		repo:            repo,
		scoring:         scoring,
		trend:           trend,
		metrics:         metrics,
		activeThreshold: activeThreshold,
		targetScore:     targetScore,
	}
}

// DashboardResponse is the fleet-wide KPI payload for the main dashboard.
type DashboardResponse struct {
	AverageGreenScore  *float64                `json:"average_greenscore"`
	ActiveClientsRatio float64                 `json:"active_clients_ratio"`
	TotalEcoPoints     decimal.Decimal         `json:"total_eco_points"`
	TargetProgress     *float64                `json:"target_progress"`
	StatusBreakdown    models.StatusBreakdown  `json:"status_breakdown"`
	TopGreenCategories []models.CategoryAmount `json:"top_green_categories"`
	TopGreenUsers      []TopGreenUser          `json:"top_green_users"`
	GeneratedAt        time.Time               `json:"generated_at"`
}

// TopGreenUser is one row of the top-users leaderboard.
type TopGreenUser struct {
	UserID          int64   `json:"user_id"`
	GreenPercentage float64 `json:"green_percentage"`
}

// GetDashboard returns the fleet-wide KPIs.
//
// Method: GET /api/v1/dashboard
//
// Query parameters:
//   - from, to: optional ISO dates restricting the analyzed window
//   - limit: leaderboard and category list length, default 5
//
// average_greenscore and target_progress are null when the window contains
// no users; active_clients_ratio is 0 in that case. The asymmetry is
// intentional and mirrors how the dashboard presents the two figures.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	start := time.Now()

	dataset, err := h.snapshot(c)
	if err != nil {
		return h.handleDatasetError(c, err)
	}

	average := h.scoring.AverageGreenScore(dataset)
	limit := getIntParam(c, "limit", topUsersCount)

	response := DashboardResponse{
		AverageGreenScore:  nanToNil(average),
		ActiveClientsRatio: h.scoring.ActiveClientsRatio(dataset, h.activeThreshold),
		TotalEcoPoints:     h.scoring.TotalEcoPoints(dataset),
		TargetProgress:     nanToNil(h.scoring.TargetProgress(average, h.targetScore)),
		StatusBreakdown:    h.scoring.StatusBreakdown(dataset),
		TopGreenCategories: h.scoring.TopCategories(dataset, models.StatusGreen, limit),
		TopGreenUsers:      h.topGreenUsers(dataset, limit),
		GeneratedAt:        time.Now().UTC(),
	}

	h.metrics.RecordQuery("dashboard", time.Since(start))

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// GetTrend returns the fleet-wide green-percentage trend.
//
// Method: GET /api/v1/trend
//
// Query parameters:
//   - granularity: day (default), week or month
//   - from, to: optional ISO dates restricting the analyzed window
func (h *DashboardHandler) GetTrend(c echo.Context) error {
	start := time.Now()

	granularity, err := parseGranularity(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidGranularity)
	}

	dataset, err := h.snapshot(c)
	if err != nil {
		return h.handleDatasetError(c, err)
	}

	points := h.trend.Trend(dataset, granularity)

	h.metrics.RecordQuery("trend", time.Since(start))

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: points,
		Meta: map[string]string{"granularity": string(granularity)},
	})
}

func (h *DashboardHandler) snapshot(c echo.Context) ([]models.Transaction, error) {
	return datasetWindow(c, h.repo)
}

func (h *DashboardHandler) handleDatasetError(c echo.Context, err error) error {
	return sendDatasetError(c, err)
}

func (h *DashboardHandler) topGreenUsers(dataset []models.Transaction, limit int) []TopGreenUser {
	top := make([]TopGreenUser, 0, limit)
	for _, userID := range h.scoring.TopGreenUsers(dataset, limit) {
		top = append(top, TopGreenUser{
			UserID:          userID,
			GreenPercentage: h.scoring.ClientGreenScore(dataset, userID),
		})
	}
	return top
}
