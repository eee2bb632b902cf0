package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gulnaramus-data/greenfintech/internal/models"
	"github.com/gulnaramus-data/greenfintech/internal/repositories"
	"github.com/gulnaramus-data/greenfintech/internal/services"
)

// noopMetrics satisfies the metrics recorder without touching the global
// Prometheus registry, which rejects duplicate collector registration
// across test suites.
type noopMetrics struct{}

func (noopMetrics) RecordClassification(time.Duration, int, int) {}
func (noopMetrics) RecordDatasetSize(int, int)                   {}
func (noopMetrics) RecordQuery(string, time.Duration)            {}

func fixtureTx(userID int64, status models.GreenStatus, category string, amount float64, date string) models.Transaction {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		UserID:   userID,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Status:   status,
		Date:     parsed,
	}
}

// fixtureDataset builds a small classified dataset with a known shape:
// user 1 scores 50%, user 2 scores 100%, user 3 scores 0%.
func fixtureDataset() []models.Transaction {
	return []models.Transaction{
		fixtureTx(1, models.StatusGreen, "Public transport", 100, "2023-06-01"),
		fixtureTx(1, models.StatusNotGreen, "Gas station", 50, "2023-06-05"),
		fixtureTx(2, models.StatusGreen, "Farmers market", 200, "2023-06-02"),
		fixtureTx(2, models.StatusGreen, "Public transport", 30, "2023-07-01"),
		fixtureTx(3, models.StatusNotGreen, "Coffee shop", 20, "2023-06-03"),
	}
}

type DashboardHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	repo    repositories.DatasetRepositoryInterface
	handler *DashboardHandler
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.repo = repositories.NewDatasetRepository()

	scoring := services.NewScoringService()
	s.handler = NewDashboardHandler(
		s.repo,
		scoring,
		services.NewTrendService(),
		noopMetrics{},
		services.DefaultActiveThreshold,
		services.DefaultTargetGreenScore,
	)
}

func (s *DashboardHandlerTestSuite) request(target string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, s.echo.NewContext(req, rec)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard() {
	s.repo.Replace(fixtureDataset())

	rec, c := s.request("/api/v1/dashboard")
	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data DashboardResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	s.Require().NotNil(response.Data.AverageGreenScore)
	s.InDelta(50.0, *response.Data.AverageGreenScore, 1e-9)
	// Users 1 and 2 clear the 20% activity threshold.
	s.InDelta(200.0/3.0, response.Data.ActiveClientsRatio, 0.01)
	s.True(response.Data.TotalEcoPoints.Equal(decimal.NewFromInt(330)))
	s.Require().NotNil(response.Data.TargetProgress)
	s.InDelta(100.0, *response.Data.TargetProgress, 1e-9)
	s.Equal(int64(3), response.Data.StatusBreakdown.Green)
	s.Equal(int64(2), response.Data.StatusBreakdown.NotGreen)
	s.NotEmpty(response.Data.TopGreenCategories)
	s.Equal("Farmers market", response.Data.TopGreenCategories[0].Category)

	s.Require().NotEmpty(response.Data.TopGreenUsers)
	s.Equal(int64(2), response.Data.TopGreenUsers[0].UserID)
	s.InDelta(100.0, response.Data.TopGreenUsers[0].GreenPercentage, 1e-9)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_LimitParam() {
	s.repo.Replace(fixtureDataset())

	rec, c := s.request("/api/v1/dashboard?limit=1")
	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data DashboardResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Data.TopGreenUsers, 1)
	s.Len(response.Data.TopGreenCategories, 1)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_EmptyWindowNullsAverage() {
	s.repo.Replace(fixtureDataset())

	// A window past every transaction leaves no users.
	rec, c := s.request("/api/v1/dashboard?from=2024-01-01")
	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data DashboardResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	s.Nil(response.Data.AverageGreenScore)
	s.Nil(response.Data.TargetProgress)
	s.Zero(response.Data.ActiveClientsRatio)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_DateWindow() {
	s.repo.Replace(fixtureDataset())

	// June only: the July transaction for user 2 is excluded.
	rec, c := s.request("/api/v1/dashboard?from=2023-06-01&to=2023-06-30")
	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data DashboardResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Data.TotalEcoPoints.Equal(decimal.NewFromInt(300)))
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_NoDataset() {
	rec, c := s.request("/api/v1/dashboard")
	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("DATASET_001", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_InvalidDate() {
	s.repo.Replace(fixtureDataset())

	rec, c := s.request("/api/v1/dashboard?from=June")
	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_005", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetTrend() {
	s.repo.Replace(fixtureDataset())

	rec, c := s.request("/api/v1/trend?granularity=month")
	s.Require().NoError(s.handler.GetTrend(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data []models.TrendPoint `json:"data"`
		Meta map[string]string   `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("month", response.Meta["granularity"])
	s.Require().Len(response.Data, 2)
	s.InDelta(50.0, response.Data[0].GreenPercentage, 1e-9)
	s.InDelta(100.0, response.Data[1].GreenPercentage, 1e-9)
}

func (s *DashboardHandlerTestSuite) TestGetTrend_DefaultGranularity() {
	s.repo.Replace(fixtureDataset())

	rec, c := s.request("/api/v1/trend")
	s.Require().NoError(s.handler.GetTrend(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Meta map[string]string `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("day", response.Meta["granularity"])
}

func (s *DashboardHandlerTestSuite) TestGetTrend_InvalidGranularity() {
	s.repo.Replace(fixtureDataset())

	rec, c := s.request("/api/v1/trend?granularity=year")
	s.Require().NoError(s.handler.GetTrend(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_006", response.Error.Code)
}
