package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/gulnaramus-data/greenfintech/internal/errors"
	"github.com/gulnaramus-data/greenfintech/internal/repositories"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	repo repositories.DatasetRepositoryInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(repo repositories.DatasetRepositoryInterface) *HealthCheckHandler {
	return &HealthCheckHandler{repo: repo}
}

// HealthCheck reports service liveness and whether a dataset is available
// to serve analytics queries.
//
// Method: GET /health
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	if !h.repo.Loaded() {
		traceID := getTraceID(c)
		errorResponse := apierrors.NewErrorResponse(
			apierrors.SystemServiceUnavailable,
			traceID,
			apierrors.WithDetails("No dataset loaded"),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
