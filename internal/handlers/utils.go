package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/gulnaramus-data/greenfintech/internal/errors"
	"github.com/gulnaramus-data/greenfintech/internal/ingest"
	"github.com/gulnaramus-data/greenfintech/internal/models"
	"github.com/gulnaramus-data/greenfintech/internal/repositories"
)

var errInvalidDateRange = errors.New("invalid date range")

// datasetWindow returns the current dataset snapshot restricted to the
// from/to window requested in the query string.
func datasetWindow(c echo.Context, repo repositories.DatasetRepositoryInterface) ([]models.Transaction, error) {
	from, to, err := parseDateRange(c)
	if err != nil {
		return nil, errInvalidDateRange
	}

	dataset, err := repo.Snapshot()
	if err != nil {
		return nil, err
	}

	if from.IsZero() && to.IsZero() {
		return dataset, nil
	}
	return ingest.FilterByDate(dataset, from, to), nil
}

// sendDatasetError translates snapshot errors into API error responses.
func sendDatasetError(c echo.Context, err error) error {
	if errors.Is(err, errInvalidDateRange) {
		return SendError(c, apierrors.ValidationInvalidDate)
	}
	if errors.Is(err, repositories.ErrDatasetNotLoaded) {
		return SendError(c, apierrors.DatasetNotLoaded)
	}
	return SendSystemError(c, err)
}

const dateLayout = "2006-01-02"

// parseUserIDParam reads the :id path parameter as a user ID.
func parseUserIDParam(c echo.Context) (int64, error) {
	raw := c.Param("id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return userID, nil
}

// parseDateRange reads the optional from/to query parameters. A zero time
// means the bound is open. The to bound is extended to the end of its day
// so a date-only upper bound is inclusive.
func parseDateRange(c echo.Context) (time.Time, time.Time, error) {
	var from, to time.Time

	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q", raw)
		}
		from = parsed
	}

	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q", raw)
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, fmt.Errorf("to date precedes from date")
	}

	return from, to, nil
}

// parseGranularity reads the granularity query parameter, defaulting to day.
func parseGranularity(c echo.Context) (models.Granularity, error) {
	raw := c.QueryParam("granularity")
	if raw == "" {
		return models.GranularityDay, nil
	}
	return models.ParseGranularity(raw)
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// nanToNil converts an undefined (NaN) metric to nil so it serializes as
// JSON null instead of failing to marshal. Callers distinguish "no users"
// from a genuine zero this way.
func nanToNil(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}
