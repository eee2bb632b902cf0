package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gulnaramus-data/greenfintech/internal/config"
	apierrors "github.com/gulnaramus-data/greenfintech/internal/errors"
	"github.com/gulnaramus-data/greenfintech/internal/services"
)

type DatasetHandler struct {
	dataset services.DatasetServiceInterface
	cfg     config.DataConfig
}

func NewDatasetHandler(dataset services.DatasetServiceInterface, cfg config.DataConfig) *DatasetHandler {
	return &DatasetHandler{dataset: dataset, cfg: cfg}
}

// Reload re-reads the configured data source and swaps in a fresh
// classified snapshot. The ingest cache makes this cheap when the files
// have not changed.
//
// Method: POST /api/v1/dataset/reload
func (h *DatasetHandler) Reload(c echo.Context) error {
	var err error
	if h.cfg.UseDemoData {
		from, to := demoWindow()
		err = h.dataset.LoadDemo(h.cfg.DemoUsers, h.cfg.DemoTransactionsPerUser, from, to)
	} else {
		err = h.dataset.LoadFromFiles(h.cfg.TransactionsPath, h.cfg.ReferencePath)
	}
	if err != nil {
		return SendError(c, apierrors.DatasetLoadFailed, apierrors.WithDetails(err.Error()))
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "dataset reloaded",
	})
}

// demoWindow is the last full year up to today, matching the default
// dashboard date range.
func demoWindow() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.AddDate(-1, 0, 0), now
}
