package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Granularity selects the time bucket used by trend aggregation.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

var ErrInvalidGranularity = errors.New("granularity must be one of day, week, month")

// ParseGranularity maps a query-parameter value to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", ErrInvalidGranularity
}

// TrendPoint is one bucket of the green-percentage trend series.
type TrendPoint struct {
	PeriodStart     time.Time       `json:"period_start"`
	GreenPercentage float64         `json:"green_percentage"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// UserTrendPoint extends TrendPoint with the trailing rolling average used
// for a single user's personal trend chart.
type UserTrendPoint struct {
	TrendPoint
	RollingAverage float64 `json:"rolling_average"`
}
