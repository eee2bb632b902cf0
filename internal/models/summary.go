package models

import "github.com/shopspring/decimal"

// ActivityDateUnknown is the sentinel reported when a user has no
// transactions in the analyzed window.
const ActivityDateUnknown = "N/A"

// CategoryAmount is a category with its summed transaction amount, used
// for top-category breakdowns.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// StatusBreakdown counts classified transactions by status fleet-wide.
type StatusBreakdown struct {
	Green    int64 `json:"green"`
	NotGreen int64 `json:"not_green"`
}
