// Package models defines the core domain types shared across the service.
package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// GreenStatus marks a transaction as sustainable or not. The zero value
// means the transaction has not been classified yet.
type GreenStatus string

const (
	StatusGreen    GreenStatus = "green"
	StatusNotGreen GreenStatus = "not green"
)

var (
	ErrInvalidUserID  = errors.New("user id must be positive")
	ErrNegativeAmount = errors.New("transaction amount must not be negative")
	ErrMissingDate    = errors.New("transaction date is required")
)

// Transaction represents a single card transaction. Status is populated
// exactly once by the classifier and is read-only afterwards.
type Transaction struct {
	UserID   int64           `json:"user_id" validate:"required,gt=0"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	MCCCode  string          `json:"mcc_code"`
	Date     time.Time       `json:"date" validate:"required"`
	Status   GreenStatus     `json:"status,omitempty"`
}

// IsClassified reports whether the transaction carries a resolved status.
func (t *Transaction) IsClassified() bool {
	return t.Status == StatusGreen || t.Status == StatusNotGreen
}

// IsGreen reports whether the transaction is classified green.
func (t *Transaction) IsGreen() bool {
	return t.Status == StatusGreen
}

// Validate checks the presence constraints on a raw transaction record.
func (t *Transaction) Validate() error {
	if t.UserID <= 0 {
		return ErrInvalidUserID
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
