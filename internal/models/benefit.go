package models

import "github.com/shopspring/decimal"

// Tier is one of the four ordered status levels gating available benefits.
type Tier string

const (
	TierEcoLeader         Tier = "Eco-Leader"
	TierActiveParticipant Tier = "Active Participant"
	TierDevelopingHabits  Tier = "Developing Habits"
	TierNewcomer          Tier = "Newcomer"
)

// Benefit is a single reward gated by accumulated eco-points.
type Benefit struct {
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// LockedBenefit is a benefit the user cannot redeem yet, with the exact
// point deficit for display.
type LockedBenefit struct {
	Benefit
	PointsNeeded decimal.Decimal `json:"points_needed"`
}
