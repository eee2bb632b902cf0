package services

import (
	"github.com/shopspring/decimal"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

// Tier thresholds, evaluated top-down.
const (
	ecoLeaderScore         = 25.0
	activeParticipantScore = 15.0
	developingHabitsScore  = 5.0
)

type benefitsService struct {
	catalogs map[models.Tier][]models.Benefit
}

// NewBenefitsService creates the tiering and benefits engine.
func NewBenefitsService() BenefitsServiceInterface {
	return &benefitsService{catalogs: benefitCatalogs()}
}

// benefitCatalogs declares one catalog per tier. The four lists are
// intentionally independent: they share a zero-cost pattern but not a
// literal subset relationship, so they stay separate tables.
func benefitCatalogs() map[models.Tier][]models.Benefit {
	b := func(name string, cost int64) models.Benefit {
		return models.Benefit{Name: name, Cost: decimal.NewFromInt(cost)}
	}

	return map[models.Tier][]models.Benefit{
		models.TierEcoLeader: {
			b("10% cashback boost in green categories", 10000),
			b("Annual public transport pass discount", 50000),
			b("Electric car sharing weekend package", 100000),
			b("Reusable tableware starter kit", 5000),
			b("Tree planted in your name", 2000),
			b("Priority support line", 0),
			b("Partner eco-store coupon", 1000),
			b("Eco-Leader profile badge", 0),
			b("Early access to new green products", 0),
			b("Invitations to sustainability events", 0),
		},
		models.TierActiveParticipant: {
			b("Reusable tableware starter kit", 5000),
			b("Tree planted in your name", 2000),
			b("Active participant profile badge", 0),
			b("Partner eco-store coupon", 1000),
			b("Monthly green spending report", 0),
			b("Access to eco-partner offers", 0),
			b("Invitations to sustainability events", 0),
		},
		models.TierDevelopingHabits: {
			b("Partner eco-store coupon", 1000),
			b("Green habits starter guide", 0),
			b("Monthly green spending report", 0),
			b("Developing habits profile badge", 0),
		},
		models.TierNewcomer: {
			b("Welcome green starter guide", 0),
			b("Monthly green spending report", 0),
		},
	}
}

func (s *benefitsService) Tier(score float64, isTopUser bool) models.Tier {
	switch {
	case isTopUser || score >= ecoLeaderScore:
		return models.TierEcoLeader
	case score >= activeParticipantScore:
		return models.TierActiveParticipant
	case score >= developingHabitsScore:
		return models.TierDevelopingHabits
	default:
		return models.TierNewcomer
	}
}

func (s *benefitsService) Benefits(score float64, ecoPoints decimal.Decimal, isTopUser bool) (models.Tier, []models.Benefit, []models.LockedBenefit) {
	tier := s.Tier(score, isTopUser)
	catalog := s.catalogs[tier]

	unlocked := make([]models.Benefit, 0, len(catalog))
	locked := make([]models.LockedBenefit, 0)
	for _, benefit := range catalog {
		if ecoPoints.GreaterThanOrEqual(benefit.Cost) {
			unlocked = append(unlocked, benefit)
			continue
		}
		locked = append(locked, models.LockedBenefit{
			Benefit:      benefit,
			PointsNeeded: benefit.Cost.Sub(ecoPoints),
		})
	}

	return tier, unlocked, locked
}
