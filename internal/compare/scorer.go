// Package compare scores and ranks candidate products for a customer
// profile, independent of any stored recommendations.
package compare

import (
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
)

// ScoringConfig holds the weights and thresholds of the recommendation
// score. The defaults produce a soft 0-20 range: up to 10 from the insurer
// rating, up to 5 from the claim settlement ratio, up to 3 from premium
// affordability and up to 2 from the age/risk affinity rules.
type ScoringConfig struct {
	RatingWeight     decimal.Decimal
	ClaimRatioWeight decimal.Decimal

	// Premium-to-income thresholds, best first.
	AffordabilityTiers []AffordabilityTier

	YoungAgeLimit  int // affinity rules for age below this
	MiddleAgeLimit int // reduced affinity up to this; none at or above

	YoungAffinityBonus   decimal.Decimal
	MiddleEndowmentBonus decimal.Decimal
	MiddleTermLifeBonus  decimal.Decimal
}

// AffordabilityTier awards Bonus when premium/income is below Ratio.
type AffordabilityTier struct {
	Ratio decimal.Decimal
	Bonus decimal.Decimal
}

// DefaultScoringConfig returns the standard weights.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		RatingWeight:     decimal.NewFromInt(2),
		ClaimRatioWeight: decimal.NewFromInt(5),
		AffordabilityTiers: []AffordabilityTier{
			{Ratio: decimal.NewFromFloat(0.05), Bonus: decimal.NewFromInt(3)},
			{Ratio: decimal.NewFromFloat(0.10), Bonus: decimal.NewFromInt(2)},
			{Ratio: decimal.NewFromFloat(0.15), Bonus: decimal.NewFromInt(1)},
		},
		YoungAgeLimit:        35,
		MiddleAgeLimit:       50,
		YoungAffinityBonus:   decimal.NewFromInt(2),
		MiddleEndowmentBonus: decimal.NewFromFloat(1.5),
		MiddleTermLifeBonus:  decimal.NewFromInt(1),
	}
}

// Scorer computes recommendation scores.
type Scorer struct {
	Config *ScoringConfig
}

// NewScorer creates a scorer with the default weights.
func NewScorer() *Scorer {
	return &Scorer{Config: DefaultScoringConfig()}
}

// Score rates a product for a customer given its computed premium. Rounded
// to 2 places.
//
// There is deliberately no affinity branch for age >= MiddleAgeLimit: older
// customers receive no product-type bonus regardless of risk appetite.
func (s *Scorer) Score(product *domain.Product, premium decimal.Decimal, profile *domain.CustomerProfile) decimal.Decimal {
	cfg := s.Config

	score := product.Insurer.Rating.Mul(cfg.RatingWeight)
	score = score.Add(product.Insurer.ClaimSettlementRatio.Div(decimalHundred).Mul(cfg.ClaimRatioWeight))

	if profile.AnnualIncome.IsPositive() {
		ratio := premium.Div(profile.AnnualIncome)
		for _, tier := range cfg.AffordabilityTiers {
			if ratio.LessThan(tier.Ratio) {
				score = score.Add(tier.Bonus)
				break
			}
		}
	}

	score = score.Add(s.affinityBonus(product.ProductType, profile))

	return score.Round(2)
}

func (s *Scorer) affinityBonus(productType domain.ProductType, profile *domain.CustomerProfile) decimal.Decimal {
	cfg := s.Config
	switch {
	case profile.Age < cfg.YoungAgeLimit:
		if productType == domain.ProductULIP && (profile.RiskAppetite == domain.RiskHigh || profile.RiskAppetite == domain.RiskMedium) {
			return cfg.YoungAffinityBonus
		}
		if productType == domain.ProductTermLife && profile.RiskAppetite == domain.RiskLow {
			return cfg.YoungAffinityBonus
		}
	case profile.Age < cfg.MiddleAgeLimit:
		if productType == domain.ProductEndowment {
			return cfg.MiddleEndowmentBonus
		}
		if productType == domain.ProductTermLife {
			return cfg.MiddleTermLifeBonus
		}
	}
	return decimal.Zero
}
