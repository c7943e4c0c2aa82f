package compare

import (
	"fmt"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/recommend"
	"github.com/shopspring/decimal"
)

// Narrative thresholds.
var (
	claimRatioCallout   = decimal.NewFromInt(95)
	premiumSpreadNotice = decimal.NewFromInt(50000)
)

// GenerateRecommendations derives rule-based narrative strings from a scored,
// score-descending comparison set: the top pick, the cheapest pick, a
// claim-ratio leader above 95%, a premium-spread warning, and age-based
// product-type guidance. The output is deterministic template text.
func GenerateRecommendations(results []domain.ComparisonResult, profile *domain.CustomerProfile) []string {
	recommendations := []string{}
	if len(results) == 0 {
		return recommendations
	}

	best := results[0]
	recommendations = append(recommendations, fmt.Sprintf(
		"%s from %s is our top recommendation with a score of %s/20",
		best.ProductName, best.InsurerName, best.RecommendationScore.StringFixed(2)))

	cheapest := results[0]
	for _, r := range results[1:] {
		if r.PremiumAmount.LessThan(cheapest.PremiumAmount) {
			cheapest = r
		}
	}
	if cheapest.ProductID != best.ProductID {
		recommendations = append(recommendations, fmt.Sprintf(
			"%s offers the lowest premium at ₹%s annually",
			cheapest.ProductName, recommend.FormatAmount(cheapest.PremiumAmount)))
	}

	bestClaim := results[0]
	for _, r := range results[1:] {
		if r.ClaimSettlementRatio.GreaterThan(bestClaim.ClaimSettlementRatio) {
			bestClaim = r
		}
	}
	if bestClaim.ClaimSettlementRatio.GreaterThan(claimRatioCallout) {
		recommendations = append(recommendations, fmt.Sprintf(
			"%s has the highest claim settlement ratio at %s%%",
			bestClaim.ProductName, bestClaim.ClaimSettlementRatio.String()))
	}

	maxPremium := results[0].PremiumAmount
	minPremium := results[0].PremiumAmount
	for _, r := range results[1:] {
		if r.PremiumAmount.GreaterThan(maxPremium) {
			maxPremium = r.PremiumAmount
		}
		if r.PremiumAmount.LessThan(minPremium) {
			minPremium = r.PremiumAmount
		}
	}
	if spread := maxPremium.Sub(minPremium); spread.GreaterThan(premiumSpreadNotice) {
		recommendations = append(recommendations, fmt.Sprintf(
			"Premium difference between products is ₹%s - consider your budget carefully",
			recommend.FormatAmount(spread)))
	}

	switch {
	case profile.Age < 35:
		recommendations = append(recommendations, "For your age, consider ULIP products for potential higher returns")
	case profile.Age > 50:
		recommendations = append(recommendations, "For your age, term life or endowment policies may be more suitable")
	}

	return recommendations
}
