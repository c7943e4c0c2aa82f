package compare

import (
	"sort"
	"time"

	"github.com/coverwise/coverwise/internal/calculation"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// Engine orchestrates product comparison: premium per product for the given
// profile, recommendation score, summary statistics and narrative strings.
type Engine struct {
	Estimator *calculation.PremiumEstimator
	Scorer    *Scorer
}

// NewEngine creates a comparison engine with default rates and weights.
func NewEngine() *Engine {
	return &Engine{
		Estimator: calculation.NewPremiumEstimator(),
		Scorer:    NewScorer(),
	}
}

// CompareProducts scores the given products for the profile at a common sum
// assured and policy term. Products unknown to the caller's catalogue simply
// do not appear in the input; the engine never rejects ids. Results are
// ordered by score descending, stable by input order on ties.
func (e *Engine) CompareProducts(products []domain.Product, profile *domain.CustomerProfile, sumAssured decimal.Decimal, policyTerm int) *domain.ProductComparison {
	results := make([]domain.ComparisonResult, 0, len(products))
	for i := range products {
		product := &products[i]
		premium := e.Estimator.Estimate(profile.Age, profile.Gender, sumAssured, policyTerm, product.ProductType)

		results = append(results, domain.ComparisonResult{
			ProductID:            product.ID,
			ProductName:          product.Name,
			InsurerName:          product.Insurer.Name,
			ProductType:          product.ProductType,
			PremiumAmount:        premium,
			PremiumRatePer1000:   calculation.RatePer1000(premium, sumAssured),
			Features:             product.Features,
			Benefits:             product.Benefits,
			Exclusions:           product.Exclusions,
			Rating:               product.Insurer.Rating,
			ClaimSettlementRatio: product.Insurer.ClaimSettlementRatio,
			RecommendationScore:  e.Scorer.Score(product, premium, profile),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RecommendationScore.GreaterThan(results[j].RecommendationScore)
	})

	return &domain.ProductComparison{
		Results:         results,
		Summary:         summarize(results),
		Recommendations: GenerateRecommendations(results, profile),
		GeneratedAt:     time.Now().UTC(),
	}
}

func summarize(results []domain.ComparisonResult) domain.ComparisonSummary {
	if len(results) == 0 {
		return domain.ComparisonSummary{}
	}

	total := decimal.Zero
	minPremium := results[0].PremiumAmount
	maxPremium := results[0].PremiumAmount
	cheapest := results[0]
	for _, r := range results {
		total = total.Add(r.PremiumAmount)
		if r.PremiumAmount.LessThan(minPremium) {
			minPremium = r.PremiumAmount
			cheapest = r
		}
		if r.PremiumAmount.GreaterThan(maxPremium) {
			maxPremium = r.PremiumAmount
		}
	}

	return domain.ComparisonSummary{
		TotalProducts:        len(results),
		TotalPremium:         total.Round(2),
		AveragePremium:       total.Div(decimal.NewFromInt(int64(len(results)))).Round(2),
		MinPremium:           minPremium,
		MaxPremium:           maxPremium,
		PremiumRange:         maxPremium.Sub(minPremium),
		BestValueProduct:     results[0].ProductName,
		LowestPremiumProduct: cheapest.ProductName,
	}
}
