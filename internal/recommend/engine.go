// Package recommend turns a customer's needs analysis and the product
// catalogue into a deduplicated, prioritized, explained recommendation set.
package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/coverwise/coverwise/internal/calculation"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPolicyTerm is the policy and premium-paying term assigned to every
// generated recommendation.
const DefaultPolicyTerm = 20

// DefaultPremiumFrequency is the billing cadence on generated recommendations.
const DefaultPremiumFrequency = "yearly"

// Engine generates recommendations. It is pure: the caller supplies the
// catalogue snapshot and the set of product ids already recommended for the
// customer, and persists the output through an atomic insert-if-absent on
// (customer_id, product_id) to keep the idempotency guarantee under
// concurrent generation.
type Engine struct {
	Estimator *calculation.PremiumEstimator
}

// NewEngine creates a recommendation engine backed by the default rate table.
func NewEngine() *Engine {
	return &Engine{Estimator: calculation.NewPremiumEstimator()}
}

// Generate produces one recommendation per eligible catalogue product that is
// not already present in existingProductIDs. Eligibility requires the product
// to be active and the customer's age to fall inside its entry window.
//
// Sum assured is the additional coverage needed capped at the product
// maximum; when no additional coverage is needed the product minimum is used.
// Priority is high for term life and medium otherwise.
func (e *Engine) Generate(
	customerID int64,
	profile *domain.CustomerProfile,
	needs *domain.NeedsResult,
	catalogue []domain.Product,
	existingProductIDs map[int64]struct{},
) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(catalogue))
	seen := make(map[int64]struct{}, len(existingProductIDs))
	for id := range existingProductIDs {
		seen[id] = struct{}{}
	}

	now := time.Now().UTC()
	for i := range catalogue {
		product := &catalogue[i]
		if !product.EligibleAt(profile.Age) {
			continue
		}
		if _, ok := seen[product.ID]; ok {
			continue
		}
		seen[product.ID] = struct{}{}

		sumAssured := product.MinSumAssured
		if needs.AdditionalCoverageNeeded.IsPositive() {
			sumAssured = decimal.Min(needs.AdditionalCoverageNeeded, product.MaxSumAssured)
		}

		premium := e.Estimator.Estimate(profile.Age, profile.Gender, sumAssured, DefaultPolicyTerm, product.ProductType)

		priority := domain.PriorityMedium
		if product.ProductType == domain.ProductTermLife {
			priority = domain.PriorityHigh
		}

		recs = append(recs, domain.Recommendation{
			CustomerID:        customerID,
			ProductID:         product.ID,
			SumAssured:        sumAssured,
			PremiumAmount:     premium,
			PolicyTerm:        DefaultPolicyTerm,
			PremiumPayingTerm: DefaultPolicyTerm,
			PremiumFrequency:  DefaultPremiumFrequency,
			Priority:          priority,
			Reasoning:         reasoning(product, profile, sumAssured, premium),
			CreatedAt:         now,
		})
	}
	return recs
}

// reasoning renders the human-readable justification attached to a
// recommendation.
func reasoning(product *domain.Product, profile *domain.CustomerProfile, sumAssured, premium decimal.Decimal) string {
	return fmt.Sprintf(
		"Recommended %s from %s based on your age (%d), income (₹%s), and family size (%d). This provides ₹%s coverage at ₹%s annual premium.",
		product.Name,
		product.Insurer.Name,
		profile.Age,
		FormatAmount(profile.AnnualIncome),
		profile.FamilySize,
		FormatAmount(sumAssured),
		FormatAmount(premium),
	)
}

// FormatAmount renders a decimal as a whole-rupee figure with thousands
// separators, e.g. 1250000 -> "1,250,000".
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
