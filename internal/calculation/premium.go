package calculation

import (
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
)

// RateTable holds per-1000-sum-assured base rates keyed by product type and
// gender, plus the multiplicative age and term loadings. It is an explicit
// configuration struct so tests (and future rate revisions) can substitute
// deterministic fixtures.
type RateTable struct {
	BaseRates map[domain.ProductType]GenderRates

	// Fallback for product types absent from BaseRates.
	DefaultRates GenderRates

	// Loading per year of age above the reference age (flat below it).
	ReferenceAge int
	AgeStep      decimal.Decimal

	// Loading per policy year above the reference term (flat below it).
	ReferenceTerm int
	TermStep      decimal.Decimal
}

// GenderRates is a pair of base rates per 1000 sum assured.
type GenderRates struct {
	Male   decimal.Decimal
	Female decimal.Decimal
}

// DefaultRateTable returns the standard rate table. The numbers are a
// closed-form actuarial approximation; the contract is reproducibility of
// the formula, not market pricing accuracy.
func DefaultRateTable() *RateTable {
	return &RateTable{
		BaseRates: map[domain.ProductType]GenderRates{
			domain.ProductTermLife:  {Male: decimal.NewFromFloat(1.2), Female: decimal.NewFromFloat(0.9)},
			domain.ProductEndowment: {Male: decimal.NewFromFloat(45.0), Female: decimal.NewFromFloat(42.0)},
			domain.ProductULIP:      {Male: decimal.NewFromFloat(12.0), Female: decimal.NewFromFloat(11.0)},
		},
		DefaultRates:  GenderRates{Male: decimal.NewFromFloat(1.0), Female: decimal.NewFromFloat(0.8)},
		ReferenceAge:  25,
		AgeStep:       decimal.NewFromFloat(0.05),
		ReferenceTerm: 10,
		TermStep:      decimal.NewFromFloat(0.02),
	}
}

// baseRate resolves the per-1000 rate for a product type and gender. Genders
// other than female use the male column as the baseline.
func (rt *RateTable) baseRate(productType domain.ProductType, gender domain.Gender) decimal.Decimal {
	rates, ok := rt.BaseRates[productType]
	if !ok {
		rates = rt.DefaultRates
	}
	if gender == domain.GenderFemale {
		return rates.Female
	}
	return rates.Male
}

// PremiumEstimator maps (age, gender, sum assured, term, product type) to an
// estimated annual premium using a rate table with age and term loadings.
type PremiumEstimator struct {
	Rates *RateTable
}

// NewPremiumEstimator creates an estimator backed by the default rate table.
func NewPremiumEstimator() *PremiumEstimator {
	return &PremiumEstimator{Rates: DefaultRateTable()}
}

// NewPremiumEstimatorWithRates creates an estimator with an explicit table.
func NewPremiumEstimatorWithRates(rates *RateTable) *PremiumEstimator {
	return &PremiumEstimator{Rates: rates}
}

// Estimate computes the annual premium:
//
//	premium = sumAssured/1000 * baseRate * ageFactor * termFactor
//
// ageFactor and termFactor are 1 at or below the reference points and grow
// linearly above them, so the estimate is monotonically non-decreasing in
// age, term and sum assured.
func (pe *PremiumEstimator) Estimate(age int, gender domain.Gender, sumAssured decimal.Decimal, policyTerm int, productType domain.ProductType) decimal.Decimal {
	base := pe.Rates.baseRate(productType, gender)

	ageFactor := decimalOne
	if age > pe.Rates.ReferenceAge {
		ageFactor = decimalOne.Add(decimal.NewFromInt(int64(age - pe.Rates.ReferenceAge)).Mul(pe.Rates.AgeStep))
	}

	termFactor := decimalOne
	if policyTerm > pe.Rates.ReferenceTerm {
		termFactor = decimalOne.Add(decimal.NewFromInt(int64(policyTerm - pe.Rates.ReferenceTerm)).Mul(pe.Rates.TermStep))
	}

	return sumAssured.Div(decimalThousand).Mul(base).Mul(ageFactor).Mul(termFactor).Round(2)
}

// RatePer1000 derives the effective premium rate per 1000 sum assured from a
// computed premium, rounded to 2 places.
func RatePer1000(premium, sumAssured decimal.Decimal) decimal.Decimal {
	if sumAssured.IsZero() {
		return decimal.Zero
	}
	return premium.Div(sumAssured).Mul(decimalThousand).Round(2)
}
