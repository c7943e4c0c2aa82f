package calculation

import (
	"time"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
)

// Needs-model policy constants: twelve months of income as the replacement
// buffer, and 70% income replacement per dependent over a ten-year horizon.
var (
	incomeReplacementMonths = decimal.NewFromInt(12)
	dependentSupportShare   = decimal.NewFromFloat(0.7)
	dependentSupportYears   = decimal.NewFromInt(10)
)

// ComputeNeeds combines income, family and liability inputs into a total
// coverage requirement and the gap against existing coverage. There are no
// error conditions: degenerate inputs simply yield small or zero totals.
// AdditionalCoverageNeeded is clamped at zero, never negative.
func ComputeNeeds(profile *domain.CustomerProfile) domain.NeedsResult {
	incomeReplacement := profile.AnnualIncome.Mul(incomeReplacementMonths)

	familyExpenses := profile.AnnualIncome.
		Mul(dependentSupportShare).
		Mul(decimal.NewFromInt(int64(profile.Dependents))).
		Mul(dependentSupportYears)

	total := incomeReplacement.
		Add(familyExpenses).
		Add(profile.DebtObligations).
		Add(profile.ChildrenEducationNeeds).
		Add(profile.RetirementNeeds).
		Add(profile.EmergencyFundNeeds)

	additional := total.Sub(profile.ExistingCoverage)
	if additional.IsNegative() {
		additional = decimal.Zero
	}

	hlv := HumanLifeValue(profile.AnnualIncome, profile.Age, DefaultRetirementAge, profile.InflationRate, profile.ReturnRate)

	return domain.NeedsResult{
		CustomerID:               profile.ID,
		HumanLifeValue:           hlv,
		IncomeReplacementNeeds:   incomeReplacement.Round(2),
		FamilyExpenses:           familyExpenses.Round(2),
		DebtObligations:          profile.DebtObligations.Round(2),
		ChildrenEducationNeeds:   profile.ChildrenEducationNeeds.Round(2),
		RetirementNeeds:          profile.RetirementNeeds.Round(2),
		EmergencyFundNeeds:       profile.EmergencyFundNeeds.Round(2),
		TotalInsuranceNeeds:      total.Round(2),
		ExistingCoverage:         profile.ExistingCoverage.Round(2),
		AdditionalCoverageNeeded: additional.Round(2),
		AnalysisDate:             time.Now().UTC(),
	}
}
