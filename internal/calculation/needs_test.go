package calculation

import (
	"testing"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testProfile() *domain.CustomerProfile {
	return &domain.CustomerProfile{
		ID:                     7,
		Age:                    30,
		Gender:                 domain.GenderMale,
		AnnualIncome:           d("1200000"),
		FamilySize:             4,
		Dependents:             2,
		ExistingCoverage:       d("1000000"),
		RiskAppetite:           domain.RiskMedium,
		DebtObligations:        d("500000"),
		ChildrenEducationNeeds: d("1000000"),
		RetirementNeeds:        d("2000000"),
		EmergencyFundNeeds:     d("300000"),
		InflationRate:          d("6"),
		ReturnRate:             d("8"),
	}
}

func TestComputeNeeds(t *testing.T) {
	result := ComputeNeeds(testProfile())

	assert.Equal(t, "14400000.00", result.IncomeReplacementNeeds.StringFixed(2), "12 months of income")
	assert.Equal(t, "16800000.00", result.FamilyExpenses.StringFixed(2), "0.7 x income x 2 dependents x 10 years")
	assert.Equal(t, "35000000.00", result.TotalInsuranceNeeds.StringFixed(2))
	assert.Equal(t, "34000000.00", result.AdditionalCoverageNeeded.StringFixed(2))
	assert.Equal(t, int64(7), result.CustomerID)
	assert.False(t, result.HumanLifeValue.IsZero())
}

func TestComputeNeeds_CoverageGapNeverNegative(t *testing.T) {
	profile := testProfile()
	profile.ExistingCoverage = d("99000000")

	result := ComputeNeeds(profile)
	assert.True(t, result.AdditionalCoverageNeeded.IsZero(), "clamped at zero, got %s", result.AdditionalCoverageNeeded)
	assert.Equal(t, "35000000.00", result.TotalInsuranceNeeds.StringFixed(2), "total unaffected by coverage")
}

func TestComputeNeeds_GapIdentity(t *testing.T) {
	for _, coverage := range []string{"0", "1000000", "35000000", "35000000.01", "50000000"} {
		profile := testProfile()
		profile.ExistingCoverage = d(coverage)
		result := ComputeNeeds(profile)

		expected := decimal.Max(decimal.Zero, result.TotalInsuranceNeeds.Sub(result.ExistingCoverage))
		assert.True(t, result.AdditionalCoverageNeeded.Equal(expected),
			"coverage %s: gap %s want %s", coverage, result.AdditionalCoverageNeeded, expected)
	}
}

func TestComputeNeeds_DegenerateInputs(t *testing.T) {
	profile := &domain.CustomerProfile{Age: 25, InflationRate: d("6"), ReturnRate: d("8")}
	result := ComputeNeeds(profile)

	assert.True(t, result.TotalInsuranceNeeds.IsZero())
	assert.True(t, result.AdditionalCoverageNeeded.IsZero())
	assert.True(t, result.FamilyExpenses.IsZero(), "zero dependents yield zero family expenses")
}
