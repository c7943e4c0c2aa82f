package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestHumanLifeValue_GoldenValues(t *testing.T) {
	hlv := HumanLifeValue(d("1000000"), 30, 60, d("6"), d("8"))
	assert.Equal(t, "22749039.89", hlv.StringFixed(2), "30-year horizon at 6/8")

	hlv = HumanLifeValue(d("800000"), 45, 60, d("6"), d("8"))
	assert.Equal(t, "10367008.15", hlv.StringFixed(2), "15-year horizon at 6/8")
}

func TestHumanLifeValue_ZeroAtRetirementAge(t *testing.T) {
	assert.True(t, HumanLifeValue(d("1000000"), 60, 60, d("6"), d("8")).IsZero())
	assert.True(t, HumanLifeValue(d("1000000"), 65, 60, d("6"), d("8")).IsZero(), "past retirement")
}

func TestHumanLifeValue_SingleYear(t *testing.T) {
	// One year to retirement: income*1.06/1.08.
	hlv := HumanLifeValue(d("1000000"), 59, 60, d("6"), d("8"))
	assert.Equal(t, "981481.48", hlv.StringFixed(2))
}

func TestInflationAdjustedReturns_GoldenValues(t *testing.T) {
	result := InflationAdjustedReturns(d("100000"), d("8"), d("6"), 20)

	assert.Equal(t, "466095.71", result.NominalValue.StringFixed(2))
	assert.Equal(t, "145330.85", result.InflationAdjustedValue.StringFixed(2))
	assert.Equal(t, "429486.14", result.AfterTaxValue.StringFixed(2))
	assert.Equal(t, "1.89", result.RealReturnRate.StringFixed(2), "((1.08/1.06)-1) as percent")
	assert.Equal(t, "320764.87", result.InflationImpact.StringFixed(2))
}

func TestInflationAdjustedReturns_Identities(t *testing.T) {
	result := InflationAdjustedReturns(d("250000"), d("10"), d("5"), 15)

	// After-tax value keeps 90% of gains.
	gains := result.NominalValue.Sub(d("250000"))
	expectedAfterTax := result.NominalValue.Sub(gains.Mul(d("0.10")))
	assert.True(t, result.AfterTaxValue.Sub(expectedAfterTax).Abs().LessThan(d("0.02")),
		"after-tax %s vs %s", result.AfterTaxValue, expectedAfterTax)

	// Impact is the nominal/real gap.
	gap := result.NominalValue.Sub(result.InflationAdjustedValue)
	assert.True(t, result.InflationImpact.Sub(gap).Abs().LessThan(d("0.02")))
}

func TestSIPReturns_GoldenValues(t *testing.T) {
	result := SIPReturns(d("10000"), d("8"), d("6"), 20)

	assert.Equal(t, "2400000.00", result.TotalInvestment.StringFixed(2), "10000 x 240 months")
	assert.Equal(t, "5890204.16", result.NominalValue.StringFixed(2))
	assert.Equal(t, "3487940.33", result.InflationAdjustedValue.StringFixed(2))
	assert.Equal(t, "1.89", result.RealReturnRate.StringFixed(2))
	assert.Equal(t, "2402263.83", result.InflationImpact.StringFixed(2))
}

func TestSIPReturns_ZeroReturnRateIsLinear(t *testing.T) {
	result := SIPReturns(d("5000"), d("0"), d("6"), 10)

	assert.Equal(t, "600000.00", result.TotalInvestment.StringFixed(2))
	assert.Equal(t, "600000.00", result.NominalValue.StringFixed(2), "FV degenerates to contribution x months")
	assert.Equal(t, "335036.87", result.InflationAdjustedValue.StringFixed(2))
	assert.Equal(t, "-5.66", result.RealReturnRate.StringFixed(2), "negative real rate under inflation")
}

func TestSIPReturns_MatchesMonthByMonthAccumulation(t *testing.T) {
	// The closed-form annuity must agree with iterating the months.
	monthly := d("10000")
	monthlyRate := d("8").Div(decimalTwelve).Div(decimalHundred)

	value := decimal.Zero
	for m := 0; m < 240; m++ {
		value = value.Mul(decimalOne.Add(monthlyRate)).Add(monthly)
	}

	result := SIPReturns(monthly, d("8"), d("6"), 20)
	assert.True(t, result.NominalValue.Sub(value.Round(2)).Abs().LessThan(d("0.02")),
		"closed form %s vs iterative %s", result.NominalValue, value.Round(2))
}

func TestStepUpSIPReturns_GoldenValues(t *testing.T) {
	result := StepUpSIPReturns(d("10000"), d("8"), d("6"), 10, d("10"))

	assert.Equal(t, "1912490.95", result.TotalInvestment.StringFixed(2))
	assert.Equal(t, "142098939.41", result.NominalValue.StringFixed(2))
	assert.Equal(t, "2305569.89", result.InflationAdjustedValue.StringFixed(2))
	assert.Equal(t, "1.89", result.RealReturnRate.StringFixed(2))
}

func TestStepUpSIPReturns_ZeroStepUpKeepsContributionFlat(t *testing.T) {
	result := StepUpSIPReturns(d("10000"), d("8"), d("6"), 10, d("0"))
	assert.Equal(t, "1200000.00", result.TotalInvestment.StringFixed(2), "120 flat contributions")
}

func TestStepUpSIPReturns_ZeroReturnRate(t *testing.T) {
	result := StepUpSIPReturns(d("1000"), d("0"), d("0"), 2, d("10"))

	// Year 0: 12000 over 24 months, year 1: 13200 over 12 months.
	assert.Equal(t, "25200.00", result.TotalInvestment.StringFixed(2))
	assert.Equal(t, "446400.00", result.NominalValue.StringFixed(2), "12000*24 + 13200*12")
}

func TestYearlyBreakdown_GoldenValues(t *testing.T) {
	records := YearlyBreakdown(d("100000"), d("10000"), d("8"), d("6"), 5)
	require.Len(t, records, 5)

	first := records[0]
	assert.Equal(t, 1, first.Year)
	assert.Equal(t, "220000.00", first.Investment.StringFixed(2))
	assert.Equal(t, "237600.00", first.NominalValue.StringFixed(2))
	assert.Equal(t, "224150.94", first.InflationAdjustedValue.StringFixed(2))
	assert.Equal(t, "4150.94", first.RealGrowth.StringFixed(2))

	last := records[4]
	assert.Equal(t, 5, last.Year)
	assert.Equal(t, "700000.00", last.Investment.StringFixed(2))
	assert.Equal(t, "907244.29", last.NominalValue.StringFixed(2))
	assert.Equal(t, "677945.71", last.InflationAdjustedValue.StringFixed(2))
	assert.Equal(t, "-22054.29", last.RealGrowth.StringFixed(2))
}

func TestYearlyBreakdown_InvestmentRoundTrip(t *testing.T) {
	initial := d("50000")
	monthly := d("7500")
	years := 12
	records := YearlyBreakdown(initial, monthly, d("9"), d("5"), years)
	require.Len(t, records, years)

	// The investment figure for year N equals initial plus the sum of the
	// per-year contributions through year N.
	contributed := decimal.Zero
	yearly := monthly.Mul(decimalTwelve)
	for i, rec := range records {
		contributed = contributed.Add(yearly)
		assert.Equal(t, i+1, rec.Year, "ordered ascending")
		assert.True(t, rec.Investment.Equal(initial.Add(contributed).Round(2)),
			"year %d investment %s", rec.Year, rec.Investment)
	}
}

func TestYearlyBreakdown_StateCarriesForward(t *testing.T) {
	records := YearlyBreakdown(d("0"), d("1000"), d("10"), d("0"), 3)
	require.Len(t, records, 3)

	// year 1: 12000*1.1 = 13200; year 2: (13200+12000)*1.1 = 27720
	assert.Equal(t, "13200.00", records[0].NominalValue.StringFixed(2))
	assert.Equal(t, "27720.00", records[1].NominalValue.StringFixed(2))
	assert.Equal(t, "43692.00", records[2].NominalValue.StringFixed(2))
}
