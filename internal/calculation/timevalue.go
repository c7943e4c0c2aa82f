// Package calculation implements the financial-modeling core: time value of
// money, insurance needs analysis and premium estimation. All functions are
// pure; money values use decimals and are rounded to 2 places once, at the
// end of each computation.
package calculation

import (
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne      = decimal.NewFromInt(1)
	decimalTwelve   = decimal.NewFromInt(12)
	decimalHundred  = decimal.NewFromInt(100)
	decimalThousand = decimal.NewFromInt(1000)
)

// DefaultRetirementAge is the working-life horizon used by HumanLifeValue
// when the caller does not supply one.
const DefaultRetirementAge = 60

// FlatCapitalGainsTax is the flat tax applied to nominal gains in
// InflationAdjustedReturns. A policy constant, not a tax-law simulation.
var FlatCapitalGainsTax = decimal.NewFromFloat(0.10)

// HumanLifeValue computes the present value of the customer's future income
// stream up to retirementAge. Each year's income grows with inflation and is
// discounted at the return rate. Rates are percentages (6.0 means 6%).
// Returns zero when age >= retirementAge.
func HumanLifeValue(annualIncome decimal.Decimal, age, retirementAge int, inflationRate, returnRate decimal.Decimal) decimal.Decimal {
	years := retirementAge - age
	if years <= 0 {
		return decimal.Zero
	}

	growth := decimalOne.Add(inflationRate.Div(decimalHundred))
	discount := decimalOne.Add(returnRate.Div(decimalHundred))

	hlv := decimal.Zero
	for year := 1; year <= years; year++ {
		y := decimal.NewFromInt(int64(year))
		futureIncome := annualIncome.Mul(growth.Pow(y))
		hlv = hlv.Add(futureIncome.Div(discount.Pow(y)))
	}
	return hlv.Round(2)
}

// InflationAdjustedReturns projects a lump-sum principal over the given
// number of years. The real rate is ((1+return)/(1+inflation))-1; the
// inflation-adjusted value compounds the principal at that real rate. The
// after-tax value subtracts FlatCapitalGainsTax on nominal gains.
func InflationAdjustedReturns(principal, returnRate, inflationRate decimal.Decimal, years int) domain.InvestmentGrowth {
	y := decimal.NewFromInt(int64(years))

	r := returnRate.Div(decimalHundred)
	i := inflationRate.Div(decimalHundred)

	nominal := principal.Mul(decimalOne.Add(r).Pow(y))
	realRate := decimalOne.Add(r).Div(decimalOne.Add(i)).Sub(decimalOne)
	realValue := principal.Mul(decimalOne.Add(realRate).Pow(y))

	gains := nominal.Sub(principal)
	afterTax := nominal.Sub(gains.Mul(FlatCapitalGainsTax))

	return domain.InvestmentGrowth{
		NominalValue:           nominal.Round(2),
		InflationAdjustedValue: realValue.Round(2),
		AfterTaxValue:          afterTax.Round(2),
		RealReturnRate:         realRate.Mul(decimalHundred).Round(2),
		InflationImpact:        nominal.Sub(realValue).Round(2),
	}
}

// SIPReturns computes the future value of a fixed monthly contribution as an
// ordinary annuity at the monthly rate returnRate/12/100. When returnRate is
// zero the annuity formula degenerates to the linear limit FV = contribution
// times months.
//
// The inflation-adjusted value compounds the total invested amount (not the
// future value) at the real annual rate; see domain.SIPGrowth.
func SIPReturns(monthlyContribution, returnRate, inflationRate decimal.Decimal, years int) domain.SIPGrowth {
	months := years * 12
	totalInvestment := monthlyContribution.Mul(decimal.NewFromInt(int64(months)))

	var nominal decimal.Decimal
	if returnRate.IsZero() {
		nominal = totalInvestment
	} else {
		monthlyRate := returnRate.Div(decimalTwelve).Div(decimalHundred)
		nominal = monthlyContribution.Mul(annuityFactor(monthlyRate, months))
	}

	realRate := realReturnRate(returnRate, inflationRate)
	inflationAdjusted := totalInvestment.Mul(decimalOne.Add(realRate).Pow(decimal.NewFromInt(int64(years))))

	return domain.SIPGrowth{
		TotalInvestment:        totalInvestment.Round(2),
		NominalValue:           nominal.Round(2),
		InflationAdjustedValue: inflationAdjusted.Round(2),
		RealReturnRate:         realRate.Mul(decimalHundred).Round(2),
		InflationImpact:        nominal.Sub(inflationAdjusted).Round(2),
	}
}

// StepUpSIPReturns computes SIP returns where the contribution grows by
// stepUpRate percent each year. Each year's (annual) contribution accrues at
// the monthly rate for the months remaining to the horizon, using the same
// annuity formula as SIPReturns; the inflation adjustment mirrors SIPReturns.
func StepUpSIPReturns(initialMonthly, returnRate, inflationRate decimal.Decimal, years int, stepUpRate decimal.Decimal) domain.SIPGrowth {
	stepFactor := decimalOne.Add(stepUpRate.Div(decimalHundred))

	var monthlyRate decimal.Decimal
	if !returnRate.IsZero() {
		monthlyRate = returnRate.Div(decimalTwelve).Div(decimalHundred)
	}

	totalInvestment := decimal.Zero
	nominal := decimal.Zero
	for year := 0; year < years; year++ {
		yearlyContribution := initialMonthly.Mul(decimalTwelve).Mul(stepFactor.Pow(decimal.NewFromInt(int64(year))))
		totalInvestment = totalInvestment.Add(yearlyContribution)

		monthsRemaining := (years - year) * 12
		if returnRate.IsZero() {
			nominal = nominal.Add(yearlyContribution.Mul(decimal.NewFromInt(int64(monthsRemaining))))
		} else {
			nominal = nominal.Add(yearlyContribution.Mul(annuityFactor(monthlyRate, monthsRemaining)))
		}
	}

	realRate := realReturnRate(returnRate, inflationRate)
	inflationAdjusted := totalInvestment.Mul(decimalOne.Add(realRate).Pow(decimal.NewFromInt(int64(years))))

	return domain.SIPGrowth{
		TotalInvestment:        totalInvestment.Round(2),
		NominalValue:           nominal.Round(2),
		InflationAdjustedValue: inflationAdjusted.Round(2),
		RealReturnRate:         realRate.Mul(decimalHundred).Round(2),
		InflationImpact:        nominal.Sub(inflationAdjusted).Round(2),
	}
}

// YearlyBreakdown produces the year-by-year growth of an initial investment
// plus monthly contributions. Each year adds twelve contributions, grows the
// running value at the return rate, then discounts by (1+inflation)^year for
// the inflation-adjusted figure. State carries forward; records are ordered
// by year ascending.
func YearlyBreakdown(initialInvestment, monthlyContribution, returnRate, inflationRate decimal.Decimal, years int) []domain.YearRecord {
	growth := decimalOne.Add(returnRate.Div(decimalHundred))
	inflationGrowth := decimalOne.Add(inflationRate.Div(decimalHundred))
	yearlyContribution := monthlyContribution.Mul(decimalTwelve)

	records := make([]domain.YearRecord, 0, years)
	current := initialInvestment
	for year := 1; year <= years; year++ {
		current = current.Add(yearlyContribution).Mul(growth)

		y := decimal.NewFromInt(int64(year))
		inflationAdjusted := current.Div(inflationGrowth.Pow(y))
		invested := initialInvestment.Add(yearlyContribution.Mul(y))

		records = append(records, domain.YearRecord{
			Year:                   year,
			Investment:             invested.Round(2),
			NominalValue:           current.Round(2),
			InflationAdjustedValue: inflationAdjusted.Round(2),
			RealGrowth:             inflationAdjusted.Sub(invested).Round(2),
		})
	}
	return records
}

// annuityFactor is ((1+r)^n - 1) / r for a monthly rate r and n months.
// Callers must special-case r == 0.
func annuityFactor(monthlyRate decimal.Decimal, months int) decimal.Decimal {
	return decimalOne.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months))).Sub(decimalOne).Div(monthlyRate)
}

// realReturnRate is ((1+return)/(1+inflation)) - 1, with rates as percents.
func realReturnRate(returnRate, inflationRate decimal.Decimal) decimal.Decimal {
	r := returnRate.Div(decimalHundred)
	i := inflationRate.Div(decimalHundred)
	return decimalOne.Add(r).Div(decimalOne.Add(i)).Sub(decimalOne)
}
