package domain

import (
	"github.com/shopspring/decimal"
)

// InvestmentGrowth holds the outcome of a lump-sum projection with inflation
// and flat-tax adjustments. RealReturnRate is a percentage.
type InvestmentGrowth struct {
	NominalValue           decimal.Decimal `json:"nominal_value"`
	InflationAdjustedValue decimal.Decimal `json:"inflation_adjusted_value"`
	AfterTaxValue          decimal.Decimal `json:"after_tax_value"`
	RealReturnRate         decimal.Decimal `json:"real_return_rate"`
	InflationImpact        decimal.Decimal `json:"inflation_impact"`
}

// SIPGrowth holds the outcome of a SIP or step-up SIP projection.
//
// InflationAdjustedValue compounds the total invested amount (not the future
// value) at the real rate. The asymmetry comes from the upstream model and is
// kept for behavioural compatibility.
type SIPGrowth struct {
	TotalInvestment        decimal.Decimal `json:"total_investment"`
	NominalValue           decimal.Decimal `json:"nominal_value"`
	InflationAdjustedValue decimal.Decimal `json:"inflation_adjusted_value"`
	RealReturnRate         decimal.Decimal `json:"real_return_rate"`
	InflationImpact        decimal.Decimal `json:"inflation_impact"`
}

// YearRecord is one row of a year-by-year growth breakdown.
type YearRecord struct {
	Year                   int             `json:"year"`
	Investment             decimal.Decimal `json:"investment"`
	NominalValue           decimal.Decimal `json:"nominal_value"`
	InflationAdjustedValue decimal.Decimal `json:"inflation_adjusted_value"`
	RealGrowth             decimal.Decimal `json:"real_growth"`
}
