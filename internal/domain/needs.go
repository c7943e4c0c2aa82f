package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NeedsResult is the outcome of a needs analysis: each component of the
// coverage requirement, the total, and the gap against existing coverage.
// AdditionalCoverageNeeded is never negative.
type NeedsResult struct {
	ID                       int64           `json:"id,omitempty"`
	CustomerID               int64           `json:"customer_id"`
	HumanLifeValue           decimal.Decimal `json:"human_life_value"`
	IncomeReplacementNeeds   decimal.Decimal `json:"income_replacement_needs"`
	FamilyExpenses           decimal.Decimal `json:"family_expenses"`
	DebtObligations          decimal.Decimal `json:"debt_obligations"`
	ChildrenEducationNeeds   decimal.Decimal `json:"children_education_needs"`
	RetirementNeeds          decimal.Decimal `json:"retirement_needs"`
	EmergencyFundNeeds       decimal.Decimal `json:"emergency_fund_needs"`
	TotalInsuranceNeeds      decimal.Decimal `json:"total_insurance_needs"`
	ExistingCoverage         decimal.Decimal `json:"existing_coverage"`
	AdditionalCoverageNeeded decimal.Decimal `json:"additional_coverage_needed"`
	AnalysisDate             time.Time       `json:"analysis_date"`
}
