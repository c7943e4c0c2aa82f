// Package domain defines the core types shared by the calculation,
// recommendation and comparison engines and by the storage layer. Monetary
// amounts and percent rates are decimal.Decimal throughout; float64 never
// touches money.
package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Gender selects the rate column used by the premium estimator.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// RiskAppetite drives the age/risk affinity rules in comparison scoring.
type RiskAppetite string

const (
	RiskLow    RiskAppetite = "low"
	RiskMedium RiskAppetite = "medium"
	RiskHigh   RiskAppetite = "high"
)

// Default market assumptions, in percent, applied when a profile omits its
// own rates.
var (
	DefaultInflationRate = decimal.NewFromFloat(6.0)
	DefaultReturnRate    = decimal.NewFromFloat(8.0)
	DefaultStepUpRate    = decimal.NewFromFloat(10.0)
)

// CustomerProfile is the full financial picture of one customer: identity,
// income, family structure, liabilities and planning goals, plus the market
// assumptions used for projections.
type CustomerProfile struct {
	ID           int64           `yaml:"id" json:"id,omitempty"`
	Name         string          `yaml:"name" json:"name"`
	Email        string          `yaml:"email" json:"email,omitempty"`
	Age          int             `yaml:"age" json:"age"`
	Gender       Gender          `yaml:"gender" json:"gender"`
	Occupation   string          `yaml:"occupation" json:"occupation,omitempty"`
	AnnualIncome decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	FamilySize   int             `yaml:"family_size" json:"family_size"`
	Dependents   int             `yaml:"dependents" json:"dependents"`
	RiskAppetite RiskAppetite    `yaml:"risk_appetite" json:"risk_appetite"`

	ExistingCoverage       decimal.Decimal `yaml:"existing_coverage" json:"existing_coverage"`
	DebtObligations        decimal.Decimal `yaml:"debt_obligations" json:"debt_obligations"`
	ChildrenEducationNeeds decimal.Decimal `yaml:"children_education_needs" json:"children_education_needs"`
	RetirementNeeds        decimal.Decimal `yaml:"retirement_needs" json:"retirement_needs"`
	EmergencyFundNeeds     decimal.Decimal `yaml:"emergency_fund_needs" json:"emergency_fund_needs"`

	// Percent rates for time-value projections.
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ReturnRate    decimal.Decimal `yaml:"return_rate" json:"return_rate"`

	CreatedAt time.Time `yaml:"-" json:"created_at,omitempty"`

	// Set during decoding so ApplyDefaults can tell an explicit zero rate
	// from an omitted field.
	inflationRateSet bool
	returnRateSet    bool
}

// rateKeys shadows the rate fields with pointers to detect key presence.
type rateKeys struct {
	InflationRate *decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ReturnRate    *decimal.Decimal `yaml:"return_rate" json:"return_rate"`
}

func (p *CustomerProfile) UnmarshalJSON(data []byte) error {
	type plain CustomerProfile
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	var keys rateKeys
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	p.inflationRateSet = keys.InflationRate != nil
	p.returnRateSet = keys.ReturnRate != nil
	return nil
}

func (p *CustomerProfile) UnmarshalYAML(value *yaml.Node) error {
	type plain CustomerProfile
	if err := value.Decode((*plain)(p)); err != nil {
		return err
	}
	var keys rateKeys
	if err := value.Decode(&keys); err != nil {
		return err
	}
	p.inflationRateSet = keys.InflationRate != nil
	p.returnRateSet = keys.ReturnRate != nil
	return nil
}

// ApplyDefaults fills omitted market assumptions and risk appetite with the
// standard defaults. Explicit values, including a zero or negative inflation
// rate, are left alone.
func (p *CustomerProfile) ApplyDefaults() {
	if p.InflationRate.IsZero() && !p.inflationRateSet {
		p.InflationRate = DefaultInflationRate
	}
	if p.ReturnRate.IsZero() && !p.returnRateSet {
		p.ReturnRate = DefaultReturnRate
	}
	if p.RiskAppetite == "" {
		p.RiskAppetite = RiskMedium
	}
}
