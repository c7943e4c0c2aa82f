package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType classifies an insurance product. The premium rate table and
// the scoring affinity rules key off this.
type ProductType string

const (
	ProductTermLife        ProductType = "term_life"
	ProductEndowment       ProductType = "endowment"
	ProductMoneyBack       ProductType = "money_back"
	ProductWholeLife       ProductType = "whole_life"
	ProductULIP            ProductType = "ulip"
	ProductChildPlans      ProductType = "child_plans"
	ProductPensionPlans    ProductType = "pension_plans"
	ProductCriticalIllness ProductType = "critical_illness"
	ProductDisability      ProductType = "disability"
)

// Insurer is an insurance company with its market standing. Rating is on a
// 0-5 scale and ClaimSettlementRatio is a percentage.
type Insurer struct {
	ID                   int64           `yaml:"id" json:"id,omitempty"`
	Name                 string          `yaml:"name" json:"name"`
	Website              string          `yaml:"website" json:"website,omitempty"`
	CustomerCare         string          `yaml:"customer_care" json:"customer_care,omitempty"`
	ClaimSettlementRatio decimal.Decimal `yaml:"claim_settlement_ratio" json:"claim_settlement_ratio"`
	SolvencyRatio        decimal.Decimal `yaml:"solvency_ratio" json:"solvency_ratio"`
	EstablishedYear      int             `yaml:"established_year" json:"established_year,omitempty"`
	Headquarters         string          `yaml:"headquarters" json:"headquarters,omitempty"`
	Rating               decimal.Decimal `yaml:"rating" json:"rating"`
	RatingAgency         string          `yaml:"rating_agency" json:"rating_agency,omitempty"`
}

// Product is one catalogue entry. Insurer carries the full issuer record so
// scoring never needs a second lookup; InsurerID is kept for storage and for
// catalogue files that reference insurers by id.
type Product struct {
	ID          int64       `yaml:"id" json:"id,omitempty"`
	Name        string      `yaml:"name" json:"name"`
	InsurerID   int64       `yaml:"insurer_id" json:"insurer_id,omitempty"`
	Insurer     Insurer     `yaml:"insurer" json:"insurer"`
	ProductType ProductType `yaml:"product_type" json:"product_type"`
	Description string      `yaml:"description" json:"description,omitempty"`

	Features   []string `yaml:"features" json:"features"`
	Benefits   []string `yaml:"benefits" json:"benefits"`
	Exclusions []string `yaml:"exclusions" json:"exclusions"`

	MinAge        int             `yaml:"min_age" json:"min_age"`
	MaxAge        int             `yaml:"max_age" json:"max_age"`
	MinSumAssured decimal.Decimal `yaml:"min_sum_assured" json:"min_sum_assured"`
	MaxSumAssured decimal.Decimal `yaml:"max_sum_assured" json:"max_sum_assured"`

	PremiumFrequency         string `yaml:"premium_frequency" json:"premium_frequency,omitempty"`
	PolicyTermOptions        []int  `yaml:"policy_term_options" json:"policy_term_options,omitempty"`
	PremiumPayingTermOptions []int  `yaml:"premium_paying_term_options" json:"premium_paying_term_options,omitempty"`

	IsActive  bool      `yaml:"is_active" json:"is_active"`
	CreatedAt time.Time `yaml:"-" json:"created_at,omitempty"`
}

// EligibleAt reports whether the product is open to a customer of the given
// age: it must be active and the age inside the entry window, inclusive on
// both ends.
func (p *Product) EligibleAt(age int) bool {
	return p.IsActive && age >= p.MinAge && age <= p.MaxAge
}
