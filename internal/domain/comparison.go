package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComparisonResult is one product's row in a comparison: the premium for the
// requested cover, the issuer's standing and the 0-20 recommendation score.
type ComparisonResult struct {
	ProductID            int64           `json:"product_id"`
	ProductName          string          `json:"product_name"`
	InsurerName          string          `json:"insurer_name"`
	ProductType          ProductType     `json:"product_type"`
	PremiumAmount        decimal.Decimal `json:"premium_amount"`
	PremiumRatePer1000   decimal.Decimal `json:"premium_rate_per_1000"`
	Features             []string        `json:"features"`
	Benefits             []string        `json:"benefits"`
	Exclusions           []string        `json:"exclusions"`
	Rating               decimal.Decimal `json:"rating"`
	ClaimSettlementRatio decimal.Decimal `json:"claim_settlement_ratio"`
	RecommendationScore  decimal.Decimal `json:"recommendation_score"`
}

// ComparisonSummary aggregates premium statistics across a comparison set.
// BestValueProduct is the top scorer, LowestPremiumProduct the cheapest.
type ComparisonSummary struct {
	TotalProducts        int             `json:"total_products"`
	TotalPremium         decimal.Decimal `json:"total_premium"`
	AveragePremium       decimal.Decimal `json:"average_premium"`
	MinPremium           decimal.Decimal `json:"min_premium"`
	MaxPremium           decimal.Decimal `json:"max_premium"`
	PremiumRange         decimal.Decimal `json:"premium_range"`
	BestValueProduct     string          `json:"best_value_product"`
	LowestPremiumProduct string          `json:"lowest_premium_product"`
}

// ProductComparison is a full comparison response: scored results in
// descending order, summary statistics and narrative guidance strings.
type ProductComparison struct {
	Results         []ComparisonResult `json:"results"`
	Summary         ComparisonSummary  `json:"summary"`
	Recommendations []string           `json:"recommendations"`
	GeneratedAt     time.Time          `json:"generated_at"`
}
