package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketSnapshot is one observation of an insurer's market standing, captured
// by the periodic refresh job. Rating and ClaimSettlementRatio shadow the
// insurer record and feed the trend endpoints.
type MarketSnapshot struct {
	ID                   int64           `json:"id,omitempty"`
	InsurerID            int64           `json:"insurer_id"`
	Date                 time.Time       `json:"date"`
	ClaimSettlementRatio decimal.Decimal `json:"claim_settlement_ratio"`
	Rating               decimal.Decimal `json:"rating"`
	MarketShare          decimal.Decimal `json:"market_share"`
	PremiumGrowth        decimal.Decimal `json:"premium_growth"`
	CustomerSatisfaction decimal.Decimal `json:"customer_satisfaction"`
	InflationRate        decimal.Decimal `json:"inflation_rate"`
	RepoRate             decimal.Decimal `json:"repo_rate"`
	GDPGrowth            decimal.Decimal `json:"gdp_growth"`
}
