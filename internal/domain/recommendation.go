package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority grades how urgently a recommendation should be acted on. Term
// life protection ranks high; everything else is medium.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation ties one customer to one product with the proposed terms.
// (CustomerID, ProductID) is the natural key: generating twice for the same
// customer never produces a second row for the same product.
type Recommendation struct {
	ID                int64           `json:"id,omitempty"`
	CustomerID        int64           `json:"customer_id"`
	ProductID         int64           `json:"product_id"`
	SumAssured        decimal.Decimal `json:"sum_assured"`
	PremiumAmount     decimal.Decimal `json:"premium_amount"`
	PolicyTerm        int             `json:"policy_term"`
	PremiumPayingTerm int             `json:"premium_paying_term"`
	PremiumFrequency  string          `json:"premium_frequency"`
	Priority          Priority        `json:"priority"`
	Reasoning         string          `json:"reasoning"`
	CreatedAt         time.Time       `json:"created_at"`

	// Denormalized for API responses; not persisted on the row.
	ProductName string `json:"product_name,omitempty"`
	InsurerName string `json:"insurer_name,omitempty"`
}
