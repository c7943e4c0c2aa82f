package store

import (
	"fmt"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// RecommendationRepository persists recommendations. The table's UNIQUE
// (customer_id, product_id) constraint is the idempotency anchor: concurrent
// generation runs race on the insert and exactly one wins per product.
type RecommendationRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRecommendationRepository creates a new recommendation repository.
func NewRecommendationRepository(db *database.DB, log zerolog.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:  db,
		log: log.With().Str("component", "recommendation_repository").Logger(),
	}
}

// InsertIfAbsent inserts a recommendation unless one already exists for the
// (customer, product) pair. Returns whether a row was actually written.
func (r *RecommendationRepository) InsertIfAbsent(rec *domain.Recommendation) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO recommendations (customer_id, product_id, sum_assured, premium_amount,
			policy_term, premium_paying_term, premium_frequency, priority, reasoning, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(customer_id, product_id) DO NOTHING
	`, rec.CustomerID, rec.ProductID, rec.SumAssured.String(), rec.PremiumAmount.String(),
		rec.PolicyTerm, rec.PremiumPayingTerm, rec.PremiumFrequency,
		string(rec.Priority), rec.Reasoning, rec.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert recommendation for customer %d product %d: %w",
			rec.CustomerID, rec.ProductID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// ExistingProductIDs returns the set of product ids already recommended for
// the customer.
func (r *RecommendationRepository) ExistingProductIDs(customerID int64) (map[int64]struct{}, error) {
	rows, err := r.db.Query(`SELECT product_id FROM recommendations WHERE customer_id = ?`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended product ids for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// ForCustomer returns all recommendations for a customer ordered by priority
// then premium, with product and insurer names attached.
func (r *RecommendationRepository) ForCustomer(customerID int64) ([]domain.Recommendation, error) {
	rows, err := r.db.Query(`
		SELECT r.id, r.customer_id, r.product_id, r.sum_assured, r.premium_amount,
			r.policy_term, r.premium_paying_term, r.premium_frequency, r.priority,
			r.reasoning, r.created_at, p.name, i.name
		FROM recommendations r
		JOIN products p ON p.id = r.product_id
		JOIN insurers i ON i.id = p.insurer_id
		WHERE r.customer_id = ?
		ORDER BY CASE r.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
			CAST(r.premium_amount AS REAL)
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	var recs []domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		var sumAssured, premium string
		err := rows.Scan(&rec.ID, &rec.CustomerID, &rec.ProductID, &sumAssured, &premium,
			&rec.PolicyTerm, &rec.PremiumPayingTerm, &rec.PremiumFrequency, &rec.Priority,
			&rec.Reasoning, &rec.CreatedAt, &rec.ProductName, &rec.InsurerName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		rec.SumAssured = dec(sumAssured)
		rec.PremiumAmount = dec(premium)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
