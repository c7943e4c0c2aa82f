package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// ProductRepository handles catalogue products. List queries join the
// insurer row so callers get a complete Product without a second lookup.
type ProductRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *database.DB, log zerolog.Logger) *ProductRepository {
	return &ProductRepository{
		db:  db,
		log: log.With().Str("component", "product_repository").Logger(),
	}
}

const productSelect = `
	SELECT p.id, p.name, p.insurer_id, p.product_type, p.description,
		p.features, p.benefits, p.exclusions,
		p.min_age, p.max_age, p.min_sum_assured, p.max_sum_assured,
		p.premium_frequency, p.policy_term_options, p.premium_paying_term_options,
		p.is_active,
		i.id, i.name, i.claim_settlement_ratio, i.solvency_ratio, i.rating, i.rating_agency
	FROM products p
	JOIN insurers i ON i.id = p.insurer_id`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	var description, premiumFrequency, ratingAgency sql.NullString
	var features, benefits, exclusions, policyTerms, payingTerms string
	var minSum, maxSum, claimRatio, solvency, rating string

	err := row.Scan(&p.ID, &p.Name, &p.InsurerID, &p.ProductType, &description,
		&features, &benefits, &exclusions,
		&p.MinAge, &p.MaxAge, &minSum, &maxSum,
		&premiumFrequency, &policyTerms, &payingTerms,
		&p.IsActive,
		&p.Insurer.ID, &p.Insurer.Name, &claimRatio, &solvency, &rating, &ratingAgency)
	if err != nil {
		return p, err
	}

	p.Description = description.String
	p.PremiumFrequency = premiumFrequency.String
	p.Features = unmarshalStrings(features)
	p.Benefits = unmarshalStrings(benefits)
	p.Exclusions = unmarshalStrings(exclusions)
	p.PolicyTermOptions = unmarshalInts(policyTerms)
	p.PremiumPayingTermOptions = unmarshalInts(payingTerms)
	p.MinSumAssured = dec(minSum)
	p.MaxSumAssured = dec(maxSum)
	p.Insurer.ClaimSettlementRatio = dec(claimRatio)
	p.Insurer.SolvencyRatio = dec(solvency)
	p.Insurer.Rating = dec(rating)
	p.Insurer.RatingAgency = ratingAgency.String
	return p, nil
}

// ProductFilter narrows List. Zero values mean no filtering on that field;
// ActiveOnly additionally hides inactive products.
type ProductFilter struct {
	ProductType domain.ProductType
	InsurerID   int64
	ActiveOnly  bool
}

// List returns catalogue products matching the filter, ordered by id.
func (r *ProductRepository) List(filter ProductFilter) ([]domain.Product, error) {
	query := productSelect
	var clauses []string
	var args []any
	if filter.ProductType != "" {
		clauses = append(clauses, "p.product_type = ?")
		args = append(args, string(filter.ProductType))
	}
	if filter.InsurerID != 0 {
		clauses = append(clauses, "p.insurer_id = ?")
		args = append(args, filter.InsurerID)
	}
	if filter.ActiveOnly {
		clauses = append(clauses, "p.is_active = 1")
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY p.id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID returns one product or ErrNotFound.
func (r *ProductRepository) GetByID(id int64) (*domain.Product, error) {
	row := r.db.QueryRow(productSelect+" WHERE p.id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// GetByIDs returns the products with the given ids, preserving input order
// and skipping unknown ids.
func (r *ProductRepository) GetByIDs(ids []int64) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetByID(id)
		if errors.Is(err, ErrNotFound) {
			r.log.Warn().Int64("product_id", id).Msg("Skipping unknown product id")
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// Insert stores a product and returns its id.
func (r *ProductRepository) Insert(p *domain.Product) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO products (name, insurer_id, product_type, description,
			features, benefits, exclusions,
			min_age, max_age, min_sum_assured, max_sum_assured,
			premium_frequency, policy_term_options, premium_paying_term_options, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.InsurerID, string(p.ProductType), p.Description,
		marshalStrings(p.Features), marshalStrings(p.Benefits), marshalStrings(p.Exclusions),
		p.MinAge, p.MaxAge, p.MinSumAssured.String(), p.MaxSumAssured.String(),
		p.PremiumFrequency, marshalInts(p.PolicyTermOptions), marshalInts(p.PremiumPayingTermOptions),
		p.IsActive)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product %q: %w", p.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read product id: %w", err)
	}
	return id, nil
}

// Count returns the number of catalogue products. Used by seeding to decide
// whether the database is already populated.
func (r *ProductRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
