package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// CustomerRepository handles customer profiles.
type CustomerRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *database.DB, log zerolog.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:  db,
		log: log.With().Str("component", "customer_repository").Logger(),
	}
}

const customerColumns = `id, name, email, age, gender, occupation, annual_income,
	family_size, dependents, existing_coverage, risk_appetite, debt_obligations,
	children_education_needs, retirement_needs, emergency_fund_needs,
	inflation_rate, return_rate, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (domain.CustomerProfile, error) {
	var c domain.CustomerProfile
	var email, occupation sql.NullString
	var income, coverage, debt, education, retirement, emergency, inflation, returns string

	err := row.Scan(&c.ID, &c.Name, &email, &c.Age, &c.Gender, &occupation, &income,
		&c.FamilySize, &c.Dependents, &coverage, &c.RiskAppetite, &debt,
		&education, &retirement, &emergency, &inflation, &returns, &c.CreatedAt)
	if err != nil {
		return c, err
	}

	c.Email = email.String
	c.Occupation = occupation.String
	c.AnnualIncome = dec(income)
	c.ExistingCoverage = dec(coverage)
	c.DebtObligations = dec(debt)
	c.ChildrenEducationNeeds = dec(education)
	c.RetirementNeeds = dec(retirement)
	c.EmergencyFundNeeds = dec(emergency)
	c.InflationRate = dec(inflation)
	c.ReturnRate = dec(returns)
	return c, nil
}

// GetByID returns one customer or ErrNotFound.
func (r *CustomerRepository) GetByID(id int64) (*domain.CustomerProfile, error) {
	row := r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return &c, nil
}

// List returns all customers ordered by id.
func (r *CustomerRepository) List() ([]domain.CustomerProfile, error) {
	rows, err := r.db.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.CustomerProfile
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Insert stores a customer profile and returns its id. Defaults are applied
// before writing so omitted rates are stored at the standard assumptions.
func (r *CustomerRepository) Insert(c *domain.CustomerProfile) (int64, error) {
	c.ApplyDefaults()

	result, err := r.db.Exec(`
		INSERT INTO customers (name, email, age, gender, occupation, annual_income,
			family_size, dependents, existing_coverage, risk_appetite, debt_obligations,
			children_education_needs, retirement_needs, emergency_fund_needs,
			inflation_rate, return_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Name, nullIfEmpty(c.Email), c.Age, string(c.Gender), c.Occupation,
		c.AnnualIncome.String(), c.FamilySize, c.Dependents,
		c.ExistingCoverage.String(), string(c.RiskAppetite), c.DebtObligations.String(),
		c.ChildrenEducationNeeds.String(), c.RetirementNeeds.String(),
		c.EmergencyFundNeeds.String(), c.InflationRate.String(), c.ReturnRate.String())
	if err != nil {
		return 0, fmt.Errorf("failed to insert customer %q: %w", c.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read customer id: %w", err)
	}
	r.log.Debug().Int64("customer_id", id).Str("name", c.Name).Msg("Customer created")
	return id, nil
}

// Update rewrites an existing customer profile. Returns ErrNotFound when no
// row matches the id.
func (r *CustomerRepository) Update(c *domain.CustomerProfile) error {
	result, err := r.db.Exec(`
		UPDATE customers SET name = ?, email = ?, age = ?, gender = ?, occupation = ?,
			annual_income = ?, family_size = ?, dependents = ?, existing_coverage = ?,
			risk_appetite = ?, debt_obligations = ?, children_education_needs = ?,
			retirement_needs = ?, emergency_fund_needs = ?, inflation_rate = ?, return_rate = ?
		WHERE id = ?
	`, c.Name, nullIfEmpty(c.Email), c.Age, string(c.Gender), c.Occupation,
		c.AnnualIncome.String(), c.FamilySize, c.Dependents,
		c.ExistingCoverage.String(), string(c.RiskAppetite), c.DebtObligations.String(),
		c.ChildrenEducationNeeds.String(), c.RetirementNeeds.String(),
		c.EmergencyFundNeeds.String(), c.InflationRate.String(), c.ReturnRate.String(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", c.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	r.log.Debug().Int64("customer_id", c.ID).Msg("Customer updated")
	return nil
}

// nullIfEmpty maps "" to NULL so the UNIQUE email constraint ignores
// customers without an email.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
