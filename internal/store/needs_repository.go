package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// NeedsRepository persists needs analyses, one row per customer. Re-running
// an analysis replaces the stored row.
type NeedsRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewNeedsRepository creates a new needs repository.
func NewNeedsRepository(db *database.DB, log zerolog.Logger) *NeedsRepository {
	return &NeedsRepository{
		db:  db,
		log: log.With().Str("component", "needs_repository").Logger(),
	}
}

const needsColumns = `id, customer_id, human_life_value, income_replacement_needs,
	family_expenses, debt_obligations, children_education_needs, retirement_needs,
	emergency_fund_needs, total_insurance_needs, existing_coverage,
	additional_coverage_needed, analysis_date`

func scanNeeds(row interface{ Scan(...any) error }) (domain.NeedsResult, error) {
	var n domain.NeedsResult
	var hlv, income, family, debt, education, retirement, emergency, total, coverage, additional string

	err := row.Scan(&n.ID, &n.CustomerID, &hlv, &income, &family, &debt, &education,
		&retirement, &emergency, &total, &coverage, &additional, &n.AnalysisDate)
	if err != nil {
		return n, err
	}

	n.HumanLifeValue = dec(hlv)
	n.IncomeReplacementNeeds = dec(income)
	n.FamilyExpenses = dec(family)
	n.DebtObligations = dec(debt)
	n.ChildrenEducationNeeds = dec(education)
	n.RetirementNeeds = dec(retirement)
	n.EmergencyFundNeeds = dec(emergency)
	n.TotalInsuranceNeeds = dec(total)
	n.ExistingCoverage = dec(coverage)
	n.AdditionalCoverageNeeded = dec(additional)
	return n, nil
}

// ForCustomer returns the stored analysis for a customer or ErrNotFound.
func (r *NeedsRepository) ForCustomer(customerID int64) (*domain.NeedsResult, error) {
	row := r.db.QueryRow(`SELECT `+needsColumns+` FROM needs_analysis WHERE customer_id = ?`, customerID)
	n, err := scanNeeds(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get needs analysis for customer %d: %w", customerID, err)
	}
	return &n, nil
}

// Save writes a needs analysis, replacing any prior row for the customer.
func (r *NeedsRepository) Save(n *domain.NeedsResult) error {
	_, err := r.db.Exec(`
		INSERT INTO needs_analysis (customer_id, human_life_value, income_replacement_needs,
			family_expenses, debt_obligations, children_education_needs, retirement_needs,
			emergency_fund_needs, total_insurance_needs, existing_coverage,
			additional_coverage_needed, analysis_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(customer_id) DO UPDATE SET
			human_life_value = excluded.human_life_value,
			income_replacement_needs = excluded.income_replacement_needs,
			family_expenses = excluded.family_expenses,
			debt_obligations = excluded.debt_obligations,
			children_education_needs = excluded.children_education_needs,
			retirement_needs = excluded.retirement_needs,
			emergency_fund_needs = excluded.emergency_fund_needs,
			total_insurance_needs = excluded.total_insurance_needs,
			existing_coverage = excluded.existing_coverage,
			additional_coverage_needed = excluded.additional_coverage_needed,
			analysis_date = excluded.analysis_date
	`, n.CustomerID, n.HumanLifeValue.String(), n.IncomeReplacementNeeds.String(),
		n.FamilyExpenses.String(), n.DebtObligations.String(),
		n.ChildrenEducationNeeds.String(), n.RetirementNeeds.String(),
		n.EmergencyFundNeeds.String(), n.TotalInsuranceNeeds.String(),
		n.ExistingCoverage.String(), n.AdditionalCoverageNeeded.String(), n.AnalysisDate)
	if err != nil {
		return fmt.Errorf("failed to save needs analysis for customer %d: %w", n.CustomerID, err)
	}
	return nil
}
