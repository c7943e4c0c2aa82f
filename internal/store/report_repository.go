package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// ReportRepository persists generated advisory reports keyed by an opaque
// reference.
type ReportRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *database.DB, log zerolog.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: log.With().Str("component", "report_repository").Logger(),
	}
}

// Insert stores a report and returns its id.
func (r *ReportRepository) Insert(rep *domain.Report) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO reports (reference, customer_id, report_type, content, generated_at)
		VALUES (?, ?, ?, ?, ?)
	`, rep.Reference, rep.CustomerID, string(rep.ReportType), rep.Content, rep.GeneratedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report %s: %w", rep.Reference, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report id: %w", err)
	}
	return id, nil
}

// GetByReference returns a report by its reference or ErrNotFound.
func (r *ReportRepository) GetByReference(reference string) (*domain.Report, error) {
	row := r.db.QueryRow(`
		SELECT id, reference, customer_id, report_type, content, generated_at
		FROM reports WHERE reference = ?`, reference)

	var rep domain.Report
	err := row.Scan(&rep.ID, &rep.Reference, &rep.CustomerID, &rep.ReportType,
		&rep.Content, &rep.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", reference, err)
	}
	return &rep, nil
}

// ForCustomer returns all reports for a customer, newest first, without the
// content bodies.
func (r *ReportRepository) ForCustomer(customerID int64) ([]domain.Report, error) {
	rows, err := r.db.Query(`
		SELECT id, reference, customer_id, report_type, generated_at
		FROM reports WHERE customer_id = ? ORDER BY generated_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.Reference, &rep.CustomerID, &rep.ReportType, &rep.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
