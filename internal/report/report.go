// Package report assembles advisory reports from stored analyses and hands
// out opaque references for later retrieval.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoAnalysis is returned when a report is requested for a customer who
// has no needs analysis on file yet.
var ErrNoAnalysis = errors.New("no needs analysis on file")

// Service builds and stores advisory reports.
type Service struct {
	customers       *store.CustomerRepository
	needs           *store.NeedsRepository
	recommendations *store.RecommendationRepository
	reports         *store.ReportRepository
	log             zerolog.Logger
}

// NewService creates the report service.
func NewService(
	customers *store.CustomerRepository,
	needs *store.NeedsRepository,
	recommendations *store.RecommendationRepository,
	reports *store.ReportRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		customers:       customers,
		needs:           needs,
		recommendations: recommendations,
		reports:         reports,
		log:             log.With().Str("component", "report_service").Logger(),
	}
}

// AdvisoryReport is the rendered body of a full advisory report.
type AdvisoryReport struct {
	Reference       string                  `json:"reference"`
	GeneratedAt     time.Time               `json:"generated_at"`
	Customer        *domain.CustomerProfile `json:"customer"`
	NeedsAnalysis   *domain.NeedsResult     `json:"needs_analysis"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// GenerateAdvisory builds a full advisory report for a customer from the
// stored needs analysis and recommendations, persists it, and returns it.
// The reference is a fresh UUID.
func (s *Service) GenerateAdvisory(customerID int64) (*AdvisoryReport, error) {
	customer, err := s.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}

	needs, err := s.needs.ForCustomer(customerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, err
	}

	recs, err := s.recommendations.ForCustomer(customerID)
	if err != nil {
		return nil, err
	}

	rep := &AdvisoryReport{
		Reference:       uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		Customer:        customer,
		NeedsAnalysis:   needs,
		Recommendations: recs,
	}

	content, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	if _, err := s.reports.Insert(&domain.Report{
		Reference:   rep.Reference,
		CustomerID:  customerID,
		ReportType:  domain.ReportRecommendation,
		Content:     string(content),
		GeneratedAt: rep.GeneratedAt,
	}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reference", rep.Reference).
		Int64("customer_id", customerID).
		Int("recommendations", len(recs)).
		Msg("Advisory report generated")
	return rep, nil
}

// GetByReference loads a stored report body by its reference.
func (s *Service) GetByReference(reference string) (*AdvisoryReport, error) {
	stored, err := s.reports.GetByReference(reference)
	if err != nil {
		return nil, err
	}

	var rep AdvisoryReport
	if err := json.Unmarshal([]byte(stored.Content), &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", reference, err)
	}
	return &rep, nil
}

// ListForCustomer returns report metadata for a customer, newest first.
func (s *Service) ListForCustomer(customerID int64) ([]domain.Report, error) {
	return s.reports.ForCustomer(customerID)
}
