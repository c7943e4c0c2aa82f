package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// InsurerRepository handles insurer records.
type InsurerRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewInsurerRepository creates a new insurer repository.
func NewInsurerRepository(db *database.DB, log zerolog.Logger) *InsurerRepository {
	return &InsurerRepository{
		db:  db,
		log: log.With().Str("component", "insurer_repository").Logger(),
	}
}

const insurerColumns = `id, name, website, customer_care, claim_settlement_ratio,
	solvency_ratio, established_year, headquarters, rating, rating_agency`

func scanInsurer(row interface{ Scan(...any) error }) (domain.Insurer, error) {
	var ins domain.Insurer
	var website, customerCare, headquarters, ratingAgency sql.NullString
	var establishedYear sql.NullInt64
	var claimRatio, solvency, rating string

	err := row.Scan(&ins.ID, &ins.Name, &website, &customerCare, &claimRatio,
		&solvency, &establishedYear, &headquarters, &rating, &ratingAgency)
	if err != nil {
		return ins, err
	}

	ins.Website = website.String
	ins.CustomerCare = customerCare.String
	ins.Headquarters = headquarters.String
	ins.RatingAgency = ratingAgency.String
	ins.EstablishedYear = int(establishedYear.Int64)
	ins.ClaimSettlementRatio = dec(claimRatio)
	ins.SolvencyRatio = dec(solvency)
	ins.Rating = dec(rating)
	return ins, nil
}

// List returns all insurers ordered by name.
func (r *InsurerRepository) List() ([]domain.Insurer, error) {
	rows, err := r.db.Query(`SELECT ` + insurerColumns + ` FROM insurers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurers: %w", err)
	}
	defer rows.Close()

	var insurers []domain.Insurer
	for rows.Next() {
		ins, err := scanInsurer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insurer: %w", err)
		}
		insurers = append(insurers, ins)
	}
	return insurers, rows.Err()
}

// GetByID returns one insurer or ErrNotFound.
func (r *InsurerRepository) GetByID(id int64) (*domain.Insurer, error) {
	row := r.db.QueryRow(`SELECT `+insurerColumns+` FROM insurers WHERE id = ?`, id)
	ins, err := scanInsurer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insurer %d: %w", id, err)
	}
	return &ins, nil
}

// Insert stores an insurer and returns its id. Existing names are updated in
// place so seeding is repeatable.
func (r *InsurerRepository) Insert(ins *domain.Insurer) (int64, error) {
	_, err := r.db.Exec(`
		INSERT INTO insurers (name, website, customer_care, claim_settlement_ratio,
			solvency_ratio, established_year, headquarters, rating, rating_agency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			claim_settlement_ratio = excluded.claim_settlement_ratio,
			rating = excluded.rating
	`, ins.Name, ins.Website, ins.CustomerCare, ins.ClaimSettlementRatio.String(),
		ins.SolvencyRatio.String(), ins.EstablishedYear, ins.Headquarters,
		ins.Rating.String(), ins.RatingAgency)
	if err != nil {
		return 0, fmt.Errorf("failed to insert insurer %q: %w", ins.Name, err)
	}

	// Resolve by name rather than trusting LastInsertId, which is stale when
	// the upsert took the update path.
	var id int64
	row := r.db.QueryRow(`SELECT id FROM insurers WHERE name = ?`, ins.Name)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve insurer id for %q: %w", ins.Name, err)
	}
	return id, nil
}

// SetMarketStanding updates the rating and claim settlement ratio from the
// latest market snapshot.
func (r *InsurerRepository) SetMarketStanding(id int64, rating, claimRatio string) error {
	_, err := r.db.Exec(`UPDATE insurers SET rating = ?, claim_settlement_ratio = ? WHERE id = ?`,
		rating, claimRatio, id)
	if err != nil {
		return fmt.Errorf("failed to update insurer %d standing: %w", id, err)
	}
	return nil
}
