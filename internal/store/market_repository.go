package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
)

// marketDateLayout is how snapshot dates are stored; one snapshot per
// insurer per calendar day.
const marketDateLayout = "2006-01-02"

// MarketRepository persists daily market snapshots per insurer.
type MarketRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewMarketRepository creates a new market data repository.
func NewMarketRepository(db *database.DB, log zerolog.Logger) *MarketRepository {
	return &MarketRepository{
		db:  db,
		log: log.With().Str("component", "market_repository").Logger(),
	}
}

const marketColumns = `id, insurer_id, date, claim_settlement_ratio, rating,
	market_share, premium_growth, customer_satisfaction, inflation_rate,
	repo_rate, gdp_growth`

func scanSnapshot(row interface{ Scan(...any) error }) (domain.MarketSnapshot, error) {
	var m domain.MarketSnapshot
	var date any
	var claimRatio, rating, share, growth, satisfaction, inflation, repoRate, gdp string

	err := row.Scan(&m.ID, &m.InsurerID, &date, &claimRatio, &rating,
		&share, &growth, &satisfaction, &inflation, &repoRate, &gdp)
	if err != nil {
		return m, err
	}

	// The DATE column comes back as text or time.Time depending on the
	// driver's column affinity handling.
	switch v := date.(type) {
	case time.Time:
		m.Date = v
	case string:
		m.Date, err = time.Parse(marketDateLayout, v)
	case []byte:
		m.Date, err = time.Parse(marketDateLayout, string(v))
	default:
		err = fmt.Errorf("unexpected date type %T", date)
	}
	if err != nil {
		return m, fmt.Errorf("bad snapshot date: %w", err)
	}
	m.ClaimSettlementRatio = dec(claimRatio)
	m.Rating = dec(rating)
	m.MarketShare = dec(share)
	m.PremiumGrowth = dec(growth)
	m.CustomerSatisfaction = dec(satisfaction)
	m.InflationRate = dec(inflation)
	m.RepoRate = dec(repoRate)
	m.GDPGrowth = dec(gdp)
	return m, nil
}

// Upsert writes a snapshot, replacing any existing row for the same insurer
// and day. The refresh job may run more than once a day.
func (r *MarketRepository) Upsert(m *domain.MarketSnapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO market_data (insurer_id, date, claim_settlement_ratio, rating,
			market_share, premium_growth, customer_satisfaction, inflation_rate,
			repo_rate, gdp_growth)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(insurer_id, date) DO UPDATE SET
			claim_settlement_ratio = excluded.claim_settlement_ratio,
			rating = excluded.rating,
			market_share = excluded.market_share,
			premium_growth = excluded.premium_growth,
			customer_satisfaction = excluded.customer_satisfaction,
			inflation_rate = excluded.inflation_rate,
			repo_rate = excluded.repo_rate,
			gdp_growth = excluded.gdp_growth
	`, m.InsurerID, m.Date.Format(marketDateLayout), m.ClaimSettlementRatio.String(),
		m.Rating.String(), m.MarketShare.String(), m.PremiumGrowth.String(),
		m.CustomerSatisfaction.String(), m.InflationRate.String(),
		m.RepoRate.String(), m.GDPGrowth.String())
	if err != nil {
		return fmt.Errorf("failed to upsert market snapshot for insurer %d: %w", m.InsurerID, err)
	}
	return nil
}

// Latest returns the most recent snapshot per insurer.
func (r *MarketRepository) Latest() ([]domain.MarketSnapshot, error) {
	rows, err := r.db.Query(`
		SELECT ` + marketColumns + ` FROM market_data
		WHERE (insurer_id, date) IN (
			SELECT insurer_id, MAX(date) FROM market_data GROUP BY insurer_id
		)
		ORDER BY insurer_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest market data: %w", err)
	}
	defer rows.Close()
	return collectSnapshots(rows)
}

// ForInsurer returns up to limit snapshots for one insurer, newest first.
func (r *MarketRepository) ForInsurer(insurerID int64, limit int) ([]domain.MarketSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(`
		SELECT `+marketColumns+` FROM market_data
		WHERE insurer_id = ? ORDER BY date DESC LIMIT ?`, insurerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list market data for insurer %d: %w", insurerID, err)
	}
	defer rows.Close()
	return collectSnapshots(rows)
}

func collectSnapshots(rows *sql.Rows) ([]domain.MarketSnapshot, error) {
	var snapshots []domain.MarketSnapshot
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market snapshot: %w", err)
		}
		snapshots = append(snapshots, m)
	}
	return snapshots, rows.Err()
}

// LatestForInsurer returns the newest snapshot for one insurer or
// ErrNotFound.
func (r *MarketRepository) LatestForInsurer(insurerID int64) (*domain.MarketSnapshot, error) {
	row := r.db.QueryRow(`
		SELECT `+marketColumns+` FROM market_data
		WHERE insurer_id = ? ORDER BY date DESC LIMIT 1`, insurerID)
	m, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot for insurer %d: %w", insurerID, err)
	}
	return &m, nil
}
