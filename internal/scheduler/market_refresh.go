package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Baseline macro indicators for the simulated market feed, in percent.
var (
	baseInflationRate = decimal.NewFromFloat(6.0)
	baseRepoRate      = decimal.NewFromFloat(6.5)
	baseGDPGrowth     = decimal.NewFromFloat(7.0)
)

// MarketRefreshJob captures a daily market snapshot per insurer. Without a
// live regulator feed the job simulates one: each indicator drifts a little
// around the previous observation, anchored to the insurer's stored
// standing.
type MarketRefreshJob struct {
	insurers *store.InsurerRepository
	market   *store.MarketRepository
	log      zerolog.Logger
	rng      *rand.Rand
	now      func() time.Time
}

// NewMarketRefreshJob creates the refresh job.
func NewMarketRefreshJob(insurers *store.InsurerRepository, market *store.MarketRepository, log zerolog.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		insurers: insurers,
		market:   market,
		log:      log.With().Str("component", "market_refresh").Logger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Name implements Job.
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Run implements Job. One bad insurer does not abort the rest; the first
// error is reported after all insurers have been attempted.
func (j *MarketRefreshJob) Run() error {
	insurers, err := j.insurers.List()
	if err != nil {
		return fmt.Errorf("market refresh: %w", err)
	}

	today := j.now().UTC().Truncate(24 * time.Hour)
	var firstErr error
	var captured int
	for _, ins := range insurers {
		if err := j.refreshInsurer(&ins, today); err != nil {
			j.log.Error().Err(err).Str("insurer", ins.Name).Msg("Snapshot failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		captured++
	}

	j.log.Info().Int("insurers", captured).Str("date", today.Format("2006-01-02")).Msg("Market data refreshed")
	return firstErr
}

func (j *MarketRefreshJob) refreshInsurer(ins *domain.Insurer, today time.Time) error {
	prev, err := j.market.LatestForInsurer(ins.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	snap := &domain.MarketSnapshot{
		InsurerID: ins.ID,
		Date:      today,
	}
	if prev != nil {
		snap.ClaimSettlementRatio = j.drift(prev.ClaimSettlementRatio, 0.15, 80, 100)
		snap.Rating = j.drift(prev.Rating, 0.05, 1, 5)
		snap.MarketShare = j.drift(prev.MarketShare, 0.3, 0, 100)
		snap.PremiumGrowth = j.drift(prev.PremiumGrowth, 0.5, -20, 50)
		snap.CustomerSatisfaction = j.drift(prev.CustomerSatisfaction, 0.1, 1, 5)
		snap.InflationRate = j.drift(prev.InflationRate, 0.1, -10, 50)
		snap.RepoRate = j.drift(prev.RepoRate, 0.05, 0, 20)
		snap.GDPGrowth = j.drift(prev.GDPGrowth, 0.2, -10, 20)
	} else {
		// First observation anchors to the insurer record and baseline
		// macro rates.
		snap.ClaimSettlementRatio = ins.ClaimSettlementRatio
		snap.Rating = ins.Rating
		snap.MarketShare = decimal.NewFromInt(10)
		snap.PremiumGrowth = decimal.NewFromInt(8)
		snap.CustomerSatisfaction = decimal.NewFromInt(4)
		snap.InflationRate = baseInflationRate
		snap.RepoRate = baseRepoRate
		snap.GDPGrowth = baseGDPGrowth
	}

	if err := j.market.Upsert(snap); err != nil {
		return err
	}

	// Keep the catalogue's scoring inputs in step with the feed.
	return j.insurers.SetMarketStanding(ins.ID, snap.Rating.String(), snap.ClaimSettlementRatio.String())
}

// drift moves a value by a uniform step in [-step, step], clamped to
// [min, max], rounded to 2 places.
func (j *MarketRefreshJob) drift(value decimal.Decimal, step, min, max float64) decimal.Decimal {
	delta := decimal.NewFromFloat((j.rng.Float64()*2 - 1) * step)
	next := value.Add(delta)

	floor := decimal.NewFromFloat(min)
	ceil := decimal.NewFromFloat(max)
	if next.LessThan(floor) {
		next = floor
	}
	if next.GreaterThan(ceil) {
		next = ceil
	}
	return next.Round(2)
}
