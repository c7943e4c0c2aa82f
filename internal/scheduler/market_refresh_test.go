package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRefreshFixture(t *testing.T) (*MarketRefreshJob, *store.MarketRepository, int64) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()
	insurers := store.NewInsurerRepository(db, log)
	market := store.NewMarketRepository(db, log)

	insurerID, err := insurers.Insert(&domain.Insurer{
		Name:                 "Acme Life",
		ClaimSettlementRatio: decimal.NewFromFloat(98.5),
		Rating:               decimal.NewFromFloat(4.5),
	})
	require.NoError(t, err)

	return NewMarketRefreshJob(insurers, market, log), market, insurerID
}

func TestMarketRefreshJob_FirstRunAnchorsToInsurer(t *testing.T) {
	job, market, insurerID := newRefreshFixture(t)

	require.NoError(t, job.Run())

	snap, err := market.LatestForInsurer(insurerID)
	require.NoError(t, err)
	assert.Equal(t, "98.5", snap.ClaimSettlementRatio.String())
	assert.Equal(t, "4.5", snap.Rating.String())
	assert.Equal(t, "6", snap.InflationRate.String())
}

func TestMarketRefreshJob_SecondDayDriftsWithinBounds(t *testing.T) {
	job, market, insurerID := newRefreshFixture(t)

	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return day }
	require.NoError(t, job.Run())

	job.now = func() time.Time { return day.AddDate(0, 0, 1) }
	require.NoError(t, job.Run())

	history, err := market.ForInsurer(insurerID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	next, prev := history[0], history[1]
	assert.True(t, next.Rating.Sub(prev.Rating).Abs().LessThanOrEqual(decimal.NewFromFloat(0.06)),
		"rating drift %s exceeds step", next.Rating.Sub(prev.Rating))
	assert.True(t, next.ClaimSettlementRatio.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.True(t, next.Rating.LessThanOrEqual(decimal.NewFromInt(5)))
}

func TestMarketRefreshJob_SameDayRunsUpsert(t *testing.T) {
	job, market, insurerID := newRefreshFixture(t)

	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return day }
	require.NoError(t, job.Run())
	require.NoError(t, job.Run())

	history, err := market.ForInsurer(insurerID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1, "one row per insurer per day")
}
