package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceFixture(t *testing.T) (*Service, int64) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()
	customers := store.NewCustomerRepository(db, log)
	needs := store.NewNeedsRepository(db, log)
	recs := store.NewRecommendationRepository(db, log)
	reports := store.NewReportRepository(db, log)

	customerID, err := customers.Insert(&domain.CustomerProfile{
		Name:         "Ravi Kumar",
		Age:          30,
		Gender:       domain.GenderMale,
		AnnualIncome: decimal.NewFromInt(1200000),
	})
	require.NoError(t, err)

	require.NoError(t, needs.Save(&domain.NeedsResult{
		CustomerID:               customerID,
		TotalInsuranceNeeds:      decimal.NewFromInt(35000000),
		AdditionalCoverageNeeded: decimal.NewFromInt(34000000),
		AnalysisDate:             time.Now().UTC(),
	}))

	return NewService(customers, needs, recs, reports, log), customerID
}

func TestService_GenerateAdvisory(t *testing.T) {
	svc, customerID := newServiceFixture(t)

	rep, err := svc.GenerateAdvisory(customerID)
	require.NoError(t, err)

	_, err = uuid.Parse(rep.Reference)
	assert.NoError(t, err, "reference is a UUID")
	require.NotNil(t, rep.NeedsAnalysis)
	assert.Equal(t, "34000000", rep.NeedsAnalysis.AdditionalCoverageNeeded.String())
	assert.Equal(t, "Ravi Kumar", rep.Customer.Name)
}

func TestService_GetByReferenceRoundTrip(t *testing.T) {
	svc, customerID := newServiceFixture(t)

	rep, err := svc.GenerateAdvisory(customerID)
	require.NoError(t, err)

	loaded, err := svc.GetByReference(rep.Reference)
	require.NoError(t, err)
	assert.Equal(t, rep.Reference, loaded.Reference)
	assert.Equal(t, customerID, loaded.Customer.ID)

	listed, err := svc.ListForCustomer(customerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.ReportRecommendation, listed[0].ReportType)
}

func TestService_GenerateAdvisory_NoAnalysis(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()
	customers := store.NewCustomerRepository(db, log)
	svc := NewService(customers, store.NewNeedsRepository(db, log),
		store.NewRecommendationRepository(db, log), store.NewReportRepository(db, log), log)

	customerID, err := customers.Insert(&domain.CustomerProfile{Name: "New Customer", Age: 25, Gender: domain.GenderFemale})
	require.NoError(t, err)

	_, err = svc.GenerateAdvisory(customerID)
	assert.ErrorIs(t, err, ErrNoAnalysis)
}
