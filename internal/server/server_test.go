package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverwise/coverwise/internal/compare"
	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/recommend"
	"github.com/coverwise/coverwise/internal/report"
	"github.com/coverwise/coverwise/internal/scheduler"
	"github.com/coverwise/coverwise/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()
	insurers := store.NewInsurerRepository(db, log)
	products := store.NewProductRepository(db, log)
	customers := store.NewCustomerRepository(db, log)
	needs := store.NewNeedsRepository(db, log)
	recommendations := store.NewRecommendationRepository(db, log)
	market := store.NewMarketRepository(db, log)

	require.NoError(t, store.NewSeeder(insurers, products, log).Run())

	return New(Config{
		Port:            0,
		Log:             log,
		Insurers:        insurers,
		Products:        products,
		Customers:       customers,
		Needs:           needs,
		Recommendations: recommendations,
		Market:          market,
		Recommender:     recommend.NewEngine(),
		Comparer:        compare.NewEngine(),
		Reports:         report.NewService(customers, needs, recommendations, store.NewReportRepository(db, log), log),
		MarketRefresh:   scheduler.NewMarketRefreshJob(insurers, market, log),
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	}
	return rec, decoded
}

func createCustomer(t *testing.T, srv *Server) int64 {
	t.Helper()
	rec, body := doJSON(t, srv, http.MethodPost, "/api/customers/", map[string]any{
		"name":                     "Ravi Kumar",
		"age":                      30,
		"gender":                   "male",
		"annual_income":            "1200000",
		"family_size":              4,
		"dependents":               2,
		"existing_coverage":        "1000000",
		"risk_appetite":            "medium",
		"debt_obligations":         "500000",
		"children_education_needs": "1000000",
		"retirement_needs":         "2000000",
		"emergency_fund_needs":     "300000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(body["id"].(float64))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestListInsurersAndProducts(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/insurers/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["insurers"], 5)

	rec, body = doJSON(t, srv, http.MethodGet, "/api/products/?product_type=term_life", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := body["products"].([]any)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "term_life", p.(map[string]any)["product_type"])
	}
}

func TestNeedsAnalysisEndpoint(t *testing.T) {
	srv := newTestServer(t)
	customerID := createCustomer(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/customers/%d/needs-analysis", customerID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "35000000", body["total_insurance_needs"])
	assert.Equal(t, "34000000", body["additional_coverage_needed"])

	rec, stored := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/customers/%d/needs-analysis", customerID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body["total_insurance_needs"], stored["total_insurance_needs"])
}

func TestGenerateRecommendations_Idempotent(t *testing.T) {
	srv := newTestServer(t)
	customerID := createCustomer(t, srv)
	path := fmt.Sprintf("/api/customers/%d/recommendations/generate", customerID)

	rec, body := doJSON(t, srv, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := body["recommendations"].([]any)
	require.NotEmpty(t, first)
	assert.Positive(t, body["newly_added"].(float64))

	rec, body = doJSON(t, srv, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, body["newly_added"].(float64), "second run adds nothing")
	assert.Len(t, body["recommendations"], len(first))
}

func TestCalculatorPremiumEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/calculator/premium", map[string]any{
		"age":          30,
		"gender":       "male",
		"sum_assured":  "5000000",
		"policy_term":  20,
		"product_type": "term_life",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "9000", body["premium_amount"])
	assert.Equal(t, "1.8", body["premium_rate_per_1000"])
}

func TestCalculatorProjectionsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/calculator/investment-projections", map[string]any{
		"investment_type": "sip",
		"amount":          "10000",
		"return_rate":     "8",
		"inflation_rate":  "6",
		"years":           20,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	projection := body["projection"].(map[string]any)
	assert.Equal(t, "2400000", projection["total_investment"])
	assert.Equal(t, "5890204.16", projection["nominal_value"])

	rec, _ = doJSON(t, srv, http.MethodPost, "/api/calculator/investment-projections", map[string]any{
		"investment_type": "bogus",
		"amount":          "100",
		"years":           5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculatorProjectionsDefaults(t *testing.T) {
	srv := newTestServer(t)

	// Omitted rates get the standard assumptions: 8% return, 6% inflation
	// and a 10% yearly step-up.
	rec, body := doJSON(t, srv, http.MethodPost, "/api/calculator/investment-projections", map[string]any{
		"investment_type": "step_up_sip",
		"amount":          "10000",
		"years":           10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	projection := body["projection"].(map[string]any)
	assert.Equal(t, "1912490.95", projection["total_investment"], "contributions step up 10% a year")

	// An explicit zero inflation rate is honored, not replaced.
	rec, body = doJSON(t, srv, http.MethodPost, "/api/calculator/investment-projections", map[string]any{
		"investment_type": "lumpsum",
		"amount":          "100000",
		"return_rate":     "8",
		"inflation_rate":  "0",
		"years":           10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	projection = body["projection"].(map[string]any)
	assert.Equal(t, "8", projection["real_return_rate"])
	assert.Equal(t, projection["nominal_value"], projection["inflation_adjusted_value"])
}

func TestUpdateCustomerEndpoint(t *testing.T) {
	srv := newTestServer(t)
	customerID := createCustomer(t, srv)
	path := fmt.Sprintf("/api/customers/%d", customerID)

	// Partial update: omitted fields keep their stored values.
	rec, body := doJSON(t, srv, http.MethodPut, path, map[string]any{
		"age":        35,
		"occupation": "engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(35), body["age"])
	assert.Equal(t, "engineer", body["occupation"])
	assert.Equal(t, "Ravi Kumar", body["name"])
	assert.Equal(t, "1200000", body["annual_income"])

	rec, body = doJSON(t, srv, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(35), body["age"], "update persisted")

	rec, _ = doJSON(t, srv, http.MethodPut, "/api/customers/9999", map[string]any{"age": 40})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompareProductsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/products/compare", map[string]any{
		"product_ids": []int64{1, 3, 5},
		"customer": map[string]any{
			"name":          "Ravi Kumar",
			"age":           30,
			"gender":        "male",
			"annual_income": "1200000",
			"risk_appetite": "high",
		},
		"sum_assured": "1000000",
		"policy_term": 20,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	results := body["results"].([]any)
	require.Len(t, results, 3)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["total_products"])
	assert.NotEmpty(t, body["recommendations"])
}

func TestMarketDataEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/market-data/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/market-data/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["market_data"], 5, "one snapshot per seeded insurer")

	rec, body = doJSON(t, srv, http.MethodGet, "/api/market-data/insurer/1?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["market_data"], 1)

	rec, body = doJSON(t, srv, http.MethodGet, "/api/market-data/trends/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["observations"])
	assert.NotEmpty(t, body["rating"])

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/market-data/trends/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportEndpoints(t *testing.T) {
	srv := newTestServer(t)
	customerID := createCustomer(t, srv)

	rec, _ := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/customers/%d/reports", customerID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no analysis on file yet")

	_, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/customers/%d/needs-analysis", customerID), nil)

	rec, body := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/customers/%d/reports", customerID), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reference := body["reference"].(string)
	require.NotEmpty(t, reference)

	rec, body = doJSON(t, srv, http.MethodGet, "/api/reports/"+reference, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reference, body["reference"])

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/reports/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodGet, "/api/customers/9999/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/api/customers/9999/recommendations/generate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
