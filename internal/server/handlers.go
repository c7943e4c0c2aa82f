package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/coverwise/coverwise/internal/calculation"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/report"
	"github.com/coverwise/coverwise/internal/store"
)

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "coverwise",
	})
}

func (s *Server) handleListInsurers(w http.ResponseWriter, r *http.Request) {
	insurers, err := s.cfg.Insurers.List()
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"insurers": insurers})
}

func (s *Server) handleGetInsurer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	ins, err := s.cfg.Insurers.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "insurer not found")
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ins)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{
		ProductType: domain.ProductType(r.URL.Query().Get("product_type")),
		ActiveOnly:  r.URL.Query().Get("include_inactive") == "",
	}
	if v := r.URL.Query().Get("insurer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid insurer_id")
			return
		}
		filter.InsurerID = id
	}

	products, err := s.cfg.Products.List(filter)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	p, err := s.cfg.Products.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.cfg.Customers.List()
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var profile domain.CustomerProfile
	if !s.decodeBody(w, r, &profile) {
		return
	}
	if profile.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if profile.Age < 0 {
		s.writeError(w, http.StatusBadRequest, "age must not be negative")
		return
	}

	id, err := s.cfg.Customers.Insert(&profile)
	if err != nil {
		s.serverError(w, err)
		return
	}
	profile.ID = id
	s.writeJSON(w, http.StatusCreated, &profile)
}

// handleUpdateCustomer applies a partial update: the request body is decoded
// over the stored profile, so omitted fields keep their current values.
func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customer, ok := s.loadCustomer(w, r)
	if !ok {
		return
	}

	id := customer.ID
	if !s.decodeBody(w, r, customer) {
		return
	}
	customer.ID = id
	if customer.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if customer.Age < 0 {
		s.writeError(w, http.StatusBadRequest, "age must not be negative")
		return
	}
	customer.ApplyDefaults()

	if err := s.cfg.Customers.Update(customer); err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, ok := s.loadCustomer(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, customer)
}

// handleRunNeedsAnalysis computes and stores a needs analysis for a stored
// customer. Re-running replaces the previous analysis.
func (s *Server) handleRunNeedsAnalysis(w http.ResponseWriter, r *http.Request) {
	customer, ok := s.loadCustomer(w, r)
	if !ok {
		return
	}

	result := calculation.ComputeNeeds(customer)
	if err := s.cfg.Needs.Save(&result); err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, &result)
}

func (s *Server) handleGetNeedsAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	result, err := s.cfg.Needs.ForCustomer(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no needs analysis for customer")
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleGenerateRecommendations runs the recommendation engine for a stored
// customer. The operation is idempotent on (customer, product): re-running
// returns the same set without duplicating rows, and products recommended by
// a concurrent run are simply absorbed.
func (s *Server) handleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	customer, ok := s.loadCustomer(w, r)
	if !ok {
		return
	}

	needs, err := s.cfg.Needs.ForCustomer(customer.ID)
	if errors.Is(err, store.ErrNotFound) {
		// No stored analysis yet; run one on the fly.
		computed := calculation.ComputeNeeds(customer)
		if err := s.cfg.Needs.Save(&computed); err != nil {
			s.serverError(w, err)
			return
		}
		needs = &computed
	} else if err != nil {
		s.serverError(w, err)
		return
	}

	catalogue, err := s.cfg.Products.List(store.ProductFilter{ActiveOnly: true})
	if err != nil {
		s.serverError(w, err)
		return
	}

	existing, err := s.cfg.Recommendations.ExistingProductIDs(customer.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}

	generated := s.cfg.Recommender.Generate(customer.ID, customer, needs, catalogue, existing)
	var inserted int
	for i := range generated {
		ok, err := s.cfg.Recommendations.InsertIfAbsent(&generated[i])
		if err != nil {
			s.serverError(w, err)
			return
		}
		if ok {
			inserted++
		}
	}

	recs, err := s.cfg.Recommendations.ForCustomer(customer.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.log.Info().
		Int64("customer_id", customer.ID).
		Int("generated", len(generated)).
		Int("inserted", inserted).
		Msg("Recommendations generated")
	s.writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": recs,
		"newly_added":     inserted,
	})
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	recs, err := s.cfg.Recommendations.ForCustomer(id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// compareRequest selects stored products and the cover to price them at.
// Customer may be given inline or by id.
type compareRequest struct {
	ProductIDs []int64                 `json:"product_ids"`
	CustomerID int64                   `json:"customer_id"`
	Customer   *domain.CustomerProfile `json:"customer"`
	SumAssured decimal.Decimal         `json:"sum_assured"`
	PolicyTerm int                     `json:"policy_term"`
}

func (s *Server) handleCompareProducts(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.ProductIDs) == 0 {
		s.writeError(w, http.StatusBadRequest, "product_ids is required")
		return
	}

	profile := req.Customer
	if profile == nil {
		if req.CustomerID == 0 {
			s.writeError(w, http.StatusBadRequest, "customer or customer_id is required")
			return
		}
		stored, err := s.cfg.Customers.GetByID(req.CustomerID)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		if err != nil {
			s.serverError(w, err)
			return
		}
		profile = stored
	}
	profile.ApplyDefaults()

	if req.SumAssured.IsZero() {
		req.SumAssured = decimal.NewFromInt(1000000)
	}
	if req.PolicyTerm == 0 {
		req.PolicyTerm = 20
	}

	products, err := s.cfg.Products.GetByIDs(req.ProductIDs)
	if err != nil {
		s.serverError(w, err)
		return
	}

	comparison := s.cfg.Comparer.CompareProducts(products, profile, req.SumAssured, req.PolicyTerm)
	s.writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	rep, err := s.cfg.Reports.GenerateAdvisory(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	if errors.Is(err, report.ErrNoAnalysis) {
		s.writeError(w, http.StatusNotFound, "no needs analysis for customer")
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	rep, err := s.cfg.Reports.GetByReference(reference)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	reports, err := s.cfg.Reports.ListForCustomer(id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) handleMarketLatest(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.cfg.Market.Latest()
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"market_data": snapshots})
}

func (s *Server) handleMarketForInsurer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	snapshots, err := s.cfg.Market.ForInsurer(id, limit)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"market_data": snapshots})
}

func (s *Server) handleMarketTrends(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	snapshots, err := s.cfg.Market.ForInsurer(id, 30)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(snapshots) == 0 {
		s.writeError(w, http.StatusNotFound, "no market data for insurer")
		return
	}

	// ForInsurer returns newest first.
	latest := snapshots[0]
	oldest := snapshots[len(snapshots)-1]
	s.writeJSON(w, http.StatusOK, map[string]any{
		"insurer_id":                     id,
		"observations":                   len(snapshots),
		"from":                           oldest.Date,
		"to":                             latest.Date,
		"claim_settlement_ratio":         latest.ClaimSettlementRatio,
		"claim_settlement_ratio_change":  latest.ClaimSettlementRatio.Sub(oldest.ClaimSettlementRatio),
		"rating":                         latest.Rating,
		"rating_change":                  latest.Rating.Sub(oldest.Rating),
		"market_share":                   latest.MarketShare,
		"market_share_change":            latest.MarketShare.Sub(oldest.MarketShare),
		"customer_satisfaction":          latest.CustomerSatisfaction,
		"customer_satisfaction_change":   latest.CustomerSatisfaction.Sub(oldest.CustomerSatisfaction),
	})
}

func (s *Server) handleMarketRefresh(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MarketRefresh == nil {
		s.writeError(w, http.StatusServiceUnavailable, "market refresh not configured")
		return
	}
	if err := s.cfg.MarketRefresh.Run(); err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// loadCustomer resolves the {id} path parameter to a stored customer,
// writing the error response itself on failure.
func (s *Server) loadCustomer(w http.ResponseWriter, r *http.Request) (*domain.CustomerProfile, bool) {
	id, ok := s.pathID(w, r)
	if !ok {
		return nil, false
	}
	customer, err := s.cfg.Customers.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "customer not found")
		return nil, false
	}
	if err != nil {
		s.serverError(w, err)
		return nil, false
	}
	return customer, true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("Request failed")
	s.writeError(w, http.StatusInternalServerError, "internal error")
}
