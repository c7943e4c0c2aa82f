package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/coverwise/coverwise/internal/calculation"
	"github.com/coverwise/coverwise/internal/domain"
)

// handleCalculatorNeeds runs a stateless needs analysis on an inline
// profile. Nothing is persisted.
func (s *Server) handleCalculatorNeeds(w http.ResponseWriter, r *http.Request) {
	var profile domain.CustomerProfile
	if !s.decodeBody(w, r, &profile) {
		return
	}
	if profile.Age < 0 || profile.AnnualIncome.IsNegative() {
		s.writeError(w, http.StatusBadRequest, "age and annual_income must not be negative")
		return
	}
	profile.ApplyDefaults()

	result := calculation.ComputeNeeds(&profile)
	s.writeJSON(w, http.StatusOK, &result)
}

type premiumRequest struct {
	Age         int                `json:"age"`
	Gender      domain.Gender      `json:"gender"`
	SumAssured  decimal.Decimal    `json:"sum_assured"`
	PolicyTerm  int                `json:"policy_term"`
	ProductType domain.ProductType `json:"product_type"`
}

func (s *Server) handleCalculatorPremium(w http.ResponseWriter, r *http.Request) {
	var req premiumRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.SumAssured.IsNegative() || req.Age < 0 || req.PolicyTerm < 0 {
		s.writeError(w, http.StatusBadRequest, "age, sum_assured and policy_term must not be negative")
		return
	}

	premium := s.cfg.Recommender.Estimator.Estimate(req.Age, req.Gender, req.SumAssured, req.PolicyTerm, req.ProductType)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"premium_amount":        premium,
		"premium_rate_per_1000": calculation.RatePer1000(premium, req.SumAssured),
	})
}

// projectionRequest drives the investment projection calculator. Amount is
// the principal for lumpsum projections and the monthly contribution for SIP
// projections. Rates are percentages; pointers distinguish an omitted rate,
// which gets the standard default, from an explicit zero.
type projectionRequest struct {
	InvestmentType string           `json:"investment_type"`
	Amount         decimal.Decimal  `json:"amount"`
	ReturnRate     *decimal.Decimal `json:"return_rate"`
	InflationRate  *decimal.Decimal `json:"inflation_rate"`
	Years          int              `json:"years"`
	StepUpRate     *decimal.Decimal `json:"step_up_rate"`

	// Optional lumpsum seed for the yearly breakdown.
	InitialInvestment decimal.Decimal `json:"initial_investment"`
	YearlyBreakdown   bool            `json:"yearly_breakdown"`
}

func rateOrDefault(rate *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return fallback
	}
	return *rate
}

func (s *Server) handleCalculatorProjections(w http.ResponseWriter, r *http.Request) {
	var req projectionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Years <= 0 {
		s.writeError(w, http.StatusBadRequest, "years must be positive")
		return
	}
	if req.Amount.IsNegative() {
		s.writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	returnRate := rateOrDefault(req.ReturnRate, domain.DefaultReturnRate)
	inflationRate := rateOrDefault(req.InflationRate, domain.DefaultInflationRate)
	stepUpRate := rateOrDefault(req.StepUpRate, domain.DefaultStepUpRate)

	response := map[string]any{
		"investment_type": req.InvestmentType,
		"years":           req.Years,
	}

	switch req.InvestmentType {
	case "lumpsum":
		response["projection"] = calculation.InflationAdjustedReturns(req.Amount, returnRate, inflationRate, req.Years)
	case "sip":
		response["projection"] = calculation.SIPReturns(req.Amount, returnRate, inflationRate, req.Years)
	case "step_up_sip":
		response["projection"] = calculation.StepUpSIPReturns(req.Amount, returnRate, inflationRate, req.Years, stepUpRate)
	default:
		s.writeError(w, http.StatusBadRequest, "investment_type must be lumpsum, sip or step_up_sip")
		return
	}

	if req.YearlyBreakdown {
		initial, monthly := req.InitialInvestment, req.Amount
		if req.InvestmentType == "lumpsum" {
			initial, monthly = req.Amount, decimal.Zero
		}
		response["yearly_breakdown"] = calculation.YearlyBreakdown(
			initial, monthly, returnRate, inflationRate, req.Years)
	}

	s.writeJSON(w, http.StatusOK, response)
}
