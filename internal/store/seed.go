package store

import (
	"fmt"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type seedInsurer struct {
	insurer  domain.Insurer
	products []domain.Product
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedData is the starter catalogue: the major Indian life insurers with
// their published claim settlement ratios and a representative product each.
func seedData() []seedInsurer {
	return []seedInsurer{
		{
			insurer: domain.Insurer{
				Name:                 "LIC of India",
				Website:              "https://www.licindia.in",
				CustomerCare:         "022-68276827",
				ClaimSettlementRatio: d("98.31"),
				SolvencyRatio:        d("1.76"),
				EstablishedYear:      1956,
				Headquarters:         "Mumbai",
				Rating:               d("4.5"),
				RatingAgency:         "CRISIL",
			},
			products: []domain.Product{
				{
					Name:        "LIC Jeevan Anand",
					ProductType: domain.ProductEndowment,
					Description: "Participating endowment plan with whole life cover after maturity",
					Features:    []string{"Death benefit", "Maturity benefit", "Bonus participation"},
					Benefits:    []string{"Tax benefits under 80C", "Loan facility"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 50,
					MinSumAssured: d("100000"), MaxSumAssured: d("50000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{15, 20, 25, 30},
					IsActive:          true,
				},
				{
					Name:        "LIC Tech Term",
					ProductType: domain.ProductTermLife,
					Description: "Pure protection online term plan",
					Features:    []string{"Death benefit", "Level or increasing cover"},
					Benefits:    []string{"Low premium for high cover"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 65,
					MinSumAssured: d("5000000"), MaxSumAssured: d("100000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20, 25, 30, 35, 40},
					IsActive:          true,
				},
			},
		},
		{
			insurer: domain.Insurer{
				Name:                 "HDFC Life",
				Website:              "https://www.hdfclife.com",
				CustomerCare:         "1860-267-9999",
				ClaimSettlementRatio: d("99.04"),
				SolvencyRatio:        d("1.87"),
				EstablishedYear:      2000,
				Headquarters:         "Mumbai",
				Rating:               d("4.3"),
				RatingAgency:         "ICRA",
			},
			products: []domain.Product{
				{
					Name:        "HDFC Click 2 Protect Life",
					ProductType: domain.ProductTermLife,
					Description: "Online term plan with multiple payout options",
					Features:    []string{"Death benefit", "Income payout option", "Return of premium option"},
					Benefits:    []string{"Waiver of premium on disability"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 65,
					MinSumAssured: d("2500000"), MaxSumAssured: d("200000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20, 25, 30, 35, 40},
					IsActive:          true,
				},
				{
					Name:        "HDFC Click 2 Wealth",
					ProductType: domain.ProductULIP,
					Description: "Unit linked plan with fund switching",
					Features:    []string{"Market linked returns", "Fund switching", "Partial withdrawal"},
					Benefits:    []string{"Return of mortality charges at maturity"},
					Exclusions:  []string{"Market risk borne by policyholder"},
					MinAge:      18, MaxAge: 60,
					MinSumAssured: d("250000"), MaxSumAssured: d("50000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20},
					IsActive:          true,
				},
			},
		},
		{
			insurer: domain.Insurer{
				Name:                 "ICICI Prudential",
				Website:              "https://www.iciciprulife.com",
				CustomerCare:         "1860-266-7766",
				ClaimSettlementRatio: d("98.58"),
				SolvencyRatio:        d("2.04"),
				EstablishedYear:      2000,
				Headquarters:         "Mumbai",
				Rating:               d("4.4"),
				RatingAgency:         "CRISIL",
			},
			products: []domain.Product{
				{
					Name:        "ICICI Pru iProtect Smart",
					ProductType: domain.ProductTermLife,
					Description: "Term plan with critical illness and accidental death riders",
					Features:    []string{"Death benefit", "Critical illness rider", "Accidental death rider"},
					Benefits:    []string{"Terminal illness payout"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 65,
					MinSumAssured: d("2500000"), MaxSumAssured: d("150000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20, 25, 30},
					IsActive:          true,
				},
				{
					Name:        "ICICI Pru Signature",
					ProductType: domain.ProductULIP,
					Description: "Whole life unit linked plan",
					Features:    []string{"Market linked returns", "Whole life cover option"},
					Benefits:    []string{"Systematic withdrawal plan"},
					Exclusions:  []string{"Market risk borne by policyholder"},
					MinAge:      18, MaxAge: 60,
					MinSumAssured: d("300000"), MaxSumAssured: d("60000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20, 25},
					IsActive:          true,
				},
			},
		},
		{
			insurer: domain.Insurer{
				Name:                 "SBI Life",
				Website:              "https://www.sbilife.co.in",
				CustomerCare:         "1800-267-9090",
				ClaimSettlementRatio: d("98.03"),
				SolvencyRatio:        d("2.05"),
				EstablishedYear:      2001,
				Headquarters:         "Mumbai",
				Rating:               d("4.2"),
				RatingAgency:         "CARE",
			},
			products: []domain.Product{
				{
					Name:        "SBI Life Smart Shield",
					ProductType: domain.ProductTermLife,
					Description: "Traditional term plan with level and increasing cover",
					Features:    []string{"Death benefit", "Increasing cover option"},
					Benefits:    []string{"Discount for non-smokers"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 60,
					MinSumAssured: d("2500000"), MaxSumAssured: d("100000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20, 25, 30},
					IsActive:          true,
				},
				{
					Name:        "SBI Life Shubh Nivesh",
					ProductType: domain.ProductEndowment,
					Description: "Endowment plan with optional whole life cover",
					Features:    []string{"Maturity benefit", "Deferred maturity payout"},
					Benefits:    []string{"Simple reversionary bonus"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 58,
					MinSumAssured: d("75000"), MaxSumAssured: d("40000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{15, 20, 25},
					IsActive:          true,
				},
			},
		},
		{
			insurer: domain.Insurer{
				Name:                 "Max Life",
				Website:              "https://www.maxlifeinsurance.com",
				CustomerCare:         "1860-120-5577",
				ClaimSettlementRatio: d("99.34"),
				SolvencyRatio:        d("1.90"),
				EstablishedYear:      2000,
				Headquarters:         "New Delhi",
				Rating:               d("4.1"),
				RatingAgency:         "ICRA",
			},
			products: []domain.Product{
				{
					Name:        "Max Life Smart Secure Plus",
					ProductType: domain.ProductTermLife,
					Description: "Term plan with premium break and special exit value",
					Features:    []string{"Death benefit", "Premium break option", "Special exit value"},
					Benefits:    []string{"Joint life cover option"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 65,
					MinSumAssured: d("2000000"), MaxSumAssured: d("100000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20, 25, 30, 35},
					IsActive:          true,
				},
				{
					Name:        "Max Life Smart Wealth Plan",
					ProductType: domain.ProductMoneyBack,
					Description: "Savings plan with guaranteed money back payouts",
					Features:    []string{"Guaranteed payouts", "Maturity benefit"},
					Benefits:    []string{"Guaranteed additions"},
					Exclusions:  []string{"Suicide within 12 months"},
					MinAge:      18, MaxAge: 55,
					MinSumAssured: d("200000"), MaxSumAssured: d("20000000"),
					PremiumFrequency:  "yearly",
					PolicyTermOptions: []int{10, 15, 20},
					IsActive:          true,
				},
			},
		},
	}
}

// Seeder populates an empty database with the starter catalogue.
type Seeder struct {
	insurers *InsurerRepository
	products *ProductRepository
	log      zerolog.Logger
}

// NewSeeder creates a seeder over the catalogue repositories.
func NewSeeder(insurers *InsurerRepository, products *ProductRepository, log zerolog.Logger) *Seeder {
	return &Seeder{
		insurers: insurers,
		products: products,
		log:      log.With().Str("component", "seeder").Logger(),
	}
}

// Run seeds the catalogue. A database that already has products is left
// untouched so restarts do not duplicate the catalogue.
func (s *Seeder) Run() error {
	count, err := s.products.Count()
	if err != nil {
		return fmt.Errorf("failed to check catalogue: %w", err)
	}
	if count > 0 {
		s.log.Debug().Int("products", count).Msg("Catalogue already seeded")
		return nil
	}

	var productCount int
	for _, entry := range seedData() {
		insurerID, err := s.insurers.Insert(&entry.insurer)
		if err != nil {
			return err
		}
		for i := range entry.products {
			p := &entry.products[i]
			p.InsurerID = insurerID
			if _, err := s.products.Insert(p); err != nil {
				return err
			}
			productCount++
		}
	}

	s.log.Info().
		Int("insurers", len(seedData())).
		Int("products", productCount).
		Msg("Catalogue seeded")
	return nil
}
