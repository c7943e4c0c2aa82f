// Package output renders CLI results as console text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/recommend"
	"github.com/shopspring/decimal"
)

// ReportGenerator handles result rendering in various formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Render writes any result as JSON, or dispatches to the console renderers
// for the known result types.
func (rg *ReportGenerator) Render(result any, format string) error {
	switch format {
	case "json":
		return rg.renderJSON(result)
	case "console", "":
		switch v := result.(type) {
		case *domain.NeedsResult:
			rg.ConsoleNeeds(v)
		case *domain.ProductComparison:
			rg.ConsoleComparison(v)
		case []domain.Recommendation:
			rg.ConsoleRecommendations(v)
		default:
			return rg.renderJSON(result)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (rg *ReportGenerator) renderJSON(result any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ConsoleNeeds prints a needs analysis breakdown.
func (rg *ReportGenerator) ConsoleNeeds(result *domain.NeedsResult) {
	fmt.Println("======================================================")
	fmt.Println("INSURANCE NEEDS ANALYSIS")
	fmt.Println("======================================================")
	fmt.Println()
	fmt.Printf("Human Life Value:          %s\n", FormatCurrency(result.HumanLifeValue))
	fmt.Println()
	fmt.Printf("Income Replacement:        %s\n", FormatCurrency(result.IncomeReplacementNeeds))
	fmt.Printf("Family Expenses:           %s\n", FormatCurrency(result.FamilyExpenses))
	fmt.Printf("Debt Obligations:          %s\n", FormatCurrency(result.DebtObligations))
	fmt.Printf("Children's Education:      %s\n", FormatCurrency(result.ChildrenEducationNeeds))
	fmt.Printf("Retirement Corpus:         %s\n", FormatCurrency(result.RetirementNeeds))
	fmt.Printf("Emergency Fund:            %s\n", FormatCurrency(result.EmergencyFundNeeds))
	fmt.Println(strings.Repeat("-", 54))
	fmt.Printf("Total Insurance Needs:     %s\n", FormatCurrency(result.TotalInsuranceNeeds))
	fmt.Printf("Existing Coverage:         %s\n", FormatCurrency(result.ExistingCoverage))
	fmt.Printf("Additional Cover Needed:   %s\n", FormatCurrency(result.AdditionalCoverageNeeded))
	fmt.Println()
}

// ConsoleComparison prints a scored product comparison.
func (rg *ReportGenerator) ConsoleComparison(comparison *domain.ProductComparison) {
	fmt.Println("======================================================")
	fmt.Println("PRODUCT COMPARISON")
	fmt.Println("======================================================")
	fmt.Println()

	for i, r := range comparison.Results {
		fmt.Printf("%d. %s (%s)\n", i+1, r.ProductName, r.InsurerName)
		fmt.Printf("   Score:          %s/20\n", r.RecommendationScore.StringFixed(2))
		fmt.Printf("   Annual Premium: %s  (%s per 1000 cover)\n",
			FormatCurrency(r.PremiumAmount), r.PremiumRatePer1000.StringFixed(2))
		fmt.Printf("   Claim Ratio:    %s%%   Rating: %s/5\n",
			r.ClaimSettlementRatio.String(), r.Rating.String())
		if len(r.Features) > 0 {
			fmt.Printf("   Features:       %s\n", strings.Join(r.Features, ", "))
		}
		fmt.Println()
	}

	summary := comparison.Summary
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("-", 54))
	fmt.Printf("Products Compared:  %d\n", summary.TotalProducts)
	fmt.Printf("Premium Range:      %s - %s\n", FormatCurrency(summary.MinPremium), FormatCurrency(summary.MaxPremium))
	fmt.Printf("Average Premium:    %s\n", FormatCurrency(summary.AveragePremium))
	fmt.Printf("Best Value:         %s\n", summary.BestValueProduct)
	fmt.Printf("Lowest Premium:     %s\n", summary.LowestPremiumProduct)
	fmt.Println()

	if len(comparison.Recommendations) > 0 {
		fmt.Println("GUIDANCE")
		fmt.Println(strings.Repeat("-", 54))
		for _, line := range comparison.Recommendations {
			fmt.Printf("- %s\n", line)
		}
		fmt.Println()
	}
}

// ConsoleRecommendations prints generated recommendations.
func (rg *ReportGenerator) ConsoleRecommendations(recs []domain.Recommendation) {
	fmt.Println("======================================================")
	fmt.Println("RECOMMENDED PRODUCTS")
	fmt.Println("======================================================")
	fmt.Println()

	if len(recs) == 0 {
		fmt.Println("No eligible products for this profile.")
		return
	}

	for i, r := range recs {
		name := r.ProductName
		if name == "" {
			name = fmt.Sprintf("Product %d", r.ProductID)
		}
		fmt.Printf("%d. %s [%s priority]\n", i+1, name, r.Priority)
		fmt.Printf("   Sum Assured:    %s\n", FormatCurrency(r.SumAssured))
		fmt.Printf("   Annual Premium: %s for %d years\n", FormatCurrency(r.PremiumAmount), r.PolicyTerm)
		fmt.Printf("   %s\n", r.Reasoning)
		fmt.Println()
	}
}

// FormatCurrency renders a rupee amount with thousands separators.
func FormatCurrency(d decimal.Decimal) string {
	return "₹" + recommend.FormatAmount(d)
}
