// Package config loads and validates the YAML inputs (customer profiles and
// the product catalogue) and the service runtime configuration.
package config

import (
	"fmt"
	"os"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// ProfileInput is the on-disk shape of a customer profile file.
type ProfileInput struct {
	Customer domain.CustomerProfile `yaml:"customer"`
}

// CatalogueInput is the on-disk shape of a product catalogue file.
type CatalogueInput struct {
	Insurers []domain.Insurer `yaml:"insurers"`
	Products []domain.Product `yaml:"products"`
}

// LoadProfile loads and validates a customer profile from a YAML file,
// applying the default market assumptions for missing rates.
func (ip *InputParser) LoadProfile(filename string) (*domain.CustomerProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input ProfileInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	profile := input.Customer
	profile.ApplyDefaults()

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// LoadCatalogue loads and validates a product catalogue from a YAML file.
// Products referencing an insurer by id get the insurer record attached.
func (ip *InputParser) LoadCatalogue(filename string) (*CatalogueInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input CatalogueInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	insurersByID := make(map[int64]domain.Insurer, len(input.Insurers))
	for _, ins := range input.Insurers {
		insurersByID[ins.ID] = ins
	}

	for i := range input.Products {
		p := &input.Products[i]
		if p.Insurer.Name == "" && p.InsurerID != 0 {
			ins, ok := insurersByID[p.InsurerID]
			if !ok {
				return nil, fmt.Errorf("product %q references unknown insurer id %d", p.Name, p.InsurerID)
			}
			p.Insurer = ins
		}
		if err := ip.validateProduct(i, p); err != nil {
			return nil, fmt.Errorf("catalogue validation failed: %w", err)
		}
	}
	return &input, nil
}

// ValidateProfile checks that a profile is inside the engine's precondition
// contracts. The engine itself does not re-validate.
func (ip *InputParser) ValidateProfile(profile *domain.CustomerProfile) error {
	if profile.Age < 0 {
		return fmt.Errorf("age must not be negative, got %d", profile.Age)
	}
	if profile.AnnualIncome.IsNegative() {
		return fmt.Errorf("annual income must not be negative, got %s", profile.AnnualIncome)
	}
	if profile.ExistingCoverage.IsNegative() {
		return fmt.Errorf("existing coverage must not be negative, got %s", profile.ExistingCoverage)
	}
	if profile.Dependents < 0 {
		return fmt.Errorf("dependents must not be negative, got %d", profile.Dependents)
	}

	switch profile.Gender {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		return fmt.Errorf("unknown gender %q", profile.Gender)
	}

	switch profile.RiskAppetite {
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh, "":
	default:
		return fmt.Errorf("unknown risk appetite %q", profile.RiskAppetite)
	}

	if err := validateRate("inflation rate", profile.InflationRate); err != nil {
		return err
	}
	if err := validateRate("return rate", profile.ReturnRate); err != nil {
		return err
	}
	return nil
}

// validateRate caps percent rates to a sane window. Deflation is allowed.
func validateRate(name string, rate decimal.Decimal) error {
	if rate.LessThan(decimal.NewFromInt(-10)) || rate.GreaterThan(decimal.NewFromInt(50)) {
		return fmt.Errorf("%s must be between -10%% and 50%%, got %s%%", name, rate)
	}
	return nil
}

func (ip *InputParser) validateProduct(i int, p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product %d has no name", i)
	}
	if p.MinAge > p.MaxAge {
		return fmt.Errorf("product %q: min age %d exceeds max age %d", p.Name, p.MinAge, p.MaxAge)
	}
	if p.MinSumAssured.GreaterThan(p.MaxSumAssured) {
		return fmt.Errorf("product %q: min sum assured %s exceeds max %s", p.Name, p.MinSumAssured, p.MaxSumAssured)
	}
	if p.MinSumAssured.IsNegative() {
		return fmt.Errorf("product %q: negative sum assured", p.Name)
	}
	return nil
}
