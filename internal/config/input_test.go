package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coverwise/coverwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validProfile = `
customer:
  name: Ravi Kumar
  age: 30
  gender: male
  annual_income: 1200000
  family_size: 4
  dependents: 2
  existing_coverage: 1000000
  risk_appetite: medium
  debt_obligations: 500000
`

func TestLoadProfile(t *testing.T) {
	parser := NewInputParser()
	profile, err := parser.LoadProfile(writeTemp(t, validProfile))
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", profile.Name)
	assert.Equal(t, 30, profile.Age)
	assert.Equal(t, domain.GenderMale, profile.Gender)
	assert.Equal(t, "1200000", profile.AnnualIncome.String())
	assert.Equal(t, "6", profile.InflationRate.String(), "default inflation applied")
	assert.Equal(t, "8", profile.ReturnRate.String(), "default return applied")
}

func TestLoadProfile_ExplicitRatesKept(t *testing.T) {
	parser := NewInputParser()
	profile, err := parser.LoadProfile(writeTemp(t, validProfile+`
  inflation_rate: 4.5
  return_rate: 11
`))
	require.NoError(t, err)
	assert.Equal(t, "4.5", profile.InflationRate.String())
	assert.Equal(t, "11", profile.ReturnRate.String())
}

func TestLoadProfile_Invalid(t *testing.T) {
	parser := NewInputParser()

	cases := []struct {
		name string
		yaml string
	}{
		{"negative age", "customer:\n  name: X\n  age: -1\n  gender: male\n"},
		{"negative income", "customer:\n  name: X\n  age: 30\n  gender: male\n  annual_income: -100\n"},
		{"unknown gender", "customer:\n  name: X\n  age: 30\n  gender: unknown\n"},
		{"unknown risk appetite", "customer:\n  name: X\n  age: 30\n  gender: male\n  risk_appetite: wild\n"},
		{"absurd inflation", "customer:\n  name: X\n  age: 30\n  gender: male\n  inflation_rate: 90\n"},
		{"not yaml", "customer: [unclosed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.LoadProfile(writeTemp(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

const validCatalogue = `
insurers:
  - id: 1
    name: Acme Life
    claim_settlement_ratio: 98.5
    rating: 4.5
products:
  - id: 10
    name: Shield Term Plan
    insurer_id: 1
    product_type: term_life
    min_age: 18
    max_age: 65
    min_sum_assured: 500000
    max_sum_assured: 20000000
    is_active: true
`

func TestLoadCatalogue(t *testing.T) {
	parser := NewInputParser()
	catalogue, err := parser.LoadCatalogue(writeTemp(t, validCatalogue))
	require.NoError(t, err)

	require.Len(t, catalogue.Products, 1)
	p := catalogue.Products[0]
	assert.Equal(t, "Acme Life", p.Insurer.Name, "insurer resolved by id")
	assert.True(t, p.Insurer.Rating.Equal(decimal.NewFromFloat(4.5)))
	assert.True(t, p.EligibleAt(30))
}

func TestLoadCatalogue_UnknownInsurer(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadCatalogue(writeTemp(t, `
products:
  - name: Orphan Plan
    insurer_id: 99
    product_type: term_life
    min_age: 18
    max_age: 65
    min_sum_assured: 100000
    max_sum_assured: 1000000
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown insurer")
}

func TestLoadCatalogue_InvalidBounds(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadCatalogue(writeTemp(t, `
insurers:
  - id: 1
    name: Acme Life
products:
  - name: Backwards Plan
    insurer_id: 1
    product_type: term_life
    min_age: 65
    max_age: 18
    min_sum_assured: 100000
    max_sum_assured: 1000000
`))
	assert.Error(t, err)
}
