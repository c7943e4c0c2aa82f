package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApplyDefaults_OmittedRates(t *testing.T) {
	var p CustomerProfile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","age":30}`), &p))
	p.ApplyDefaults()

	assert.Equal(t, "6", p.InflationRate.String())
	assert.Equal(t, "8", p.ReturnRate.String())
	assert.Equal(t, RiskMedium, p.RiskAppetite)
}

func TestApplyDefaults_ExplicitZeroRatePreserved(t *testing.T) {
	var p CustomerProfile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","age":30,"inflation_rate":"0","return_rate":"8"}`), &p))
	p.ApplyDefaults()

	assert.True(t, p.InflationRate.IsZero(), "explicit zero inflation kept")
	assert.Equal(t, "8", p.ReturnRate.String())
}

func TestApplyDefaults_YAMLExplicitZero(t *testing.T) {
	var p CustomerProfile
	require.NoError(t, yaml.Unmarshal([]byte("name: A\nage: 30\ninflation_rate: 0\n"), &p))
	p.ApplyDefaults()

	assert.True(t, p.InflationRate.IsZero())
	assert.Equal(t, "8", p.ReturnRate.String(), "omitted return still defaults")
}

func TestApplyDefaults_ZeroValueStruct(t *testing.T) {
	var p CustomerProfile
	p.ApplyDefaults()

	assert.Equal(t, "6", p.InflationRate.String())
	assert.Equal(t, "8", p.ReturnRate.String())
}
