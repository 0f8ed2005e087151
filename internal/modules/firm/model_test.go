package firm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcipher/internal/types"
)

func TestSlugID(t *testing.T) {
	tests := []struct {
		name string
		want types.ID
	}{
		{"Sedgwick", "sedgwick"},
		{"  ACD ", "acd"},
		{"Crawford & Company", "crawford___company"},
		{"Firm 42", "firm_42"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugID(tt.name))
		})
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("Sedgwick", 50, 0.67, true)
	require.NoError(t, err)
	assert.Equal(t, Policy{ID: "sedgwick", Name: "Sedgwick", FreeMiles: 50, RatePerMile: 0.67, RoundTripDefault: true}, p)

	p, err = NewPolicy("Zero Free", 0, 0.5, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.FreeMiles)
}

func TestNewPolicy_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		firmName  string
		freeMiles float64
		rate      float64
		field     string
	}{
		{"empty name", "", 10, 0.5, "name"},
		{"name without letters", "&&", 10, 0.5, "name"},
		{"negative free miles", "X", -1, 0.5, "free_miles"},
		{"NaN free miles", "X", math.NaN(), 0.5, "free_miles"},
		{"zero rate", "X", 10, 0, "rate_per_mile"},
		{"negative rate", "X", 10, -0.1, "rate_per_mile"},
		{"infinite rate", "X", 10, math.Inf(1), "rate_per_mile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.firmName, tt.freeMiles, tt.rate, false)
			require.Error(t, err)
			var verr types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDefaultPoliciesAreValid(t *testing.T) {
	for _, p := range DefaultPolicies() {
		assert.NoError(t, p.Validate(), p.ID)
	}
}
