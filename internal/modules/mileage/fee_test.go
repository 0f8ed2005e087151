package mileage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcipher/internal/modules/firm"
	"claimcipher/internal/types"
)

var sedgwick = firm.Policy{ID: "sedgwick", Name: "Sedgwick", FreeMiles: 50, RatePerMile: 0.67, RoundTripDefault: true}

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		roundTrip bool
		want      Fee
	}{
		{"round trip over allowance", 40, true, Fee{BaseMiles: 80, BillableMiles: 30, Amount: 20.10}},
		{"one way under allowance", 20, false, Fee{BaseMiles: 20, BillableMiles: 0, Amount: 0}},
		{"exactly the allowance", 25, true, Fee{BaseMiles: 50, BillableMiles: 0, Amount: 0}},
		{"fractional distance", 60.04, false, Fee{BaseMiles: 60, BillableMiles: 10, Amount: 6.70}},
		{"rounds base to one decimal", 60.06, false, Fee{BaseMiles: 60.1, BillableMiles: 10.1, Amount: 6.77}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFee(&sedgwick, tt.distance, tt.roundTrip)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.BaseMiles, got.BaseMiles, 1e-9)
			assert.InDelta(t, tt.want.BillableMiles, got.BillableMiles, 1e-9)
			assert.InDelta(t, tt.want.Amount, got.Amount, 1e-9)
		})
	}
}

func TestComputeFee_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		policy   *firm.Policy
		distance float64
		field    string
	}{
		{"no firm selected", nil, 10, "firm_id"},
		{"zero distance", &sedgwick, 0, "distance_miles"},
		{"negative distance", &sedgwick, -4, "distance_miles"},
		{"NaN distance", &sedgwick, math.NaN(), "distance_miles"},
		{"infinite distance", &sedgwick, math.Inf(1), "distance_miles"},
		{"zero rate policy", &firm.Policy{FreeMiles: 1, RatePerMile: 0}, 10, "rate_per_mile"},
		{"negative free miles policy", &firm.Policy{FreeMiles: -1, RatePerMile: 1}, 10, "free_miles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeFee(tt.policy, tt.distance, false)
			var verr types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestComputeFee_Laws(t *testing.T) {
	policies := []firm.Policy{
		sedgwick,
		{ID: "acd", FreeMiles: 30, RatePerMile: 0.60},
		{ID: "none", FreeMiles: 0, RatePerMile: 1.25},
		{ID: "huge", FreeMiles: 1e6, RatePerMile: 0.5},
	}
	for _, p := range policies {
		p := p
		for _, rt := range []bool{false, true} {
			prev := -1.0
			for d := 0.1; d < 400; d += 0.7 {
				got, err := ComputeFee(&p, d, rt)
				require.NoError(t, err)

				// clamping
				assert.GreaterOrEqual(t, got.BillableMiles, 0.0)
				// monotonic in distance
				assert.GreaterOrEqual(t, got.Amount, prev, "policy %s d=%v", p.ID, d)
				prev = got.Amount

				// idempotent
				again, err := ComputeFee(&p, d, rt)
				require.NoError(t, err)
				assert.Equal(t, got, again)

				if rt {
					one, err := ComputeFee(&p, d, false)
					require.NoError(t, err)
					assert.InDelta(t, one.BaseMiles*2, got.BaseMiles, 0.1+1e-9)
				}
			}
		}
	}
}

func TestComputeFee_RoundTripDoublesWholeMiles(t *testing.T) {
	for _, d := range []float64{1, 12.5, 40, 333.3} {
		rt, err := ComputeFee(&sedgwick, d, true)
		require.NoError(t, err)
		ow, err := ComputeFee(&sedgwick, d, false)
		require.NoError(t, err)
		assert.InDelta(t, ow.BaseMiles*2, rt.BaseMiles, 1e-9, "d=%v", d)
	}
}
