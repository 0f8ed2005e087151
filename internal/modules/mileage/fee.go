// README: Fee calculator. Pure function of (policy, one-way distance, round trip).
package mileage

import (
	"claimcipher/internal/modules/firm"
	"claimcipher/internal/types"
)

// Fee is the derived part of a mileage calculation.
type Fee struct {
	BaseMiles     float64 `json:"base_miles"`
	BillableMiles float64 `json:"billable_miles"`
	Amount        float64 `json:"amount"`
}

// ComputeFee doubles the distance for round trips, subtracts the free-mile
// allowance once, clamps at zero and prices the rest. Miles round to 1 decimal,
// money to 2. A nil policy means no firm was selected.
func ComputeFee(policy *firm.Policy, distanceMiles float64, roundTrip bool) (Fee, error) {
	if policy == nil {
		return Fee{}, types.Invalid("firm_id", "no firm selected")
	}
	if !types.IsFinite(policy.FreeMiles) || policy.FreeMiles < 0 {
		return Fee{}, types.Invalid("free_miles", "must be a number >= 0")
	}
	if !types.IsFinite(policy.RatePerMile) || policy.RatePerMile <= 0 {
		return Fee{}, types.Invalid("rate_per_mile", "must be a number > 0")
	}
	if !types.IsFinite(distanceMiles) || distanceMiles <= 0 {
		return Fee{}, types.Invalid("distance_miles", "must be a number greater than 0")
	}

	factor := 1.0
	if roundTrip {
		factor = 2
	}
	base := types.Round1(distanceMiles * factor)
	billable := base - policy.FreeMiles
	if billable < 0 {
		billable = 0
	}
	billable = types.Round1(billable)

	return Fee{
		BaseMiles:     base,
		BillableMiles: billable,
		Amount:        types.Round2(billable * policy.RatePerMile),
	}, nil
}
