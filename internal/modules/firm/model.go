// README: Billing policy (insurance firm fee schedule) and its construction-time invariants.
package firm

import (
	"strings"

	"claimcipher/internal/types"
)

// Policy is one firm's mileage fee schedule.
type Policy struct {
	ID               types.ID `json:"id"`
	Name             string   `json:"name"`
	FreeMiles        float64  `json:"free_miles"`
	RatePerMile      float64  `json:"rate_per_mile"`
	RoundTripDefault bool     `json:"round_trip_default"`
}

// NewPolicy validates the inputs and derives the id from the name.
func NewPolicy(name string, freeMiles, ratePerMile float64, roundTripDefault bool) (Policy, error) {
	p := Policy{
		ID:               SlugID(name),
		Name:             strings.TrimSpace(name),
		FreeMiles:        freeMiles,
		RatePerMile:      ratePerMile,
		RoundTripDefault: roundTripDefault,
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	switch {
	case p.Name == "":
		return types.Invalid("name", "is required")
	case p.ID == "":
		return types.Invalid("name", "must contain at least one letter or digit")
	case !types.IsFinite(p.FreeMiles) || p.FreeMiles < 0:
		return types.Invalid("free_miles", "must be a number >= 0")
	case !types.IsFinite(p.RatePerMile) || p.RatePerMile <= 0:
		return types.Invalid("rate_per_mile", "must be a number > 0")
	}
	return nil
}

// SlugID lower-cases the name and replaces every character outside [a-z0-9] with '_'.
// A name made only of separators yields an empty id.
func SlugID(name string) types.ID {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	meaningful := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			meaningful = true
			continue
		}
		b.WriteByte('_')
	}
	if !meaningful {
		return ""
	}
	return types.ID(b.String())
}

// DefaultPolicies are seeded when no policy exists yet.
func DefaultPolicies() []Policy {
	return []Policy{
		{ID: "sedgwick", Name: "Sedgwick", FreeMiles: 50, RatePerMile: 0.67, RoundTripDefault: true},
		{ID: "acd", Name: "ACD", FreeMiles: 30, RatePerMile: 0.60, RoundTripDefault: false},
		{ID: "crawford", Name: "Crawford & Company", FreeMiles: 40, RatePerMile: 0.65, RoundTripDefault: true},
	}
}
