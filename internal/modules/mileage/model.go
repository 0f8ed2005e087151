// README: Mileage calculation record (immutable once built) and its copy-ready summary line.
package mileage

import (
	"fmt"
	"strconv"
	"time"

	"claimcipher/internal/modules/firm"
	"claimcipher/internal/types"
)

// Calculation snapshots the policy it was priced with so later policy edits
// never change a logged trip.
type Calculation struct {
	ID            types.ID    `json:"id"`
	Policy        firm.Policy `json:"firm"`
	PointA        string      `json:"point_a"`
	PointB        string      `json:"point_b"`
	DistanceMiles float64     `json:"distance_miles"`
	RoundTrip     bool        `json:"round_trip"`
	Note          string      `json:"note,omitempty"`
	Fee
	CreatedAt time.Time `json:"created_at"`
}

func (c Calculation) AmountMoney() types.Money {
	return types.MoneyFromFloat(c.Amount, types.DefaultCurrency)
}

// Summary renders the single line adjusters paste into their reports.
func (c Calculation) Summary() string {
	line := fmt.Sprintf("Mileage: %s→%s = %s mi − %s free = %s billable × $%s/mi ⇒ $%.2f (Firm: %s)",
		c.PointA, c.PointB,
		num(c.BaseMiles), num(c.Policy.FreeMiles), num(c.BillableMiles),
		num(c.Policy.RatePerMile), c.Amount, c.Policy.Name)
	if c.Note != "" {
		line += " | Note: " + c.Note
	}
	return line
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
