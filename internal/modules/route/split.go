// README: Greedy day splitter. Cuts an ordered leg list into days; never reorders or drops legs.
package route

import (
	"fmt"
	"math"

	"claimcipher/internal/types"
)

const singleDayLabel = "Single Day"

// Split partitions legs into days. With splitting enabled, a leg longer than
// maxLegMiles closes the current day (when it already holds a leg) and opens a
// new one; the leg itself is always kept. Input is validated up front so a
// malformed list is never partially processed.
func Split(legs []Leg, maxLegMiles float64, splitEnabled bool) (SplitRoute, error) {
	if err := validateLegs(legs); err != nil {
		return SplitRoute{}, err
	}
	if splitEnabled && (!types.IsFinite(maxLegMiles) || maxLegMiles <= 0) {
		return SplitRoute{}, types.Invalid("max_leg_miles", "must be a number greater than 0")
	}

	out := SplitRoute{Days: []Day{}}
	if len(legs) == 0 {
		return out, nil
	}

	var miles, minutes float64
	for _, l := range legs {
		miles += l.DistanceMiles
		minutes += l.DurationMinutes
	}
	out.TotalMiles = types.Round1(miles)
	out.TotalMinutes = int(math.Round(minutes))

	if !splitEnabled {
		out.Days = append(out.Days, buildDay(singleDayLabel, legs))
		return out, nil
	}

	start := 0
	for i := 1; i < len(legs); i++ {
		if legs[i].DistanceMiles > maxLegMiles {
			out.Days = append(out.Days, buildDay(dayLabel(len(out.Days)), legs[start:i]))
			start = i
		}
	}
	out.Days = append(out.Days, buildDay(dayLabel(len(out.Days)), legs[start:]))
	return out, nil
}

func dayLabel(index int) string {
	return fmt.Sprintf("Day %d", index+1)
}

// buildDay derives the stop list from leg endpoints: first origin, then every destination.
func buildDay(label string, legs []Leg) Day {
	d := Day{
		Label: label,
		Stops: make([]string, 0, len(legs)+1),
		Legs:  append([]Leg(nil), legs...),
	}
	d.Stops = append(d.Stops, legs[0].Origin)
	var miles, minutes float64
	for _, l := range legs {
		d.Stops = append(d.Stops, l.Destination)
		miles += l.DistanceMiles
		minutes += l.DurationMinutes
	}
	d.TotalMiles = types.Round1(miles)
	d.TotalMinutes = int(math.Round(minutes))
	return d
}

func validateLegs(legs []Leg) error {
	for i, l := range legs {
		if !types.IsFinite(l.DistanceMiles) || l.DistanceMiles < 0 {
			return types.Invalid(fmt.Sprintf("legs[%d].distance_miles", i), "must be a finite number >= 0")
		}
		if !types.IsFinite(l.DurationMinutes) || l.DurationMinutes < 0 {
			return types.Invalid(fmt.Sprintf("legs[%d].duration_minutes", i), "must be a finite number >= 0")
		}
	}
	return nil
}
