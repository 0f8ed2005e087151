// README: Plain-text rendering of a split route for copy/paste.
package route

import (
	"fmt"
	"strings"
)

const summaryAddressMax = 50

// Shorten truncates s to max runes, ending in "..." when it had to cut.
func Shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max <= 3 {
		return s
	}
	return string(r[:max-3]) + "..."
}

func hoursMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func (r SplitRoute) Summary() string {
	var b strings.Builder
	b.WriteString("ROUTE RESULTS\n\n")
	fmt.Fprintf(&b, "Overall: %.1f miles, %s\n", r.TotalMiles, hoursMinutes(r.TotalMinutes))
	fmt.Fprintf(&b, "Days: %d\n\n", len(r.Days))
	for _, d := range r.Days {
		fmt.Fprintf(&b, "%s: %.1f mi, %s\n", d.Label, d.TotalMiles, hoursMinutes(d.TotalMinutes))
		for i, stop := range d.Stops {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, Shorten(stop, summaryAddressMax))
		}
		b.WriteString("\n")
	}
	return b.String()
}
