// README: Route legs, day buckets and the export record handed to the mileage calculator.
package route

import (
	"time"

	"claimcipher/internal/types"
)

type Leg struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type Day struct {
	Label        string   `json:"label"`
	Stops        []string `json:"stops"`
	Legs         []Leg    `json:"legs"`
	TotalMiles   float64  `json:"total_miles"`
	TotalMinutes int      `json:"total_minutes"`
}

type SplitRoute struct {
	Days         []Day   `json:"days"`
	TotalMiles   float64 `json:"total_miles"`
	TotalMinutes int     `json:"total_minutes"`
}

// Origin is the first stop of the route, or "" for an empty route.
func (r SplitRoute) Origin() string {
	if len(r.Days) == 0 || len(r.Days[0].Stops) == 0 {
		return ""
	}
	return r.Days[0].Stops[0]
}

// Destination is the last stop of the last day.
func (r SplitRoute) Destination() string {
	if len(r.Days) == 0 {
		return ""
	}
	stops := r.Days[len(r.Days)-1].Stops
	if len(stops) == 0 {
		return ""
	}
	return stops[len(stops)-1]
}

type Settings struct {
	MaxLegMiles     float64 `json:"max_leg_miles"`
	SplitEnabled    bool    `json:"split_enabled"`
	OptimizeEnabled bool    `json:"optimize_enabled"`
}

// Export is the aggregate a split route hands to a mileage calculation.
type Export struct {
	ID            types.ID  `json:"id"`
	DistanceMiles float64   `json:"distance_miles"`
	TotalMinutes  int       `json:"total_minutes"`
	Days          int       `json:"days"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsStale reports whether the record is at least ttl old at now.
func (e Export) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) >= ttl
}
