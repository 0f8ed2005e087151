// README: Google Maps Directions client that turns a start and destinations into route legs.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"claimcipher/internal/modules/route"
)

const metersToMiles = 0.000621371

var ErrNoRoute = errors.New("no route found")

// RouteService handles interactions with the Google Maps Directions API.
type RouteService struct {
	client *maps.Client
	log    *zap.Logger
}

// NewRouteService creates a RouteService with the given API key. Extra client
// options (for example maps.WithBaseURL) are applied after the key.
func NewRouteService(apiKey string, log *zap.Logger, opts ...maps.ClientOption) (*RouteService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, log: log.Named("maps")}, nil
}

// Legs asks Directions for a driving route from start through every
// destination, ending at the last one. With optimize set, Google may reorder
// the intermediate stops; the returned legs follow the driven order.
func (s *RouteService) Legs(ctx context.Context, start string, destinations []string, optimize bool) ([]route.Leg, error) {
	if len(destinations) == 0 {
		return nil, ErrNoRoute
	}
	last := len(destinations) - 1
	r := &maps.DirectionsRequest{
		Origin:      start,
		Destination: destinations[last],
		Waypoints:   destinations[:last],
		Optimize:    optimize && last > 1,
		Mode:        maps.TravelModeDriving,
		Units:       maps.UnitsImperial,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		s.log.Warn("directions request failed", zap.Error(err))
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	stops := driveOrder(start, destinations, routes[0].WaypointOrder)
	legs := make([]route.Leg, 0, len(routes[0].Legs))
	for i, l := range routes[0].Legs {
		origin, dest := addressOr(l.StartAddress, stops, i), addressOr(l.EndAddress, stops, i+1)
		legs = append(legs, route.Leg{
			Origin:          origin,
			Destination:     dest,
			DistanceMiles:   float64(l.Distance.Meters) * metersToMiles,
			DurationMinutes: l.Duration.Minutes(),
		})
	}
	s.log.Debug("directions resolved", zap.Int("legs", len(legs)), zap.Bool("optimized", r.Optimize))
	return legs, nil
}

// driveOrder lists the stops in the order they are driven, applying the
// waypoint permutation Google returns for optimized requests.
func driveOrder(start string, destinations []string, order []int) []string {
	last := len(destinations) - 1
	stops := make([]string, 0, len(destinations)+1)
	stops = append(stops, start)
	if len(order) == last {
		for _, idx := range order {
			stops = append(stops, destinations[idx])
		}
	} else {
		stops = append(stops, destinations[:last]...)
	}
	return append(stops, destinations[last])
}

func addressOr(addr string, stops []string, i int) string {
	if a := strings.TrimSpace(addr); a != "" {
		return a
	}
	if i < len(stops) {
		return stops[i]
	}
	return ""
}
