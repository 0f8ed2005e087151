package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func newTestRouteService(t *testing.T, body string, seen *http.Request) *RouteService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = *r.Clone(context.Background())
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewRouteService("test-key", nil, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return svc
}

const twoLegResponse = `{
  "status": "OK",
  "routes": [{
    "waypoint_order": [0],
    "legs": [
      {"start_address": "Office", "end_address": "Site A",
       "distance": {"text": "10 mi", "value": 16093}, "duration": {"text": "20 mins", "value": 1200}},
      {"start_address": "Site A", "end_address": "Site B",
       "distance": {"text": "60 mi", "value": 96561}, "duration": {"text": "1 hour 5 mins", "value": 3900}}
    ]
  }]
}`

func TestRouteService_Legs(t *testing.T) {
	var req http.Request
	svc := newTestRouteService(t, twoLegResponse, &req)

	legs, err := svc.Legs(context.Background(), "Office", []string{"Site A", "Site B"}, true)
	require.NoError(t, err)
	require.Len(t, legs, 2)

	assert.Equal(t, "/maps/api/directions/json", req.URL.Path)
	q := req.URL.Query()
	assert.Equal(t, "Office", q.Get("origin"))
	assert.Equal(t, "Site B", q.Get("destination"))
	assert.Equal(t, "Site A", q.Get("waypoints"))
	assert.Equal(t, "driving", q.Get("mode"))

	assert.Equal(t, "Office", legs[0].Origin)
	assert.Equal(t, "Site A", legs[0].Destination)
	assert.InDelta(t, 10.0, legs[0].DistanceMiles, 0.01)
	assert.InDelta(t, 20.0, legs[0].DurationMinutes, 1e-9)
	assert.InDelta(t, 60.0, legs[1].DistanceMiles, 0.01)
	assert.InDelta(t, 65.0, legs[1].DurationMinutes, 1e-9)
}

func TestRouteService_NoRoute(t *testing.T) {
	svc := newTestRouteService(t, `{"status": "ZERO_RESULTS", "routes": []}`, nil)
	_, err := svc.Legs(context.Background(), "Office", []string{"Nowhere"}, false)
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = svc.Legs(context.Background(), "Office", nil, false)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestRouteService_APIError(t *testing.T) {
	svc := newTestRouteService(t, `{"status": "REQUEST_DENIED", "error_message": "bad key"}`, nil)
	_, err := svc.Legs(context.Background(), "Office", []string{"Site A"}, false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRoute)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestDriveOrder(t *testing.T) {
	dests := []string{"A", "B", "C", "D"}
	assert.Equal(t, []string{"S", "C", "A", "B", "D"}, driveOrder("S", dests, []int{2, 0, 1}))
	assert.Equal(t, []string{"S", "A", "B", "C", "D"}, driveOrder("S", dests, nil))
	assert.Equal(t, []string{"S", "D"}, driveOrder("S", []string{"D"}, nil))
}

func TestAddressOr(t *testing.T) {
	stops := []string{"S", "A"}
	assert.Equal(t, "Real St", addressOr(" Real St ", stops, 0))
	assert.Equal(t, "A", addressOr("", stops, 1))
	assert.Equal(t, "", addressOr("", stops, 5))
}
