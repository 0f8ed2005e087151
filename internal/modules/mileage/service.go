// README: Mileage service validates a calculation request, prices it and appends it to the trip log.
package mileage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimcipher/internal/modules/firm"
	"claimcipher/internal/modules/route"
	"claimcipher/internal/types"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
	importLabelMax      = 30
)

var (
	ErrNoTripLog       = errors.New("trip log not configured")
	ErrNoRouteImporter = errors.New("route import not configured")
)

type PolicySource interface {
	Get(ctx context.Context, id types.ID) (firm.Policy, error)
}

type TripLog interface {
	Append(ctx context.Context, c Calculation) error
	List(ctx context.Context, limit int) ([]Calculation, error)
}

// RouteImporter hands out route exports. Peek leaves the export in place;
// Restore puts back one that was consumed by a request that then failed.
type RouteImporter interface {
	Peek(ctx context.Context, id types.ID) (route.Export, error)
	Consume(ctx context.Context, id types.ID) (route.Export, error)
	Restore(ctx context.Context, e route.Export) error
}

type Service struct {
	policies PolicySource
	trips    TripLog
	routes   RouteImporter
	log      *zap.Logger
	now      func() time.Time
}

// NewService wires the collaborators. trips and routes may be nil; saving or
// importing then fails with a descriptive error.
func NewService(policies PolicySource, trips TripLog, routes RouteImporter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		policies: policies,
		trips:    trips,
		routes:   routes,
		log:      log.Named("mileage"),
		now:      time.Now,
	}
}

type CalculateCommand struct {
	FirmID        types.ID
	PointA        string
	PointB        string
	DistanceMiles float64
	// RoundTrip falls back to the policy's RoundTripDefault when nil.
	RoundTrip *bool
	Note      string
	Save      bool
}

type ImportCommand struct {
	ExportID  types.ID
	FirmID    types.ID
	RoundTrip *bool
	Note      string
	Save      bool
}

func (s *Service) Calculate(ctx context.Context, cmd CalculateCommand) (Calculation, error) {
	if cmd.Save && s.trips == nil {
		return Calculation{}, ErrNoTripLog
	}
	calc, err := s.price(ctx, cmd)
	if err != nil {
		return Calculation{}, err
	}
	if cmd.Save {
		if err := s.appendTrip(ctx, calc); err != nil {
			return Calculation{}, err
		}
	}
	s.logCalculated(calc, cmd.Save)
	return calc, nil
}

// price validates the request and builds the calculation without side effects.
func (s *Service) price(ctx context.Context, cmd CalculateCommand) (Calculation, error) {
	if strings.TrimSpace(string(cmd.FirmID)) == "" {
		return Calculation{}, types.Invalid("firm_id", "no firm selected")
	}
	pointA := strings.TrimSpace(cmd.PointA)
	pointB := strings.TrimSpace(cmd.PointB)
	if pointA == "" || pointB == "" {
		return Calculation{}, types.Invalid("points", "both point A and point B are required")
	}

	policy, err := s.policies.Get(ctx, cmd.FirmID)
	if err != nil {
		return Calculation{}, err
	}
	roundTrip := policy.RoundTripDefault
	if cmd.RoundTrip != nil {
		roundTrip = *cmd.RoundTrip
	}

	fee, err := ComputeFee(&policy, cmd.DistanceMiles, roundTrip)
	if err != nil {
		s.log.Debug("calculation rejected", zap.Error(err))
		return Calculation{}, err
	}

	return Calculation{
		ID:            types.ID(uuid.NewString()),
		Policy:        policy,
		PointA:        pointA,
		PointB:        pointB,
		DistanceMiles: cmd.DistanceMiles,
		RoundTrip:     roundTrip,
		Note:          strings.TrimSpace(cmd.Note),
		Fee:           fee,
		CreatedAt:     s.now().UTC(),
	}, nil
}

func (s *Service) appendTrip(ctx context.Context, calc Calculation) error {
	if err := s.trips.Append(ctx, calc); err != nil {
		s.log.Error("append trip", zap.String("id", string(calc.ID)), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) logCalculated(calc Calculation, saved bool) {
	s.log.Info("mileage calculated",
		zap.String("firm", string(calc.Policy.ID)),
		zap.Float64("billable_miles", calc.BillableMiles),
		zap.Float64("amount", calc.Amount),
		zap.Bool("saved", saved),
	)
}

// ImportRoute prices a route export's total distance, using the first and
// last stop of the route as the points. The export is consumed only once the
// calculation is valid; if saving the trip then fails it is restored.
func (s *Service) ImportRoute(ctx context.Context, cmd ImportCommand) (Calculation, error) {
	if s.routes == nil {
		return Calculation{}, ErrNoRouteImporter
	}
	if cmd.ExportID == "" {
		return Calculation{}, types.Invalid("export_id", "is required")
	}
	if strings.TrimSpace(string(cmd.FirmID)) == "" {
		return Calculation{}, types.Invalid("firm_id", "no firm selected")
	}
	if cmd.Save && s.trips == nil {
		return Calculation{}, ErrNoTripLog
	}

	exp, err := s.routes.Peek(ctx, cmd.ExportID)
	if err != nil {
		return Calculation{}, err
	}
	calc, err := s.price(ctx, CalculateCommand{
		FirmID:        cmd.FirmID,
		PointA:        route.Shorten(exp.Origin, importLabelMax),
		PointB:        route.Shorten(exp.Destination, importLabelMax),
		DistanceMiles: exp.DistanceMiles,
		RoundTrip:     cmd.RoundTrip,
		Note:          cmd.Note,
	})
	if err != nil {
		return Calculation{}, err
	}

	consumed, err := s.routes.Consume(ctx, cmd.ExportID)
	if err != nil {
		return Calculation{}, err
	}
	if cmd.Save {
		if err := s.appendTrip(ctx, calc); err != nil {
			if rerr := s.routes.Restore(ctx, consumed); rerr != nil {
				s.log.Error("restore export after failed import",
					zap.String("export_id", string(consumed.ID)), zap.Error(rerr))
			}
			return Calculation{}, err
		}
	}
	s.logCalculated(calc, cmd.Save)
	return calc, nil
}

// History returns the newest calculations first; limit is clamped to [1, MaxHistoryLimit].
func (s *Service) History(ctx context.Context, limit int) ([]Calculation, error) {
	if s.trips == nil {
		return nil, ErrNoTripLog
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.trips.List(ctx, limit)
}
